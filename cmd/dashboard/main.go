// Command dashboard serves a read-only HTTP view of queue status,
// backed by the same Observer the CLI's "status" command uses.
package main

import (
	"context"
	"flag"
	"html/template"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/MohanNalamalapu/queuectl"
	"github.com/MohanNalamalapu/queuectl/store"
)

// statusView mirrors cmd/queuectl's status output so the HTTP and CLI
// surfaces publish the same snake_case JSON shape (§6: "GET
// /api/status returns the same JSON as status").
type statusView struct {
	Pending       int64   `json:"pending"`
	Processing    int64   `json:"processing"`
	Completed     int64   `json:"completed"`
	Failed        int64   `json:"failed"`
	Dead          int64   `json:"dead"`
	ActiveWorkers int64   `json:"active_workers"`
	OldestPending *string `json:"oldest_pending,omitempty"`
}

func toStatusView(st *queue.Status) statusView {
	view := statusView{
		Pending:       st.Pending,
		Processing:    st.Processing,
		Completed:     st.Completed,
		Failed:        st.Failed,
		Dead:          st.Dead,
		ActiveWorkers: st.ActiveWorkers,
	}
	if st.OldestPending != nil {
		s := queue.FormatTime(*st.OldestPending)
		view.OldestPending = &s
	}
	return view
}

func main() {
	defaultAddr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		defaultAddr = ":" + port
	}
	dbPath := flag.String("db", "queue.db", "path to the SQLite database file")
	addr := flag.String("addr", defaultAddr, "HTTP listen address (overrides PORT)")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	ctx := context.Background()

	db, err := store.Open(ctx, *dbPath)
	if err != nil {
		log.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	observer := store.NewObserver(db)

	r := gin.Default()
	r.GET("/api/status", statusHandler(observer))
	r.GET("/", indexHandler(observer))

	log.Info("dashboard listening", "addr", *addr, "db", *dbPath)
	if err := r.Run(*addr); err != nil {
		log.Error("dashboard exited", "err", err)
		os.Exit(1)
	}
}

func statusHandler(observer *store.Observer) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := observer.Status(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toStatusView(st))
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><title>queuectl dashboard</title></head>
<body>
<h1>queue status</h1>
<table id="status"></table>
<script>
async function refresh() {
  const res = await fetch("/api/status");
  const st = await res.json();
  const rows = Object.entries(st).map(([k, v]) => "<tr><td>" + k + "</td><td>" + v + "</td></tr>").join("");
  document.getElementById("status").innerHTML = rows;
}
refresh();
setInterval(refresh, 2000);
</script>
</body>
</html>`))

func indexHandler(observer *store.Observer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		_ = indexTemplate.Execute(c.Writer, nil)
	}
}
