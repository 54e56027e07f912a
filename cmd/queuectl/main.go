// Command queuectl is the operator CLI for the queue: it enqueues
// jobs, inspects status, manages the dead letter queue, edits runtime
// config, and supervises worker processes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]
	ctx := context.Background()

	var err error
	switch cmd {
	case "enqueue":
		err = runEnqueue(ctx, args)
	case "list":
		err = runList(ctx, args)
	case "status":
		err = runStatus(ctx, args)
	case "dlq":
		err = runDLQ(ctx, args)
	case "config":
		err = runConfig(ctx, args)
	case "worker":
		err = runWorker(ctx, log, args)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "queuectl: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "queuectl: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: queuectl <command> [arguments]

commands:
  enqueue   -command <cmd> [-priority N] [-max-retries N] [-run-at RFC3339] [-db path]
  list      -state <pending|processing|completed|failed|dead> [-db path]
  status    [-db path]
  dlq       list [-db path]
  dlq       retry -id <dlq_id> [-db path]
  config    get -key <key> [-db path]
  config    set -key <key> -value <value> [-db path]
  worker    start [-n N] [-db path] [-pidfile path]
  worker    stop  [-pidfile path]`)
}
