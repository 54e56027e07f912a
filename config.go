package queue

import "context"

// Default config values, used when a key has never been set via
// ConfigStore.Set.
const (
	DefaultMaxRetries  = "3"
	DefaultBackoffBase = "2"
)

// defaults is the fallback table consulted by ConfigStore.Get when a
// key has no stored row.
var defaults = map[string]string{
	"max_retries":  DefaultMaxRetries,
	"backoff_base": DefaultBackoffBase,
}

// Default looks up key in the built-in default table. It returns
// ("", false) for keys with no default.
func Default(key string) (string, bool) {
	v, ok := defaults[key]
	return v, ok
}

// ConfigStore is a key/value settings store with a fallback table of
// defaults (max_retries="3", backoff_base="2").
//
// Config is read per-job-execution — the worker reads backoff_base
// before scheduling each retry — so operator updates via Set take
// effect on the next attempt without a restart.
type ConfigStore interface {

	// Get returns the stored value for key, falling back to the
	// built-in default, or ("", false) if neither exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// GetInt parses Get's result as an integer, defaulting to 0 if the
	// value is absent or unparsable.
	GetInt(ctx context.Context, key string) (int, error)

	// Set upserts key to value.
	Set(ctx context.Context, key, value string) error
}
