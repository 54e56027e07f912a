package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/MohanNalamalapu/queuectl/store"
)

// normalizeConfigKey maps CLI-friendly dashed flags ("max-retries") to
// the store's underscored key names ("max_retries").
func normalizeConfigKey(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

func runConfig(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("config: expected a subcommand (get, set)")
	}
	switch args[0] {
	case "get":
		return runConfigGet(ctx, args[1:])
	case "set":
		return runConfigSet(ctx, args[1:])
	default:
		return fmt.Errorf("config: unknown subcommand %q", args[0])
	}
}

func runConfigGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("config get", flag.ExitOnError)
	dbPath := fs.String("db", "queue.db", "path to the SQLite database file")
	key := fs.String("key", "", "config key (required)")
	fs.Parse(args)

	if *key == "" {
		return fmt.Errorf("-key is required")
	}

	db, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	cfg := store.NewConfig(db)
	v, ok, err := cfg.Get(ctx, normalizeConfigKey(*key))
	if err != nil {
		return fmt.Errorf("config get: %w", err)
	}
	if !ok {
		return fmt.Errorf("config get: no value or default for key %q", *key)
	}
	fmt.Println(v)
	return nil
}

func runConfigSet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("config set", flag.ExitOnError)
	dbPath := fs.String("db", "queue.db", "path to the SQLite database file")
	key := fs.String("key", "", "config key (required)")
	value := fs.String("value", "", "config value (required)")
	fs.Parse(args)

	if *key == "" {
		return fmt.Errorf("-key is required")
	}

	db, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	cfg := store.NewConfig(db)
	if err := cfg.Set(ctx, normalizeConfigKey(*key), *value); err != nil {
		return fmt.Errorf("config set: %w", err)
	}
	return nil
}
