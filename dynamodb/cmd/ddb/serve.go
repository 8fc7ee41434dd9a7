package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/acksell/dynamock/dynamodb/ddbserver"
	"github.com/acksell/dynamock/dynamodb/ddbstore"
)

func runServe(ctx context.Context, cfg Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "address to listen on")
	if err := parseFlags(fs, &cfg, args); err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	if err := printBanner(ctx, os.Stdout, cfg, store); err != nil {
		return err
	}
	server := ddbserver.NewServer(store, ddbserver.ServerConfig{
		Addr:   cfg.Addr,
		Logger: logger,
	})
	return server.Run(ctx)
}

func printBanner(ctx context.Context, w io.Writer, cfg Config, store *ddbstore.Store) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                    In-memory DynamoDB                        ║")
	fmt.Fprintln(w, "╠══════════════════════════════════════════════════════════════╣")
	fmt.Fprintf(w, "║  Endpoint: %-50s║\n", truncate(endpointURL(cfg.Addr), 50))
	fmt.Fprintln(w, "║  Mode: In-memory (data will be lost on exit)                 ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════╝")
	if err := printTables(ctx, store, w); err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Press Ctrl+C to stop")
	fmt.Fprintln(w)
	return nil
}

func endpointURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
