package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/acksell/dynamock/dynamodb/ddbstore"
	"github.com/acksell/dynamock/dynamodb/schema"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// parseFlags registers the flags shared by every command and parses args.
func parseFlags(fs *flag.FlagSet, cfg *Config, args []string) error {
	fs.StringVar(&cfg.Schema, "schema", cfg.Schema, "glob pattern for table schema files (supports **)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	return fs.Parse(args)
}

// openStore loads the schema files and builds an empty store from them.
func openStore(cfg Config, logger *slog.Logger) (*ddbstore.Store, error) {
	s, err := schema.LoadFiles(cfg.Schema)
	if err != nil {
		return nil, fmt.Errorf("loading schemas: %w", err)
	}
	defs, err := s.TableDefinitions()
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	store, err := ddbstore.New(ddbstore.StoreOptions{Logger: logger}, defs...)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}
	return store, nil
}

func runTables(cfg Config, args []string) error {
	fs := flag.NewFlagSet("tables", flag.ContinueOnError)
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
	return printTables(context.Background(), store, os.Stdout)
}

// printTables writes one line per table with its key schema.
func printTables(ctx context.Context, store *ddbstore.Store, w io.Writer) error {
	list, err := store.ListTables(ctx, &dynamodb.ListTablesInput{})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tPARTITION KEY\tSORT KEY")
	for _, name := range list.TableNames {
		desc, err := store.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)})
		if err != nil {
			return err
		}
		var pk, sk string
		for _, ks := range desc.Table.KeySchema {
			switch ks.KeyType {
			case types.KeyTypeHash:
				pk = aws.ToString(ks.AttributeName)
			case types.KeyTypeRange:
				sk = aws.ToString(ks.AttributeName)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, pk, orDash(sk))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
