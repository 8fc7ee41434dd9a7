// ddb runs the in-memory DynamoDB store from the command line.
//
// # Installation
//
//	go install github.com/acksell/dynamock/dynamodb/cmd/ddb@latest
//
// # Commands
//
//	ddb tables   Validate the table schema and list the tables
//	ddb serve    Serve the DynamoDB HTTP API backed by an in-memory store
//	ddb exec     Run newline-delimited requests and print the responses
//
// # Quick Start
//
// Describe your tables in ddb.tables.yaml:
//
//	tables:
//	  streets:
//	    partitionKey: zipcode
//	    sortKey: streetName
//
// Start the server and point any DynamoDB client at it:
//
//	ddb serve --addr :8000
//	aws dynamodb scan --endpoint-url http://localhost:8000 --table-name streets
//
// Or run requests without a server:
//
//	echo '{"operation":"ListTables","input":{}}' | ddb exec
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd {
	case "tables":
		err = withConfig(args, runTables)
	case "serve":
		err = withConfig(args, func(cfg Config, args []string) error { return runServe(ctx, cfg, args) })
	case "exec":
		err = withConfig(args, func(cfg Config, args []string) error {
			return runExec(ctx, cfg, args, os.Stdin, os.Stdout)
		})
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "--version":
		fmt.Printf("ddb version %s\n", version)
		return
	default:
		fmt.Fprintf(os.Stderr, "ddb: unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ddb %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func withConfig(args []string, run func(Config, []string) error) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	return run(cfg, args)
}

func printUsage() {
	fmt.Println(`ddb - in-memory DynamoDB for local development and tests

Usage:
  ddb <command> [flags]

Commands:
  tables   Validate the table schema and list the tables
  serve    Serve the DynamoDB HTTP API backed by an in-memory store
  exec     Run newline-delimited requests and print the responses
  version  Print the version

Examples:
  # Serve on port 8000:
  ddb serve --addr :8000

  # Run requests from a file against an in-memory store:
  ddb exec --input requests.ndjson

  # Run the same requests against a running endpoint:
  ddb exec --input requests.ndjson --endpoint http://localhost:8000

Configuration (optional):
  Create ddb.yaml for defaults:

    schema: ./tables/**/*.yaml   # table schema files
    addr: :8000                  # serve listen address
    logLevel: info

  Environment variables DDB_SCHEMA, DDB_ADDR, DDB_ENDPOINT, DDB_REGION and
  DDB_LOG_LEVEL override the file; a .env file is loaded if present.

Run 'ddb <command> --help' for more information on a command.`)
}
