package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/acksell/dynamock/dynamodb/ddbiface"
	"github.com/acksell/dynamock/dynamodb/ddbserver"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// maxRequestSize bounds a single input line.
const maxRequestSize = 16 << 20

// execRequest is one input line.
type execRequest struct {
	Operation string          `json:"operation"`
	Input     json.RawMessage `json:"input"`
}

// execResponse is one output line: either Output or Error is set.
type execResponse struct {
	Operation string                   `json:"operation"`
	Output    any                      `json:"output,omitempty"`
	Error     *ddbserver.ErrorResponse `json:"error,omitempty"`
}

func runExec(ctx context.Context, cfg Config, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("exec", flag.ContinueOnError)
	input := fs.String("input", "-", "file with newline-delimited requests, - for stdin")
	fs.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "DynamoDB endpoint URL; empty runs against an in-memory store")
	fs.StringVar(&cfg.Region, "region", cfg.Region, "AWS region used with --endpoint")
	if err := parseFlags(fs, &cfg, args); err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	in := stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	backend, err := newBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return execRequests(ctx, ddbserver.NewServer(backend, ddbserver.ServerConfig{Logger: logger}), in, stdout)
}

// newBackend returns an SDK client for cfg.Endpoint, or a fresh in-memory
// store built from the schema files.
func newBackend(ctx context.Context, cfg Config, logger *slog.Logger) (ddbiface.TableClient, error) {
	if cfg.Endpoint == "" {
		return openStore(cfg, logger)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		// The endpoint does not check signatures; any credentials will do.
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	}), nil
}

// execRequests runs every request line in order and writes one response line
// per request. A failed request does not stop the run.
func execRequests(ctx context.Context, server *ddbserver.Server, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxRequestSize)
	enc := json.NewEncoder(out)

	var total, failed int
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		total++

		var req execRequest
		if err := json.Unmarshal([]byte(text), &req); err != nil {
			return fmt.Errorf("line %d: invalid request: %w", line, err)
		}
		if len(req.Input) == 0 {
			req.Input = json.RawMessage("{}")
		}

		resp := execResponse{Operation: req.Operation}
		result, err := server.Invoke(ctx, req.Operation, req.Input)
		if err != nil {
			failed++
			errResp := ddbserver.NewErrorResponse(err)
			resp.Error = &errResp
		} else {
			resp.Output = result
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, total)
	}
	return nil
}
