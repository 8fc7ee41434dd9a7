// Package ddbserver serves a ddbstore.Store over the DynamoDB JSON 1.0 HTTP
// protocol, so that any DynamoDB client, including the AWS SDK and CLI, can
// talk to the in-memory store by pointing its endpoint at the server.
//
//	aws dynamodb get-item --endpoint-url http://localhost:8000 \
//	    --table-name streets --key '{"zipcode":{"S":"30309"},"streetName":{"S":"10th Street NW"}}'
//
// Supported operations: GetItem, PutItem, DeleteItem, Query, Scan,
// DescribeTable and ListTables. Requests are executed one at a time.
package ddbserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/acksell/dynamock/dynamodb/ddbiface"
)

// ServerConfig configures the server.
type ServerConfig struct {
	// Addr is the TCP address to listen on, e.g. ":8000".
	Addr string
	// Logger receives request logs. If nil, logging is disabled.
	Logger *slog.Logger
}

// Server is the DynamoDB-compatible HTTP server.
type Server struct {
	config     ServerConfig
	backend    ddbiface.TableClient
	logger     *slog.Logger
	operations map[string]operation

	// mu serializes every call into the backend.
	mu sync.Mutex
}

// NewServer creates a server dispatching to backend.
func NewServer(backend ddbiface.TableClient, config ServerConfig) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		config:     config,
		backend:    backend,
		logger:     logger,
		operations: operations(backend),
	}
}

// Handler returns the HTTP handler serving the DynamoDB API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /", s.dispatch)
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "healthy: dynamock")
	})
	return loggingMiddleware(s.logger, mux)
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is like Run but accepts connections on ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.InfoContext(r.Context(), "request",
			"method", r.Method,
			"target", r.Header.Get(targetHeader),
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
