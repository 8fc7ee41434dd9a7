package ddbserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/acksell/dynamock/dynamodb/ddbiface"
	"github.com/acksell/dynamock/dynamodb/ddbjson"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
)

const (
	targetHeader = "X-Amz-Target"
	targetPrefix = "DynamoDB_20120810."
	contentType  = "application/x-amz-json-1.0"
	errorPrefix  = "com.amazonaws.dynamodb.v20120810#"
)

// Error codes produced by the server itself; store errors carry their own.
const (
	CodeUnknownOperation = "UnknownOperationException"
	CodeSerialization    = "SerializationException"
	CodeInternal         = "InternalServerError"
)

// operation decodes a request body, runs it and returns the response body.
type operation func(ctx context.Context, body []byte) (any, error)

type requestBody[In any] interface {
	Input() In
}

// serializationError marks a request body that could not be decoded.
type serializationError struct{ err error }

func (e *serializationError) Error() string { return e.err.Error() }
func (e *serializationError) Unwrap() error { return e.err }

func handle[Req requestBody[In], In, Out, Resp any](
	call func(context.Context, In, ...func(*dynamodb.Options)) (Out, error),
	respond func(Out) Resp,
) operation {
	return func(ctx context.Context, body []byte) (any, error) {
		var req Req
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, &serializationError{err}
		}
		out, err := call(ctx, req.Input())
		if err != nil {
			return nil, err
		}
		return respond(out), nil
	}
}

func operations(backend ddbiface.TableClient) map[string]operation {
	return map[string]operation{
		"GetItem":       handle[ddbjson.GetItemRequest](backend.GetItem, ddbjson.NewGetItemResponse),
		"PutItem":       handle[ddbjson.PutItemRequest](backend.PutItem, ddbjson.NewPutItemResponse),
		"DeleteItem":    handle[ddbjson.DeleteItemRequest](backend.DeleteItem, ddbjson.NewDeleteItemResponse),
		"Query":         handle[ddbjson.QueryRequest](backend.Query, ddbjson.NewQueryResponse),
		"Scan":          handle[ddbjson.ScanRequest](backend.Scan, ddbjson.NewScanResponse),
		"DescribeTable": handle[ddbjson.DescribeTableRequest](backend.DescribeTable, ddbjson.NewDescribeTableResponse),
		"ListTables":    handle[ddbjson.ListTablesRequest](backend.ListTables, ddbjson.NewListTablesResponse),
	}
}

// ErrUnknownOperation is returned by Invoke for operations the server does not serve.
var ErrUnknownOperation = errors.New("unknown operation")

// Invoke runs one operation, e.g. "PutItem", on a DynamoDB JSON request body
// and returns the response body. Calls are serialized with every other
// request the server handles.
func (s *Server) Invoke(ctx context.Context, name string, body []byte) (any, error) {
	op, ok := s.operations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return op(ctx, body)
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	target := r.Header.Get(targetHeader)
	name, ok := strings.CutPrefix(target, targetPrefix)
	if !ok {
		writeError(w, http.StatusBadRequest, NewErrorResponse(fmt.Errorf("%w: %q", ErrUnknownOperation, target)))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Type: errorPrefix + CodeSerialization, Message: err.Error()})
		return
	}

	resp, err := s.Invoke(r.Context(), name, body)
	if err != nil {
		errResp := NewErrorResponse(err)
		status := http.StatusBadRequest
		if errResp.Code() == CodeInternal {
			status = http.StatusInternalServerError
			s.logger.ErrorContext(r.Context(), "operation failed", "operation", name, "error", err)
		}
		writeError(w, status, errResp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ErrorResponse is the DynamoDB error body.
type ErrorResponse struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
}

// NewErrorResponse maps an operation error to its DynamoDB error body.
// Errors implementing smithy.APIError keep their code; anything else is an
// InternalServerError.
func NewErrorResponse(err error) ErrorResponse {
	var serErr *serializationError
	var apiErr smithy.APIError
	switch {
	case errors.Is(err, ErrUnknownOperation):
		return ErrorResponse{Type: errorPrefix + CodeUnknownOperation, Message: err.Error()}
	case errors.As(err, &serErr):
		return ErrorResponse{Type: errorPrefix + CodeSerialization, Message: err.Error()}
	case errors.As(err, &apiErr):
		return ErrorResponse{Type: errorPrefix + apiErr.ErrorCode(), Message: apiErr.ErrorMessage()}
	default:
		return ErrorResponse{Type: errorPrefix + CodeInternal, Message: err.Error()}
	}
}

// Code returns the error code without the protocol prefix.
func (e ErrorResponse) Code() string {
	return strings.TrimPrefix(e.Type, errorPrefix)
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Type: errorPrefix + CodeInternal, Message: err.Error()})
	}
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("X-Amzn-Requestid", uuid.NewString())
	h.Set("X-Amz-Crc32", strconv.FormatUint(uint64(crc32.ChecksumIEEE(body)), 10))
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	writeJSON(w, status, resp)
}
