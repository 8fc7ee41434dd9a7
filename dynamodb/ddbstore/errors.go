package ddbstore

import (
	"errors"
	"fmt"

	"github.com/acksell/dynamock/dynamodb/ddbstore/keyconditionexpr"
	"github.com/acksell/dynamock/dynamodb/table"

	"github.com/aws/smithy-go"
)

var (
	ErrUnknownTable = errors.New("unknown table")
	// ErrUnsupported is returned for request parameters the store does not emulate.
	ErrUnsupported = errors.New("unsupported request parameter")

	ErrPartitionKeyRequired = table.ErrPartitionKeyRequired
	ErrMissingSortKey       = table.ErrMissingSortKey
	ErrMissingPartitionKey  = table.ErrMissingPartitionKey
	ErrInvalidKeyType       = table.ErrInvalidKeyType
	ErrUnsupportedCondition = keyconditionexpr.ErrUnsupportedCondition
)

// DynamoDB error codes reported through APIError.
const (
	CodeResourceNotFound = "ResourceNotFoundException"
	CodeValidation       = "ValidationException"
)

// APIError carries the DynamoDB error code matching a store error, so callers
// can branch on smithy.APIError the same way they would against the real service.
// The underlying error is available through errors.Is / errors.As.
type APIError struct {
	Code string
	Err  error
}

var _ smithy.APIError = (*APIError)(nil)

func (e *APIError) Error() string                 { return e.Err.Error() }
func (e *APIError) Unwrap() error                 { return e.Err }
func (e *APIError) ErrorCode() string             { return e.Code }
func (e *APIError) ErrorMessage() string          { return e.Err.Error() }
func (e *APIError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func unknownTableError(name string) error {
	return &APIError{Code: CodeResourceNotFound, Err: fmt.Errorf("%w=%s", ErrUnknownTable, name)}
}

func validationError(err error) error {
	return &APIError{Code: CodeValidation, Err: err}
}

func unsupported(param string) error {
	return validationError(fmt.Errorf("%w: %s", ErrUnsupported, param))
}
