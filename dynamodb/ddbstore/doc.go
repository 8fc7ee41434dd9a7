// Package ddbstore is an in-memory stand-in for DynamoDB's item API, meant
// for exercising code written against the AWS SDK v2 client in tests.
//
// Tables are declared once, when the store is created, each with a partition
// key and an optional sort key. Keys are always string (S) attributes; all
// other attributes are stored and returned untouched.
//
//	store, err := ddbstore.NewFromKeyNames(ddbstore.StoreOptions{}, map[string]table.KeyNames{
//		"streets": {PartitionKey: "zipcode", SortKey: "streetName"},
//	})
//
// The store implements GetItem, PutItem, Query, DeleteItem and Scan with the
// same signatures as *dynamodb.Client, plus DescribeTable and ListTables.
// Query understands one key condition only: equality on the partition key.
// Results within a partition follow insertion order, not sort key order.
//
// Errors are *APIError values carrying the DynamoDB error code
// (ResourceNotFoundException, ValidationException) and wrapping one of the
// package's sentinel errors, e.g. ErrUnknownTable or ErrMissingSortKey.
//
// # Concurrency
//
// A Store does no locking. Operations run synchronously to completion, but
// PutItem and DeleteItem mutate shared maps, so concurrent use requires the
// caller to hold a single mutex across every call.
package ddbstore
