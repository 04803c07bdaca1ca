package sync

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRange indicates the requested start date is after the end date.
	// It is raised before any network call is made.
	ErrInvalidRange = errors.New("sync: start date cannot be after the end date")

	// ErrNoOrders indicates the platform returned no orders for the requested range.
	ErrNoOrders = errors.New("sync: no orders found")

	// ErrNoPersistedOrders indicates the re-sync window cannot be derived because
	// the store holds no orders yet.
	ErrNoPersistedOrders = errors.New("sync: no orders in the database to sync")

	// ErrConnectorNotFound indicates no connector credentials exist for a store.
	ErrConnectorNotFound = errors.New("sync: connector not found")

	// ErrRecordNotFound indicates a lookup by natural key matched nothing.
	ErrRecordNotFound = errors.New("sync: record not found")
)

// FetchError reports a non-recoverable failure while paging through one
// date interval. Retry policy is the caller's responsibility.
type FetchError struct {
	Interval Interval
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("sync: fetch %s: %v", e.Interval, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NormalizationError reports a single malformed platform record. The offending
// record is logged and skipped; the batch continues.
type NormalizationError struct {
	OrderNumber string
	Err         error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("sync: normalize order %s: %v", e.OrderNumber, e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// GraphQLError reports a server-side GraphQL error list. It aborts the
// inventory crawl; rows accumulated before the failure are still returned.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "sync: graphql: " + strings.Join(e.Messages, "; ")
}
