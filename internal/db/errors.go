package db

import "errors"

// Domain-level database error sentinels.
var (
	// ErrUnavailable means no connection to the data store could be obtained.
	ErrUnavailable = errors.New("data store unavailable")

	// ErrQuery means the data store was reached but the statement failed.
	ErrQuery = errors.New("query failed")
)
