package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrValidationFailed = goerr.New("validation failed")
	ErrInvalidOption    = goerr.New("invalid option")
	ErrUnauthenticated  = goerr.New("unauthenticated")

	// ErrScanNotFound covers both a missing record and a record owned by
	// another user. The two cases must stay indistinguishable to the caller;
	// do not split this into a separate "forbidden" error.
	ErrScanNotFound = goerr.New("scan not found")

	ErrUpstreamFailed = goerr.New("workflow engine request failed")
)
