// Package nettest implements the simulated network quality measurement:
// concurrent latency, jitter, download, and upload stages composed into a
// quality score, with results cached per test id.
package nettest

import "errors"

var (
	// ErrTestInProgress indicates the client already has a running test.
	ErrTestInProgress = errors.New("a network test is already in progress for this client")

	// ErrTestNotFound indicates the test id is unknown or its result expired.
	ErrTestNotFound = errors.New("network test result not found")

	// ErrMissingTestID indicates no test id was supplied on lookup.
	ErrMissingTestID = errors.New("testId is required")
)
