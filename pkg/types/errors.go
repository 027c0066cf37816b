package types

import "errors"

// Run failure errors. Each run ends with at most one of these, wrapped with
// context describing where it happened.
var (
	// ErrMalformedInput reports a document that is not valid JSON.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnrecognizedFormat reports valid JSON that is neither a product array
	// nor a schema document.
	ErrUnrecognizedFormat = errors.New("unrecognized format")

	// ErrWriteFailure reports a chunk that could not be persisted. Chunks
	// flushed before the failure stay in place.
	ErrWriteFailure = errors.New("write failure")
)
