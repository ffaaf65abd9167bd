package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMissingID indicates a content record arrived without an id.
	ErrMissingID = errors.New("missing record id")

	// ErrMissingURL indicates a content record arrived without a url.
	ErrMissingURL = errors.New("missing record url")

	// ErrContentTooLarge indicates a record's content exceeds the
	// configured per-document maximum.
	ErrContentTooLarge = errors.New("content exceeds maximum size")

	// ErrDuplicateID indicates two records share an id. Postings are
	// positional, so a collision corrupts the artifact; the whole
	// build is rejected rather than silently overwriting.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrTooManyFailures indicates the number of skipped records
	// exceeded the configured threshold and the build was aborted.
	ErrTooManyFailures = errors.New("too many record failures")

	// ErrArtifactInvalid indicates a loaded artifact violates its
	// invariants. Always fatal to the load; never partially accepted.
	ErrArtifactInvalid = errors.New("artifact invalid")

	// ErrNotLoaded indicates a query arrived before any artifact
	// was loaded.
	ErrNotLoaded = errors.New("no artifact loaded")

	// ErrNoQuery indicates an empty query with no filters. This is a
	// precondition notice, observably distinct from a successful
	// zero-match result.
	ErrNoQuery = errors.New("no query supplied")
)

// RecordError attributes a build failure to one offending record.
type RecordError struct {
	// RecordID is the id of the offending record. May be empty when
	// the failure is the missing id itself.
	RecordID string

	// Err is the underlying cause.
	Err error
}

// Error returns the error message.
func (e *RecordError) Error() string {
	if e.RecordID == "" {
		return fmt.Sprintf("record (no id): %v", e.Err)
	}
	return fmt.Sprintf("record %q: %v", e.RecordID, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *RecordError) Unwrap() error {
	return e.Err
}
