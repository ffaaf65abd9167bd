package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrMissingID", ErrMissingID},
		{"ErrMissingURL", ErrMissingURL},
		{"ErrContentTooLarge", ErrContentTooLarge},
		{"ErrDuplicateID", ErrDuplicateID},
		{"ErrTooManyFailures", ErrTooManyFailures},
		{"ErrArtifactInvalid", ErrArtifactInvalid},
		{"ErrNotLoaded", ErrNotLoaded},
		{"ErrNoQuery", ErrNoQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestRecordError_Error tests message formatting with and without an id.
func TestRecordError_Error(t *testing.T) {
	withID := &RecordError{RecordID: "x", Err: ErrMissingURL}
	assert.Equal(t, `record "x": missing record url`, withID.Error())

	noID := &RecordError{Err: ErrMissingID}
	assert.Equal(t, "record (no id): missing record id", noID.Error())
}

// TestRecordError_Unwrap tests errors.Is through the wrapper.
func TestRecordError_Unwrap(t *testing.T) {
	re := &RecordError{RecordID: "x", Err: ErrContentTooLarge}
	assert.True(t, errors.Is(re, ErrContentTooLarge))
	assert.False(t, errors.Is(re, ErrMissingID))
}

// TestBuildReport_SkippedIDs tests id extraction for failure reporting.
func TestBuildReport_SkippedIDs(t *testing.T) {
	r := &BuildReport{
		Skipped: []*RecordError{
			{RecordID: "a", Err: ErrMissingURL},
			{RecordID: "b", Err: ErrContentTooLarge},
		},
	}
	assert.Equal(t, []string{"a", "b"}, r.SkippedIDs())
}
