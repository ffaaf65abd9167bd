package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestSearchDocument_Age tests age computation against a supplied instant.
func TestSearchDocument_Age(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	doc := &SearchDocument{Date: now.AddDate(0, 0, -10)}

	assert.Equal(t, 10*24*time.Hour, doc.Age(now))
}

// TestSearchDocument_HasTag tests literal tag membership.
func TestSearchDocument_HasTag(t *testing.T) {
	doc := &SearchDocument{Tags: []string{"ml", "AI"}}

	assert.True(t, doc.HasTag("ml"))
	assert.True(t, doc.HasTag("AI"))
	// Tags are opaque identifiers, no case folding.
	assert.False(t, doc.HasTag("ai"))
	assert.False(t, doc.HasTag("food"))
}

// TestDefaultQueryOptions tests the default limit.
func TestDefaultQueryOptions(t *testing.T) {
	opts := DefaultQueryOptions()
	assert.Equal(t, MaxResults, opts.Limit)
	assert.Empty(t, opts.ContentTypes)
	assert.Empty(t, opts.Tags)
	assert.True(t, opts.Now.IsZero())
}
