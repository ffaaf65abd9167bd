package domain

import "time"

// SearchDocument is the indexed projection of a ContentRecord.
// It is immutable after creation. Documents are referenced from the
// inverted indexes by their zero-based position within the artifact's
// document list; that ordinal is the join key for all postings and
// must not change for the lifetime of one built artifact.
type SearchDocument struct {
	// ID is the unique identifier, unique within one artifact.
	ID string `json:"id"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// Excerpt is a short summary used for display and scoring.
	Excerpt string `json:"excerpt"`

	// URL is the canonical location of the rendered page.
	URL string `json:"url"`

	// ContentType classifies the document.
	ContentType ContentType `json:"content_type"`

	// Tags is the ordered tag sequence, treated as opaque identifiers.
	Tags []string `json:"tags"`

	// Date is the publication date, used for recency scoring.
	Date time.Time `json:"date"`

	// Author is the author display name.
	Author string `json:"author"`

	// Content is the full text, retained for highlighting and
	// full-text term matching.
	Content string `json:"content"`

	// WordCount is the whitespace-delimited word count of Content.
	WordCount int `json:"word_count"`

	// ReadingTime is the estimated reading time in minutes,
	// derived from WordCount and rounded up.
	ReadingTime int `json:"reading_time"`
}

// Age returns how old the document is relative to now.
func (d *SearchDocument) Age(now time.Time) time.Duration {
	return now.Sub(d.Date)
}

// HasTag returns true if the document carries the literal tag.
func (d *SearchDocument) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
