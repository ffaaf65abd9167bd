package domain

import "time"

// MaxResults is the hard cap on returned results. Callers needing more
// must paginate outside this core; the cap is a contract, not a default.
const MaxResults = 20

// HighlightField identifies which document field a highlight came from.
type HighlightField string

// Fields eligible for highlighting. Titles are rendered whole by every
// consumer, so only excerpt and content produce snippets.
const (
	// HighlightExcerpt marks a snippet taken from the excerpt.
	HighlightExcerpt HighlightField = "excerpt"

	// HighlightContent marks a snippet taken from the content body.
	HighlightContent HighlightField = "content"
)

// Highlight is a display-only snippet with the matched term marked.
// Highlighting never affects scoring or ranking.
type Highlight struct {
	// Field is the source field of the snippet.
	Field HighlightField `json:"field"`

	// Snippet is a bounded-length extract with the match wrapped
	// in <mark> tags.
	Snippet string `json:"snippet"`
}

// QueryOptions configures a search request.
type QueryOptions struct {
	// Limit is the maximum number of results, clamped to MaxResults.
	// Zero or negative means MaxResults.
	Limit int

	// ContentTypes restricts results to documents of any listed type.
	ContentTypes []string

	// Tags restricts results to documents carrying any listed tag.
	Tags []string

	// Now is the instant recency scoring is computed against. The core
	// never reads a global clock; callers supply it so tests can pin
	// scores. A zero Now disables the recency bonus.
	Now time.Time
}

// DefaultQueryOptions returns sensible defaults.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Limit: MaxResults}
}

// ScoredResult is a single ranked search hit.
type ScoredResult struct {
	// Document is the matched document.
	Document SearchDocument `json:"document"`

	// DocIndex is the document's position within the artifact,
	// used as the deterministic tie-breaker.
	DocIndex int `json:"doc_index"`

	// Score is the accumulated relevance score.
	Score int `json:"score"`

	// Highlights contains display snippets with matched terms.
	Highlights []Highlight `json:"highlights,omitempty"`
}
