package domain

const unknownDescription = "Unknown"

// ContentType classifies a content record.
type ContentType string

// Known content types.
const (
	// ContentTypeArticle is a standalone article.
	ContentTypeArticle ContentType = "article"

	// ContentTypeBook is a chapter-structured book.
	ContentTypeBook ContentType = "book"

	// ContentTypeSnippet is a short code or prose snippet.
	ContentTypeSnippet ContentType = "snippet"

	// ContentTypeProject is a project page.
	ContentTypeProject ContentType = "project"
)

// IsValid returns true if the content type is recognised.
// Unknown types are still indexed as opaque strings; this only
// drives warnings at build time.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeArticle, ContentTypeBook, ContentTypeSnippet, ContentTypeProject:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ContentType) String() string {
	return string(t)
}

// Description returns a human-readable description of the type.
func (t ContentType) Description() string {
	switch t {
	case ContentTypeArticle:
		return "Article"
	case ContentTypeBook:
		return "Book"
	case ContentTypeSnippet:
		return "Snippet"
	case ContentTypeProject:
		return "Project"
	default:
		return unknownDescription
	}
}
