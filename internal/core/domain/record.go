package domain

import "time"

// ContentRecord is a normalised content unit handed over by the site
// content pipeline. It is the raw input to index building; the pipeline
// owns parsing and normalisation, this core only consumes the result.
type ContentRecord struct {
	// ID is the unique identifier for the record.
	ID string `json:"id"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// URL is the canonical location of the rendered page.
	URL string `json:"url"`

	// ContentType classifies the record (article, book, snippet, project).
	ContentType ContentType `json:"content_type"`

	// Tags is the ordered tag sequence as authored. Duplicates are
	// allowed by the source and carried through as-is.
	Tags []string `json:"tags"`

	// Date is the publication date.
	Date time.Time `json:"date"`

	// Author is the author display name.
	Author string `json:"author"`

	// Content is the full text body after normalisation.
	Content string `json:"content"`

	// Excerpt is a short human-readable summary. May be empty, in which
	// case the builder derives one from Content.
	Excerpt string `json:"excerpt"`
}
