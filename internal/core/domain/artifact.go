package domain

import (
	"fmt"
	"time"
)

// ArtifactVersion is the schema version written into new artifacts.
const ArtifactVersion = "1.0.0"

// IndexMetadata describes one build of a SearchArtifact.
// It is recomputed on every build, never mutated incrementally.
type IndexMetadata struct {
	// Version is the artifact schema version.
	Version string `json:"version"`

	// BuildTimestamp is when the build ran.
	BuildTimestamp time.Time `json:"build_timestamp"`

	// TotalDocuments is the number of indexed documents.
	TotalDocuments int `json:"total_documents"`

	// TotalTerms is the number of distinct tokens in the terms index.
	TotalTerms int `json:"total_terms"`

	// AvgDocumentLength is the mean content token count across documents.
	AvgDocumentLength float64 `json:"avg_document_length"`
}

// SearchArtifact is the complete serialisable output of one index build.
// It is the sole contract between the builder and the query engine: the
// two never share live memory. An artifact is treated as an immutable
// value after construction; replacing one is always a whole-artifact swap.
type SearchArtifact struct {
	// Documents is the ordered document list. A document's position here
	// is its document index, referenced by every posting list below.
	Documents []SearchDocument `json:"documents"`

	// Terms maps a normalised token to the indices of documents
	// containing it in title, tags, excerpt or content.
	Terms map[string][]int `json:"terms"`

	// Tags maps a literal tag string to the indices of documents
	// carrying it. Tags are opaque identifiers, not case-folded.
	Tags map[string][]int `json:"tags"`

	// ContentTypes maps a content type to the indices of documents
	// of that type.
	ContentTypes map[string][]int `json:"content_types"`

	// Metadata describes the build that produced this artifact.
	Metadata IndexMetadata `json:"metadata"`
}

// Validate checks the artifact invariants: every posting must reference
// a valid document index, document ids must be unique, and the metadata
// document count must match the document list. A failed validation means
// the artifact is corrupt and must be rejected wholesale, never repaired.
func (a *SearchArtifact) Validate() error {
	if a.Metadata.TotalDocuments != len(a.Documents) {
		return fmt.Errorf("%w: metadata reports %d documents, artifact has %d",
			ErrArtifactInvalid, a.Metadata.TotalDocuments, len(a.Documents))
	}

	seen := make(map[string]int, len(a.Documents))
	for i := range a.Documents {
		id := a.Documents[i].ID
		if id == "" {
			return fmt.Errorf("%w: document %d has empty id", ErrArtifactInvalid, i)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: documents %d and %d share id %q",
				ErrArtifactInvalid, prev, i, id)
		}
		seen[id] = i
	}

	if err := validatePostings("terms", a.Terms, len(a.Documents)); err != nil {
		return err
	}
	if err := validatePostings("tags", a.Tags, len(a.Documents)); err != nil {
		return err
	}
	return validatePostings("content_types", a.ContentTypes, len(a.Documents))
}

// validatePostings rejects any posting list entry outside [0, docs).
func validatePostings(index string, postings map[string][]int, docs int) error {
	for key, indices := range postings {
		for _, idx := range indices {
			if idx < 0 || idx >= docs {
				return fmt.Errorf("%w: %s[%q] references document %d, artifact has %d",
					ErrArtifactInvalid, index, key, idx, docs)
			}
		}
	}
	return nil
}
