package driving

import (
	"context"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
)

// QueryService answers ranked search queries against a loaded artifact.
type QueryService interface {
	// Load validates and installs an artifact. The swap is atomic:
	// in-flight searches see either the old artifact in full or the
	// new one in full, never a mix.
	Load(artifact *domain.SearchArtifact) error

	// Search returns a ranked, bounded result list. An empty query
	// with no filters returns domain.ErrNoQuery; an empty query with
	// filters browses by filter alone.
	Search(ctx context.Context, query string, opts domain.QueryOptions) ([]domain.ScoredResult, error)

	// Stats returns the metadata of the loaded artifact.
	Stats() (domain.IndexMetadata, error)
}
