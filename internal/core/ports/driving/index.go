package driving

import (
	"context"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
)

// IndexService builds search artifacts from content records.
type IndexService interface {
	// Build constructs one artifact from the ordered record list.
	// Per-record failures are collected in the report; a duplicate id
	// or too many failures aborts the build with an error.
	Build(ctx context.Context, records []domain.ContentRecord) (*domain.SearchArtifact, *domain.BuildReport, error)
}
