package driven

import (
	"context"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
)

// RecordSource supplies the ordered content records for one build.
// The order defines document index assignment, so implementations must
// return records in a stable order across builds of the same input.
type RecordSource interface {
	// Records returns all content records, in build order.
	Records(ctx context.Context) ([]domain.ContentRecord, error)
}
