package driven

import (
	"context"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
)

// ArtifactStore persists serialised search artifacts.
// Storage is the only I/O boundary around the query engine: loading an
// artifact is a distinct step from querying it. Implementations must
// write atomically so a reader never observes a half-written artifact.
type ArtifactStore interface {
	// Save persists the artifact, replacing any previous one.
	Save(ctx context.Context, artifact *domain.SearchArtifact) error

	// Load reads the stored artifact. Returns domain.ErrArtifactInvalid
	// (wrapped) when the stored form is malformed.
	Load(ctx context.Context) (*domain.SearchArtifact, error)

	// Path returns the storage location, for user-visible messages.
	Path() string

	// Close releases resources.
	Close() error
}
