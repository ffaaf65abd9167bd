// Package file provides a JSON file implementation of the artifact
// store. The serialised form is the wire contract consumed by any
// client-side search implementation, so field names follow the
// artifact schema exactly.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
	"github.com/h3x49r4m/peta-search/internal/core/ports/driven"
	"github.com/h3x49r4m/peta-search/internal/logger"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore persists one artifact as a JSON file.
type ArtifactStore struct {
	path string
}

// NewArtifactStore creates a store writing to the given path.
func NewArtifactStore(path string) *ArtifactStore {
	return &ArtifactStore{path: path}
}

// Save writes the artifact atomically: a temp file in the target
// directory is renamed over the destination, so a concurrent reader
// never observes a half-written artifact.
func (s *ArtifactStore) Save(_ context.Context, artifact *domain.SearchArtifact) error {
	data, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*.json")
	if err != nil {
		return fmt.Errorf("creating temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp artifact: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing artifact: %w", err)
	}

	logger.Info("Artifact written: %s (%d bytes)", s.path, len(data))
	return nil
}

// Load reads and decodes the stored artifact. A malformed file is
// reported as an invalid artifact, never partially accepted.
func (s *ArtifactStore) Load(_ context.Context) (*domain.SearchArtifact, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact %s: %w", s.path, err)
	}

	var artifact domain.SearchArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parsing artifact %s: %w: %v",
			s.path, domain.ErrArtifactInvalid, err)
	}

	return &artifact, nil
}

// Path returns the artifact file path.
func (s *ArtifactStore) Path() string {
	return s.path
}

// Close releases resources. File stores hold none.
func (s *ArtifactStore) Close() error {
	return nil
}
