// Package file provides a record source backed by a JSON manifest.
// The site content pipeline writes one manifest per build; record order
// in the manifest defines document index assignment.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
	"github.com/h3x49r4m/peta-search/internal/core/ports/driven"
	"github.com/h3x49r4m/peta-search/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.RecordSource = (*Source)(nil)

// Source reads content records from a JSON manifest file.
type Source struct {
	path string
}

// NewSource creates a record source for the given manifest path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Records reads and decodes the manifest. The decoded order is
// preserved: it is the build order.
func (s *Source) Records(_ context.Context) ([]domain.ContentRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", s.path, err)
	}

	var records []domain.ContentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", s.path, err)
	}

	logger.Debug("Manifest %s: %d records", s.path, len(records))
	return records, nil
}

// Path returns the manifest path.
func (s *Source) Path() string {
	return s.path
}
