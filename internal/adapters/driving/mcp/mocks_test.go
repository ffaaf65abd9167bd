package mcp

import (
	"context"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	results []domain.ScoredResult
	meta    domain.IndexMetadata
	err     error

	// lastQuery and lastOpts capture the most recent Search call.
	lastQuery string
	lastOpts  domain.QueryOptions
}

func (m *mockQueryService) Load(_ *domain.SearchArtifact) error {
	return m.err
}

func (m *mockQueryService) Search(
	_ context.Context,
	query string,
	opts domain.QueryOptions,
) ([]domain.ScoredResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockQueryService) Stats() (domain.IndexMetadata, error) {
	return m.meta, m.err
}
