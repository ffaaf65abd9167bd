package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	results []domain.ScoredResult
	err     error
}

func (m *mockQueryService) Load(_ *domain.SearchArtifact) error { return m.err }

func (m *mockQueryService) Search(
	_ context.Context, _ string, _ domain.QueryOptions,
) ([]domain.ScoredResult, error) {
	return m.results, m.err
}

func (m *mockQueryService) Stats() (domain.IndexMetadata, error) {
	return domain.IndexMetadata{}, m.err
}

func sampleResults() []domain.ScoredResult {
	return []domain.ScoredResult{
		{Document: domain.SearchDocument{ID: "a", Title: "First", URL: "/a"}, DocIndex: 0, Score: 12},
		{Document: domain.SearchDocument{ID: "b", Title: "Second", URL: "/b"}, DocIndex: 1, Score: 5},
	}
}

func TestModel_SearchCompleted(t *testing.T) {
	m := NewModel(&mockQueryService{})

	updated, _ := m.Update(searchDoneMsg{query: "go", results: sampleResults()})
	model := updated.(Model)

	assert.Len(t, model.results, 2)
	assert.Equal(t, 0, model.selected)
	assert.Contains(t, model.status, "2 results")

	view := model.View()
	assert.Contains(t, view, "First")
	assert.Contains(t, view, "/b")
}

func TestModel_SearchError(t *testing.T) {
	m := NewModel(&mockQueryService{})

	updated, _ := m.Update(searchDoneMsg{query: "go", err: errors.New("index not loaded")})
	model := updated.(Model)

	assert.Empty(t, model.results)
	assert.Contains(t, model.View(), "index not loaded")
}

func TestModel_ZeroResults(t *testing.T) {
	m := NewModel(&mockQueryService{})

	updated, _ := m.Update(searchDoneMsg{query: "nothing"})
	model := updated.(Model)

	assert.Contains(t, model.status, "No results")
}

func TestModel_Selection(t *testing.T) {
	m := NewModel(&mockQueryService{})
	updated, _ := m.Update(searchDoneMsg{query: "go", results: sampleResults()})
	model := updated.(Model)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(Model)
	assert.Equal(t, 1, model.selected)

	// Selection stops at the last result.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(Model)
	assert.Equal(t, 1, model.selected)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model = updated.(Model)
	assert.Equal(t, 0, model.selected)
}

func TestModel_EnterRunsSearch(t *testing.T) {
	svc := &mockQueryService{results: sampleResults()}
	m := NewModel(svc)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(searchDoneMsg)
	require.True(t, ok)
	assert.Len(t, done.results, 2)
}

func TestModel_EmptyQueryIsNotAnError(t *testing.T) {
	svc := &mockQueryService{err: domain.ErrNoQuery}
	m := NewModel(svc)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	done, ok := cmd().(searchDoneMsg)
	require.True(t, ok)
	assert.NoError(t, done.err)
	assert.Empty(t, done.results)
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(&mockQueryService{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
