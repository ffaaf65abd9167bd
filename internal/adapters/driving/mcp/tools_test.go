package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockQuery := &mockQueryService{
			results: []domain.ScoredResult{
				{
					Document: domain.SearchDocument{
						ID:          "post-1",
						Title:       "Test Post",
						URL:         "/posts/test",
						ContentType: domain.ContentTypeArticle,
						Tags:        []string{"go"},
						Excerpt:     "An excerpt",
					},
					DocIndex: 0,
					Score:    12,
					Highlights: []domain.Highlight{
						{Field: domain.HighlightExcerpt, Snippet: "An <mark>excerpt</mark>"},
					},
				},
			},
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "test", Limit: 10}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "post-1", output.Results[0].DocumentID)
		assert.Equal(t, "Test Post", output.Results[0].Title)
		assert.Equal(t, "/posts/test", output.Results[0].URL)
		assert.Equal(t, "article", output.Results[0].ContentType)
		assert.Equal(t, 12, output.Results[0].Score)
		assert.Equal(t, []string{"An <mark>excerpt</mark>"}, output.Results[0].Highlights)
		assert.Equal(t, "test", mockQuery.lastQuery)
		assert.Equal(t, 10, mockQuery.lastOpts.Limit)
		assert.False(t, mockQuery.lastOpts.Now.IsZero())
	})

	t.Run("forwards filters", func(t *testing.T) {
		mockQuery := &mockQueryService{}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		input := SearchInput{
			Query:        "test",
			ContentTypes: []string{"article", "book"},
			Tags:         []string{"go"},
		}
		_, _, err = server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, []string{"article", "book"}, mockQuery.lastOpts.ContentTypes)
		assert.Equal(t, []string{"go"}, mockQuery.lastOpts.Tags)
	})

	t.Run("empty query without filters is an empty result", func(t *testing.T) {
		mockQuery := &mockQueryService{err: domain.ErrNoQuery}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Empty(t, output.Results)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockQuery := &mockQueryService{err: errors.New("search failed")}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleStats(t *testing.T) {
	ctx := context.Background()

	t.Run("reports metadata", func(t *testing.T) {
		mockQuery := &mockQueryService{
			meta: domain.IndexMetadata{
				Version:           domain.ArtifactVersion,
				BuildTimestamp:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				TotalDocuments:    42,
				TotalTerms:        1337,
				AvgDocumentLength: 250.5,
			},
		}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, output, err := server.handleStats(ctx, nil, StatsInput{})

		require.NoError(t, err)
		assert.Equal(t, domain.ArtifactVersion, output.Version)
		assert.Equal(t, "2025-06-01T12:00:00Z", output.BuildTimestamp)
		assert.Equal(t, 42, output.TotalDocuments)
		assert.Equal(t, 1337, output.TotalTerms)
		assert.Equal(t, 250.5, output.AvgDocumentLength)
	})

	t.Run("propagates not-loaded", func(t *testing.T) {
		mockQuery := &mockQueryService{err: domain.ErrNotLoaded}
		server, err := NewServer(&Ports{Query: mockQuery})
		require.NoError(t, err)

		_, _, err = server.handleStats(ctx, nil, StatsInput{})
		assert.ErrorIs(t, err, domain.ErrNotLoaded)
	})
}

func TestNewServer_RequiresQueryService(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingQueryService)
}

// TestNewServer_WithClock tests that a pinned clock flows through to
// the recency instant on search options.
func TestNewServer_WithClock(t *testing.T) {
	pinned := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mockQuery := &mockQueryService{}

	server, err := NewServer(&Ports{Query: mockQuery}, WithClock(func() time.Time { return pinned }))
	require.NoError(t, err)

	_, _, err = server.handleSearch(context.Background(), nil, SearchInput{Query: "test"})
	require.NoError(t, err)
	assert.Equal(t, pinned, mockQuery.lastOpts.Now)
}
