package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query        string   `json:"query,omitempty" jsonschema:"the search query; optional when filters are given"`
	Limit        int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (hard cap 20)"`
	ContentTypes []string `json:"content_types,omitempty" jsonschema:"restrict results to these content types"`
	Tags         []string `json:"tags,omitempty" jsonschema:"restrict results to documents carrying any of these tags"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID  string   `json:"document_id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	ContentType string   `json:"content_type"`
	Tags        []string `json:"tags,omitempty"`
	Score       int      `json:"score"`
	Highlights  []string `json:"highlights,omitempty"`
	Excerpt     string   `json:"excerpt,omitempty"`
}

// StatsInput is the input schema for the index_stats tool. It takes no
// arguments.
type StatsInput struct{}

// StatsOutput is the output schema for the index_stats tool.
type StatsOutput struct {
	Version           string  `json:"version"`
	BuildTimestamp    string  `json:"build_timestamp"`
	TotalDocuments    int     `json:"total_documents"`
	TotalTerms        int     `json:"total_terms"`
	AvgDocumentLength float64 `json:"avg_document_length"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the site's content index with ranked results",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_stats",
		Description: "Report the search index metadata",
	}, s.handleStats)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.QueryOptions{
		Limit:        input.Limit,
		ContentTypes: input.ContentTypes,
		Tags:         input.Tags,
		Now:          s.now(),
	}

	results, err := s.ports.Query.Search(ctx, input.Query, opts)
	if errors.Is(err, domain.ErrNoQuery) {
		// An empty call is a usable answer for an assistant, not a
		// transport failure.
		return nil, SearchOutput{Results: []SearchResultOutput{}}, nil
	}
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		doc := &results[i].Document
		out := SearchResultOutput{
			DocumentID:  doc.ID,
			Title:       doc.Title,
			URL:         doc.URL,
			ContentType: doc.ContentType.String(),
			Tags:        doc.Tags,
			Score:       results[i].Score,
			Excerpt:     doc.Excerpt,
		}
		for _, h := range results[i].Highlights {
			out.Highlights = append(out.Highlights, h.Snippet)
		}
		output.Results[i] = out
	}

	return nil, output, nil
}

// handleStats handles the index_stats tool invocation.
func (s *Server) handleStats(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	meta, err := s.ports.Query.Stats()
	if err != nil {
		return nil, StatsOutput{}, err
	}

	return nil, StatsOutput{
		Version:           meta.Version,
		BuildTimestamp:    meta.BuildTimestamp.UTC().Format(time.RFC3339),
		TotalDocuments:    meta.TotalDocuments,
		TotalTerms:        meta.TotalTerms,
		AvgDocumentLength: meta.AvgDocumentLength,
	}, nil
}
