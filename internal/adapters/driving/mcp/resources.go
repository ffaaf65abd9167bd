package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Peta resources.
const uriScheme = "peta://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index/metadata",
		Name:        "index-metadata",
		Description: "Metadata of the loaded search index",
		MIMEType:    "application/json",
	}, s.handleMetadataResource)
}

// handleMetadataResource returns the loaded artifact's metadata.
func (s *Server) handleMetadataResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	meta, err := s.ports.Query.Stats()
	if err != nil {
		return nil, fmt.Errorf("reading index metadata: %w", err)
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encoding index metadata: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
