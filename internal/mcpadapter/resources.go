package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/xplusplusai/fo-semantic-mcp/internal/instructions"
)

// SearchToolDocURI addresses the markdown reference for the search tool.
const SearchToolDocURI = "fo-index://docs/search_fo_artifacts"

const markdownMIME = "text/markdown"

func searchToolDocResource() *mcp.Resource {
	return &mcp.Resource{
		URI:         SearchToolDocURI,
		Name:        "search_fo_artifacts reference",
		Description: "Parameters, response fields and usage examples for the search_fo_artifacts tool.",
		MIMEType:    markdownMIME,
	}
}

func readSearchToolDoc(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      SearchToolDocURI,
				MIMEType: markdownMIME,
				Text:     instructions.SearchToolDoc(),
			},
		},
	}, nil
}
