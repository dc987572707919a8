package searchapi

import (
	"context"

	"github.com/xplusplusai/fo-semantic-mcp/internal/models"
)

//go:generate mockgen -source=searcher.go -destination=mocks/mock_searcher.go -package=mocks

// Searcher runs a semantic search against FO-Index.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error)
}

var _ Searcher = (*Client)(nil)
