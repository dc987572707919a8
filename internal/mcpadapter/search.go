package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/xplusplusai/fo-semantic-mcp/internal/config"
	"github.com/xplusplusai/fo-semantic-mcp/internal/models"
	"github.com/xplusplusai/fo-semantic-mcp/internal/searchapi"
)

// SearchToolName is the registered name of the search tool.
const SearchToolName = "search_fo_artifacts"

const (
	errorUsage          = "Resolve the reported issue before retrying the search."
	invalidInputUsage   = "Fix the invalid arguments before retrying the search."
	unexpectedErrorText = "Unexpected error while running search_fo_artifacts tool. Check server logs for details."
)

// SearchHandler turns search_fo_artifacts tool calls into search requests.
type SearchHandler struct {
	searcher searchapi.Searcher
	cfg      *config.Config
	logger   *zerolog.Logger
}

func NewSearchHandler(searcher searchapi.Searcher, cfg *config.Config, logger *zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		cfg:      cfg,
		logger:   logger,
	}
}

// Handle is passed to mcp.AddTool. It never returns a Go error: every failure
// is reported to the caller as an error result.
func (h *SearchHandler) Handle(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input models.SearchInput,
) (*mcp.CallToolResult, models.SearchResult, error) {
	searchReq, err := input.ToRequest(h.cfg.HardLimit)
	if err != nil {
		h.logger.Warn().Err(err).Str("tool", SearchToolName).Msg("rejected invalid tool arguments")
		return h.invalidInput(err)
	}

	h.logger.Info().
		Str("tool", SearchToolName).
		Str("query", searchReq.Query).
		Int("artifact_types", len(searchReq.ArtifactTypes)).
		Msg("Start search")

	result, err := h.searcher.Search(ctx, searchReq)
	if err != nil {
		return h.searchFailed(err)
	}

	var payload models.SearchResult
	if result != nil {
		payload = *result
	}
	if payload.Results == nil {
		payload.Results = []models.ArtifactRecord{}
	}

	text, err := FormatSuccess(payload)
	if err != nil {
		return h.searchFailed(err)
	}

	h.logger.Info().
		Str("tool", SearchToolName).
		Int("results", len(payload.Results)).
		Int("related", len(payload.Related)).
		Msg("Search complete")

	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: text}},
		StructuredContent: payload,
	}, payload, nil
}

func (h *SearchHandler) invalidInput(err error) (*mcp.CallToolResult, models.SearchResult, error) {
	payload := h.emptyPayload(invalidInputUsage)
	text := fmt.Sprintf("Invalid arguments for %s: %v", SearchToolName, err)
	return errorResult(text, payload), payload, nil
}

func (h *SearchHandler) searchFailed(err error) (*mcp.CallToolResult, models.SearchResult, error) {
	payload := h.emptyPayload(errorUsage)

	if apiErr, ok := searchapi.AsSearchAPIError(err); ok {
		payload.Raw = apiErr.Details
		return errorResult(FormatSearchError(apiErr), payload), payload, nil
	}

	h.logger.Error().Err(err).Str("tool", SearchToolName).Msg("unexpected tool failure")
	return errorResult(unexpectedErrorText, payload), payload, nil
}

func (h *SearchHandler) emptyPayload(usage string) models.SearchResult {
	return models.SearchResult{
		Results:           []models.ArtifactRecord{},
		UsageInstructions: usage,
		LocalAssetsPath:   h.cfg.LocalAssetsLabel(),
	}
}

func errorResult(text string, payload models.SearchResult) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError:           true,
		Content:           []mcp.Content{&mcp.TextContent{Text: text}},
		StructuredContent: payload,
	}
}

// FormatSuccess renders the human readable summary followed by the full
// structured payload as indented JSON.
func FormatSuccess(payload models.SearchResult) (string, error) {
	detail, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render search results: %w", err)
	}

	parts := []string{fmt.Sprintf("Found %d primary artifacts.", len(payload.Results))}
	if len(payload.Related) > 0 {
		parts = append(parts, fmt.Sprintf("Included %d related artifacts.", len(payload.Related)))
	}
	parts = append(parts,
		"Use fullLocalPath to read artifact XML files.",
		"\n\nDetailed Results:",
		string(detail),
	)
	return strings.Join(parts, " "), nil
}

// FormatSearchError renders a search failure and the suggested remedy.
func FormatSearchError(apiErr *searchapi.SearchAPIError) string {
	return fmt.Sprintf("%s\nSuggestion: %s", apiErr.Message, apiErr.Suggestion)
}
