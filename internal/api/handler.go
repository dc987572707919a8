package api

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
	"github.com/xplusplusai/fo-semantic-mcp/internal/api/middleware"
	"github.com/xplusplusai/fo-semantic-mcp/internal/config"
	"github.com/xplusplusai/fo-semantic-mcp/internal/models"
	"github.com/xplusplusai/fo-semantic-mcp/internal/searchapi"
)

// errUnexpectedSearch is reported for failures that are not SearchAPIErrors.
var errUnexpectedSearch = errors.New("internal server error")

type Handler struct {
	searcher searchapi.Searcher
	cfg      *config.Config
	logger   *zerolog.Logger
}

func NewHandler(searcher searchapi.Searcher, cfg *config.Config, logger *zerolog.Logger) *Handler {
	return &Handler{
		searcher: searcher,
		cfg:      cfg,
		logger:   logger,
	}
}

// POST /api/v1/search
// Body: models.SearchInput
// Returns: models.SearchResult
func (h *Handler) Search(req *restful.Request, resp *restful.Response) {
	var input models.SearchInput
	if err := req.ReadEntity(&input); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	searchReq, err := input.ToRequest(h.cfg.HardLimit)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Rejected invalid search request")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("query", searchReq.Query).
		Int("artifact_types", len(searchReq.ArtifactTypes)).
		Msg("Start search")

	result, err := h.searcher.Search(req.Request.Context(), searchReq)
	if err != nil {
		h.writeSearchError(resp, err)
		return
	}

	if result == nil {
		result = &models.SearchResult{LocalAssetsPath: h.cfg.LocalAssetsLabel()}
	}
	if result.Results == nil {
		result.Results = []models.ArtifactRecord{}
	}

	h.logger.Info().
		Int("results", len(result.Results)).
		Msg("Search complete")

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Name:    h.cfg.ServerName,
		Version: h.cfg.ServerVersion,
	})
}

func (h *Handler) writeSearchError(resp *restful.Response, err error) {
	apiErr, ok := searchapi.AsSearchAPIError(err)
	if !ok {
		h.logger.Error().Err(err).Msg("Unexpected search failure")
		middleware.HandleError(resp, errUnexpectedSearch, http.StatusInternalServerError)
		return
	}

	middleware.WriteError(resp, middleware.ErrorResponse{
		Status:     httpStatus(apiErr.Status),
		Message:    apiErr.Message,
		Suggestion: apiErr.Suggestion,
		Details:    apiErr.Details,
	})
}

// httpStatus maps a search failure onto an error status. An upstream 2xx
// that reported success=false becomes 502.
func httpStatus(status int) int {
	if status < 400 || status > 599 {
		return http.StatusBadGateway
	}
	return status
}
