package searchapi

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/xplusplusai/fo-semantic-mcp/internal/config"
	"github.com/xplusplusai/fo-semantic-mcp/internal/models"
)

const searchPath = "/api/v1/search"

const (
	usageWithResults = "Use file reading tools on fullLocalPath values to inspect artifact contents."
	usageNoResults   = "No results found. Try broadening your query or removing filters."
)

// Observer receives the outcome of every search call.
type Observer interface {
	ObserveSearch(outcome string, status int, duration time.Duration)
}

// Outcome labels passed to Observer.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Timeouts are still enforced per request.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithObserver registers an Observer for search outcomes.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// Client talks to the remote FO-Index search service.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	observer   Observer
	logger     *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger, opts ...Option) *Client {
	scoped := logger.With().Str("component", "SearchApiClient").Logger()
	c := &Client{
		cfg:        cfg,
		httpClient: http.DefaultClient,
		logger:     &scoped,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type requestBody struct {
	Query     string         `json:"query"`
	Limit     int            `json:"limit"`
	Threshold *float64       `json:"threshold,omitempty"`
	Filters   map[string]any `json:"filters,omitempty"`
}

// Search issues a single search call. Every failure is returned as a *SearchAPIError.
func (c *Client) Search(ctx context.Context, req models.SearchRequest) (result *models.SearchResult, err error) {
	start := time.Now()
	defer func() {
		c.observe(start, err)
	}()

	body := c.buildRequestBody(req)
	url := c.cfg.SearchAPIBaseURL + searchPath

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, c.fail(newUnexpectedError(err))
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout())
	defer cancel()

	httpReq, err := http.NewRequestWithContext(timeoutCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, c.fail(newUnexpectedError(err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.cfg.APIKey)

	c.logger.Debug().
		Str("url", url).
		RawJSON("body", payload).
		Msg("Issuing search request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(timeoutCtx, err) {
			return nil, c.fail(newTimeoutError(c.cfg.RequestTimeoutMs))
		}
		return nil, c.fail(newUnexpectedError(err))
	}
	defer resp.Body.Close()

	env, readErr := decodeEnvelope(resp.Body)
	if readErr != nil && isTimeout(timeoutCtx, readErr) {
		return nil, c.fail(newTimeoutError(c.cfg.RequestTimeoutMs))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(newStatusError(env, resp.StatusCode))
	}

	if !env.Success || !env.HasData {
		return nil, c.fail(newUnsuccessfulError(env, resp.StatusCode))
	}

	results := c.buildResults(env.Results)
	return &models.SearchResult{
		Results:           results,
		UsageInstructions: deriveUsage(len(results)),
		LocalAssetsPath:   c.cfg.LocalAssetsLabel(),
		Raw:               env.Raw,
	}, nil
}

func (c *Client) buildRequestBody(req models.SearchRequest) requestBody {
	limit := c.cfg.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	body := requestBody{
		Query: req.Query,
		Limit: c.cfg.ClampLimit(limit),
	}

	switch {
	case req.Threshold != nil:
		threshold := *req.Threshold
		body.Threshold = &threshold
	case c.cfg.DefaultThreshold != nil:
		threshold := *c.cfg.DefaultThreshold
		body.Threshold = &threshold
	}

	if filter := artifactTypeFilter(req.ArtifactTypes); filter != nil {
		body.Filters = map[string]any{"artifactType": filter}
	}

	if req.Filters != nil && req.Filters.FoName != "" {
		if body.Filters == nil {
			body.Filters = map[string]any{}
		}
		body.Filters["foName"] = req.Filters.FoName
	}

	return body
}

// artifactTypeFilter emits a bare value for a single type and an $in
// membership object for several. Duplicates collapse, first occurrence wins.
func artifactTypeFilter(types []models.ArtifactType) any {
	seen := make(map[models.ArtifactType]struct{}, len(types))
	unique := make([]string, 0, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, string(t))
	}

	switch len(unique) {
	case 0:
		return nil
	case 1:
		return unique[0]
	default:
		return map[string][]string{"$in": unique}
	}
}

func (c *Client) buildResults(items []any) []models.ArtifactRecord {
	results := make([]models.ArtifactRecord, 0, len(items))
	for i, item := range items {
		record, invalid := decodeRecord(item)
		if len(invalid) > 0 {
			c.logger.Warn().Int("index", i).Strs("fields", invalid).Msg("Search result has fields of unexpected type")
		}
		if path := ResolveLocalPath(c.cfg.LocalAssetsPath, record.FilePath); path != "" {
			record.FullLocalPath = path
		}
		results = append(results, record)
	}
	return results
}

func (c *Client) fail(apiErr *SearchAPIError) *SearchAPIError {
	c.logger.Error().
		Int("status", apiErr.Status).
		Str("suggestion", apiErr.Suggestion).
		Interface("details", apiErr.Details).
		Str("stage", "search-response").
		Msg(apiErr.Message)
	return apiErr
}

func (c *Client) observe(start time.Time, err error) {
	if c.observer == nil {
		return
	}
	if apiErr, ok := AsSearchAPIError(err); ok {
		c.observer.ObserveSearch(OutcomeError, apiErr.Status, time.Since(start))
		return
	}
	c.observer.ObserveSearch(OutcomeSuccess, http.StatusOK, time.Since(start))
}

func isTimeout(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func deriveUsage(resultCount int) string {
	if resultCount > 0 {
		return usageWithResults
	}
	return usageNoResults
}
