package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
	"github.com/xplusplusai/fo-semantic-mcp/internal/api/middleware"
	"github.com/xplusplusai/fo-semantic-mcp/internal/config"
	"github.com/xplusplusai/fo-semantic-mcp/internal/models"
	"github.com/xplusplusai/fo-semantic-mcp/internal/searchapi"
	"github.com/xplusplusai/fo-semantic-mcp/internal/searchapi/mocks"
	"go.uber.org/mock/gomock"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func testConfig() *config.Config {
	return &config.Config{
		ServerName:       config.DefaultServerName,
		ServerVersion:    config.DefaultServerVersion,
		SearchAPIBaseURL: "http://search.test",
		APIKey:           "test-key",
		RequestTimeoutMs: config.DefaultTimeoutMs,
		DefaultLimit:     config.DefaultLimit,
		HardLimit:        config.HardLimit,
	}
}

func newTestServer(t *testing.T, searcher searchapi.Searcher) *httptest.Server {
	t.Helper()
	cfg := testConfig()

	container := restful.NewContainer()
	container.Filter(middleware.RecoverPanic)
	RegisterRoutes(container, NewHandler(searcher, cfg, testLogger()))
	RegisterOpenAPI(container, cfg.ServerVersion)

	server := httptest.NewServer(container)
	t.Cleanup(server.Close)
	return server
}

func postSearch(t *testing.T, server *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(server.URL+"/api/v1/search", restful.MIME_JSON, strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/v1/search failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := newTestServer(t, mocks.NewMockSearcher(ctrl))

	resp, err := http.Get(server.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET /api/v1/health failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if health.Status != "ok" || health.Version != config.DefaultServerVersion {
		t.Errorf("Unexpected health response %+v", health)
	}
}

func TestSearch_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockSearcher(ctrl)
	searcher.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
			if req.Query != "sales order headers" {
				t.Errorf("Expected query 'sales order headers', got %q", req.Query)
			}
			if req.Limit == nil || *req.Limit != 5 {
				t.Errorf("Expected limit 5, got %v", req.Limit)
			}
			return &models.SearchResult{
				Results: []models.ArtifactRecord{
					{FoName: "SalesTable", ArtifactType: "Table", FilePath: "AxTable/SalesTable.xml"},
				},
				UsageInstructions: "Use file reading tools on fullLocalPath values to inspect artifact contents.",
				LocalAssetsPath:   models.LocalAssetsNotConfigured,
			}, nil
		})

	server := newTestServer(t, searcher)
	resp := postSearch(t, server, `{"query":"sales order headers","limit":5}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result models.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if len(result.Results) != 1 || result.Results[0].FoName != "SalesTable" {
		t.Errorf("Unexpected results %+v", result.Results)
	}
	if result.LocalAssetsPath != models.LocalAssetsNotConfigured {
		t.Errorf("Expected %q, got %q", models.LocalAssetsNotConfigured, result.LocalAssetsPath)
	}
}

func TestSearch_BadRequest(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError string
	}{
		{"malformed json", `{"query":`, ""},
		{"empty query", `{"query":""}`, "query is required"},
		{"limit too large", `{"query":"q","limit":51}`, "limit must be between 1 and 50"},
		{"threshold out of range", `{"query":"q","threshold":2}`, "threshold must be between 0 and 1"},
		{"unknown artifact type", `{"query":"q","artifact_types":["Report"]}`, "unknown artifact type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			server := newTestServer(t, mocks.NewMockSearcher(ctrl))

			resp := postSearch(t, server, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", resp.StatusCode)
			}

			var body middleware.ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if !strings.Contains(body.Message, tt.expectError) {
				t.Errorf("Expected message containing %q, got %q", tt.expectError, body.Message)
			}
		})
	}
}

func TestSearch_SearchErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		message        string
		suggestion     string
	}{
		{
			name:           "unauthorized",
			err:            &searchapi.SearchAPIError{Message: "Search API responded with status 401", Status: 401, Suggestion: searchapi.SuggestAuth},
			expectedStatus: http.StatusUnauthorized,
			message:        "Search API responded with status 401",
			suggestion:     searchapi.SuggestAuth,
		},
		{
			name:           "timeout",
			err:            &searchapi.SearchAPIError{Message: "Search request timed out after 50ms", Status: 408, Suggestion: searchapi.SuggestTimeout},
			expectedStatus: http.StatusRequestTimeout,
			message:        "Search request timed out after 50ms",
			suggestion:     searchapi.SuggestTimeout,
		},
		{
			name:           "unsuccessful envelope",
			err:            &searchapi.SearchAPIError{Message: "Search API returned unsuccessful response", Status: 200, Suggestion: searchapi.SuggestCheckRequest},
			expectedStatus: http.StatusBadGateway,
			message:        "Search API returned unsuccessful response",
			suggestion:     searchapi.SuggestCheckRequest,
		},
		{
			name:           "unexpected",
			err:            errors.New("dial tcp 10.0.0.7:443: connection reset by peer"),
			expectedStatus: http.StatusInternalServerError,
			message:        "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			searcher := mocks.NewMockSearcher(ctrl)
			searcher.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			server := newTestServer(t, searcher)
			resp := postSearch(t, server, `{"query":"customer"}`)

			if resp.StatusCode != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}

			var body middleware.ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if body.Message != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, body.Message)
			}
			if body.Suggestion != tt.suggestion {
				t.Errorf("Expected suggestion %q, got %q", tt.suggestion, body.Suggestion)
			}
		})
	}
}

func TestOpenAPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := newTestServer(t, mocks.NewMockSearcher(ctrl))

	resp, err := http.Get(server.URL + OpenAPIPath)
	if err != nil {
		t.Fatalf("GET %s failed: %v", OpenAPIPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("failed to decode openapi document: %v", err)
	}
	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		t.Fatalf("Expected paths in openapi document, got %v", doc)
	}
	if _, ok := paths["/api/v1/search"]; !ok {
		t.Errorf("Expected /api/v1/search in openapi paths, got %v", paths)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		in, out int
	}{
		{200, 502},
		{400, 400},
		{429, 429},
		{503, 503},
		{0, 502},
		{600, 502},
	}
	for _, tt := range tests {
		if got := httpStatus(tt.in); got != tt.out {
			t.Errorf("httpStatus(%d): expected %d, got %d", tt.in, tt.out, got)
		}
	}
}
