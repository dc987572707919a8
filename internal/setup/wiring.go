package setup

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/xplusplusai/fo-semantic-mcp/internal/config"
	"github.com/xplusplusai/fo-semantic-mcp/internal/metrics"
	"github.com/xplusplusai/fo-semantic-mcp/internal/searchapi"
)

type Dependencies struct {
	Config   *config.Config
	Searcher *searchapi.Client
	Metrics  *metrics.Metrics
	Logger   *zerolog.Logger
}

// Wire builds the search client and its collaborators from cfg. Metrics are
// registered on reg; pass nil to skip them.
func Wire(cfg *config.Config, reg prometheus.Registerer, logger *zerolog.Logger) (*Dependencies, error) {
	if cfg == nil {
		return nil, errors.New("failed to wire dependencies: nil config")
	}

	opts := []searchapi.Option{
		searchapi.WithHTTPClient(newHTTPClient()),
	}

	var m *metrics.Metrics
	if reg != nil {
		m = metrics.New(reg)
		opts = append(opts, searchapi.WithObserver(m))
	}

	client := searchapi.NewClient(cfg, logger, opts...)

	logger.Info().
		Str("server", cfg.ServerName).
		Str("version", cfg.ServerVersion).
		Str("search_api", cfg.SearchAPIBaseURL).
		Int("timeout_ms", cfg.RequestTimeoutMs).
		Str("local_assets", cfg.LocalAssetsLabel()).
		Msg("Dependencies wired")

	return &Dependencies{
		Config:   cfg,
		Searcher: client,
		Metrics:  m,
		Logger:   logger,
	}, nil
}

// newHTTPClient keeps a small idle pool to the search host. Per-request
// deadlines come from the search client, not from http.Client.Timeout.
func newHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 100
	transport.MaxIdleConnsPerHost = 10
	return &http.Client{Transport: transport}
}
