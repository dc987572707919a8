package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"github.com/xplusplusai/fo-semantic-mcp/internal/models"
)

const (
	DefaultServerName    = "fo-semantic-mcp"
	DefaultServerVersion = "2.0.5"
	DefaultBaseURL       = "https://search.xplusplus.ai"
	DefaultTimeoutMs     = 10_000
	DefaultLimit         = 10
	HardLimit            = 50
	DefaultAPIPort       = "18082"
	DefaultLogLevel      = "info"
)

// Environment variable names.
const (
	EnvAPIKey           = "FOINDEX_API_KEY"
	EnvServerName       = "FO_SEMANTIC_MCP_NAME"
	EnvServerVersion    = "FO_SEMANTIC_MCP_VERSION"
	EnvBaseURL          = "FOINDEX_DEV_API_URL"
	EnvTimeoutMs        = "FO_SEARCH_TIMEOUT_MS"
	EnvDefaultLimit     = "FO_SEARCH_DEFAULT_LIMIT"
	EnvMaxLimit         = "FO_SEARCH_MAX_LIMIT"
	EnvDefaultThreshold = "FO_SEARCH_DEFAULT_THRESHOLD"
	EnvThresholdAlias   = "FO_THRESHOLD"
	EnvLocalAssetsPath  = "FO_LOCAL_ASSETS_PATH"
	EnvConfigFile       = "FO_SEMANTIC_MCP_CONFIG"
	EnvAPIPort          = "FO_SEMANTIC_API_PORT"
	EnvLogLevel         = "LOG_LEVEL"
)

// ConfigError reports configuration that prevents the server from starting.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// IsConfigError reports whether err is, or wraps, a *ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// Config is read once at startup and treated as immutable afterwards.
type Config struct {
	ServerName       string
	ServerVersion    string
	SearchAPIBaseURL string
	APIKey           string
	// LocalAssetsPath is the absolute local assets root, empty when disabled.
	LocalAssetsPath  string
	RequestTimeoutMs int
	DefaultLimit     int
	HardLimit        int
	// DefaultThreshold is nil when no process-wide threshold is configured.
	DefaultThreshold *float64
	APIPort          string
	LogLevel         string
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// LocalAssetsLabel returns the local assets root or a "Not configured" marker.
func (c *Config) LocalAssetsLabel() string {
	if c.LocalAssetsPath == "" {
		return models.LocalAssetsNotConfigured
	}
	return c.LocalAssetsPath
}

// ClampLimit bounds a requested limit to [1, HardLimit].
func (c *Config) ClampLimit(limit int) int {
	return max(1, min(c.HardLimit, limit))
}

// Load builds a Config from the optional YAML file named by FO_SEMANTIC_MCP_CONFIG
// and the process environment. Environment values take precedence over the file.
func Load() (*Config, error) {
	var file fileConfig
	if path := strings.TrimSpace(os.Getenv(EnvConfigFile)); path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		file = *loaded
	}

	apiKey := lookup(EnvAPIKey, file.APIKey)
	if apiKey == "" {
		return nil, &ConfigError{
			Message: EnvAPIKey + " environment variable is required. Get your API key from https://www.xplusplus.ai/",
		}
	}

	hardLimit := clampLimit(parsePositiveInt(lookupAny(EnvMaxLimit, file.MaxLimit), HardLimit))
	defaultLimit := clampLimit(parsePositiveInt(lookupAny(EnvDefaultLimit, file.DefaultLimit), DefaultLimit))

	cfg := &Config{
		ServerName:       orDefault(lookup(EnvServerName, file.ServerName), DefaultServerName),
		ServerVersion:    orDefault(lookup(EnvServerVersion, file.ServerVersion), DefaultServerVersion),
		SearchAPIBaseURL: strings.TrimSuffix(orDefault(lookup(EnvBaseURL, file.APIURL), DefaultBaseURL), "/"),
		APIKey:           apiKey,
		RequestTimeoutMs: parsePositiveInt(lookupAny(EnvTimeoutMs, file.TimeoutMs), DefaultTimeoutMs),
		DefaultLimit:     min(defaultLimit, hardLimit),
		HardLimit:        hardLimit,
		DefaultThreshold: parseThreshold(file.DefaultThreshold),
		LocalAssetsPath:  resolveLocalAssets(lookup(EnvLocalAssetsPath, file.LocalAssetsPath)),
		APIPort:          orDefault(lookup(EnvAPIPort, file.APIPort), DefaultAPIPort),
		LogLevel:         orDefault(lookup(EnvLogLevel, file.LogLevel), DefaultLogLevel),
	}

	return cfg, nil
}

var (
	cachedOnce sync.Once
	cached     *Config
	cachedErr  error
)

// Cached returns the result of the first Load call for the lifetime of the process.
func Cached() (*Config, error) {
	cachedOnce.Do(func() {
		cached, cachedErr = Load()
	})
	return cached, cachedErr
}

func lookup(key string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return strings.TrimSpace(fallback)
}

func lookupAny(key string, fallback int) any {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func orDefault(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func parsePositiveInt(raw any, fallback int) int {
	value, err := cast.ToIntE(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func clampLimit(value int) int {
	return max(1, min(HardLimit, value))
}

func parseThreshold(fromFile *float64) *float64 {
	raw := lookup(EnvDefaultThreshold, "")
	if raw == "" {
		raw = lookup(EnvThresholdAlias, "")
	}

	var candidate any
	switch {
	case raw != "":
		candidate = raw
	case fromFile != nil:
		candidate = *fromFile
	default:
		return nil
	}

	value, err := cast.ToFloat64E(candidate)
	if err != nil || value < 0 || value > 1 || math.IsNaN(value) {
		log.Warn().
			Str("threshold", fmt.Sprint(candidate)).
			Msg("Threshold must be between 0 and 1. Ignoring")
		return nil
	}
	return &value
}

func resolveLocalAssets(raw string) string {
	if raw == "" {
		return ""
	}

	resolved, err := filepath.Abs(raw)
	if err != nil {
		log.Warn().Err(err).Str("path", raw).Msg("Unable to resolve local assets path")
		return ""
	}

	if info, err := os.Stat(resolved); err != nil || !info.IsDir() {
		log.Warn().
			Str("path", resolved).
			Msg("F&O installation not found at path. Local file reading will not be available, but search functionality will work")
		return ""
	}

	return resolved
}
