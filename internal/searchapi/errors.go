package searchapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/xplusplusai/fo-semantic-mcp/internal/config"
)

// Suggestions attached to SearchAPIError values.
const (
	SuggestAuth         = "Verify " + config.EnvAPIKey + " is valid and has access to the FO-Index search service."
	SuggestRateLimited  = "Search API rate limit exceeded. Retry with backoff."
	SuggestServerError  = "Search service reported an error. Retry later or contact support."
	SuggestCheckRequest = "Check request parameters and try again."
	SuggestTimeout      = "Retry or increase " + config.EnvTimeoutMs + "."
	SuggestConnectivity = "Check network connectivity and " + config.EnvAPIKey + " configuration."
)

// SearchAPIError is the only error type returned by Client.Search.
// Status carries the HTTP status of the failed call, 408 for timeouts
// and 500 for transport failures.
type SearchAPIError struct {
	Message    string
	Status     int
	Suggestion string
	Details    any
}

func (e *SearchAPIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// AsSearchAPIError unwraps err into a *SearchAPIError when possible.
func AsSearchAPIError(err error) (*SearchAPIError, bool) {
	var apiErr *SearchAPIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func suggestForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return SuggestAuth
	case status == http.StatusTooManyRequests:
		return SuggestRateLimited
	case status >= http.StatusInternalServerError:
		return SuggestServerError
	default:
		return SuggestCheckRequest
	}
}

func newStatusError(env envelope, status int) *SearchAPIError {
	message := env.Error
	if message == "" {
		message = fmt.Sprintf("Search API responded with status %d", status)
	}
	return &SearchAPIError{
		Message:    message,
		Status:     status,
		Suggestion: suggestForStatus(status),
		Details:    env.Raw,
	}
}

func newUnsuccessfulError(env envelope, status int) *SearchAPIError {
	message := env.Error
	if message == "" {
		message = "Search API returned unsuccessful response"
	}
	return &SearchAPIError{
		Message:    message,
		Status:     status,
		Suggestion: SuggestCheckRequest,
		Details:    env.Raw,
	}
}

func newTimeoutError(timeoutMs int) *SearchAPIError {
	return &SearchAPIError{
		Message:    fmt.Sprintf("Search request timed out after %dms", timeoutMs),
		Status:     http.StatusRequestTimeout,
		Suggestion: SuggestTimeout,
	}
}

func newUnexpectedError(err error) *SearchAPIError {
	return &SearchAPIError{
		Message:    "Unexpected error while querying search API",
		Status:     http.StatusInternalServerError,
		Suggestion: SuggestConnectivity,
		Details:    map[string]any{"message": err.Error()},
	}
}
