package middleware

import (
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status     int    `json:"status"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Details    any    `json:"details,omitempty"`
}

// HandleError writes err as an ErrorResponse with the given status.
func HandleError(resp *restful.Response, err error, status int) {
	WriteError(resp, ErrorResponse{
		Status:  status,
		Message: err.Error(),
	})
}

// WriteError writes body, filling in Error from the status text when empty.
func WriteError(resp *restful.Response, body ErrorResponse) {
	if body.Status == 0 {
		body.Status = http.StatusInternalServerError
	}
	if body.Error == "" {
		body.Error = http.StatusText(body.Status)
	}
	if err := resp.WriteHeaderAndEntity(body.Status, body); err != nil {
		log.Error().Err(err).Int("status", body.Status).Msg("Failed to write error response")
	}
}
