package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emicklei/go-restful/v3"
)

func newContainer(handler restful.RouteFunction) *restful.Container {
	ws := new(restful.WebService)
	ws.Path("/test").Produces(restful.MIME_JSON)
	ws.Route(ws.GET("").To(handler))

	container := restful.NewContainer()
	container.Filter(Logger)
	container.Filter(RecoverPanic)
	container.Add(ws)
	return container
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rr.Body.String(), err)
	}
	return body
}

func TestHandleError(t *testing.T) {
	container := newContainer(func(req *restful.Request, resp *restful.Response) {
		HandleError(resp, errors.New("query is required"), http.StatusBadRequest)
	})

	rr := httptest.NewRecorder()
	container.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Error != "Bad Request" || body.Message != "query is required" || body.Status != 400 {
		t.Errorf("Unexpected error body %+v", body)
	}
}

func TestWriteError_Defaults(t *testing.T) {
	container := newContainer(func(req *restful.Request, resp *restful.Response) {
		WriteError(resp, ErrorResponse{Message: "boom"})
	})

	rr := httptest.NewRecorder()
	container.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Error != "Internal Server Error" {
		t.Errorf("Expected status text, got %q", body.Error)
	}
}

func TestRecoverPanic(t *testing.T) {
	container := newContainer(func(req *restful.Request, resp *restful.Response) {
		panic("unexpected")
	})

	rr := httptest.NewRecorder()
	container.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Message != "internal server error" {
		t.Errorf("Unexpected message %q", body.Message)
	}
}
