package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSearch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSearch("success", 200, 120*time.Millisecond)
	m.ObserveSearch("success", 200, 80*time.Millisecond)
	m.ObserveSearch("error", 401, 10*time.Millisecond)

	if got := testutil.ToFloat64(m.searchRequests.WithLabelValues("success", "200")); got != 2 {
		t.Errorf("Expected 2 successful searches, got %f", got)
	}
	if got := testutil.ToFloat64(m.searchRequests.WithLabelValues("error", "401")); got != 1 {
		t.Errorf("Expected 1 failed search, got %f", got)
	}
	if got := testutil.CollectAndCount(m.searchDuration); got != 2 {
		t.Errorf("Expected 2 duration series, got %d", got)
	}
}

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveSearch("success", 200, time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "fo_semantic_search_requests_total" {
			found = true
		}
	}
	if !found {
		t.Error("Expected fo_semantic_search_requests_total to be registered")
	}
}

func TestFilter_RecordsRouteAndStatus(t *testing.T) {
	m := New(prometheus.NewRegistry())

	ws := new(restful.WebService)
	ws.Path("/api/v1")
	ws.Route(ws.GET("/ok").To(func(req *restful.Request, resp *restful.Response) {
		resp.WriteHeader(http.StatusOK)
	}))
	ws.Route(ws.GET("/fail").To(func(req *restful.Request, resp *restful.Response) {
		resp.WriteHeader(http.StatusBadGateway)
	}))

	container := restful.NewContainer()
	container.Filter(m.Filter)
	container.Add(ws)

	tests := []struct {
		path   string
		route  string
		status string
	}{
		{"/api/v1/ok", "/api/v1/ok", "200"},
		{"/api/v1/fail", "/api/v1/fail", "502"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			container.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", tt.route, tt.status)); got != 1 {
				t.Errorf("Expected 1 request for %s/%s, got %f", tt.route, tt.status, got)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath(""); got != "unknown" {
		t.Errorf("Expected unknown, got %s", got)
	}
	if got := normalizePath("/api/v1/search"); got != "/api/v1/search" {
		t.Errorf("Expected /api/v1/search, got %s", got)
	}
}
