package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTestProbeReturnsExactLiteral(t *testing.T) {
	router, _ := newTestRouter(t)

	// Regardless of history state
	postData(router, "application/x-www-form-urlencoded", "temp=1&hum=2")

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Body.String(); got != "OK - Node.js API is working!" {
		t.Fatalf("probe body changed: %q", got)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain, got %q", ct)
	}
}

func TestHealthReportsRuntimeAndCounters(t *testing.T) {
	router, _ := newTestRouter(t)

	postData(router, "application/x-www-form-urlencoded", "temp=1&hum=2")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("expected status ok, got %q", resp.Status)
	}
	if resp.Server != testServerName {
		t.Fatalf("expected server %q, got %q", testServerName, resp.Server)
	}
	if !strings.HasPrefix(resp.Runtime, "go") {
		t.Fatalf("expected a Go runtime version, got %q", resp.Runtime)
	}
	if resp.UptimeSeconds < 0 {
		t.Fatalf("negative uptime %v", resp.UptimeSeconds)
	}
	if resp.Memory.SysBytes == 0 {
		t.Fatalf("expected a non-empty memory snapshot")
	}
	if resp.Requests.TotalRequests != 1 || resp.Requests.SuccessfulPosts != 1 {
		t.Fatalf("expected counters 1/1, got %d/%d", resp.Requests.TotalRequests, resp.Requests.SuccessfulPosts)
	}
}

func TestRootListsEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Message   string            `json:"message"`
		Endpoints map[string]string `json:"endpoints"`
		Note      string            `json:"note"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Message == "" || resp.Note == "" {
		t.Fatalf("expected message and note, got %s", rr.Body.String())
	}
	for _, endpoint := range []string{"POST /api/data", "GET /api/data", "GET /api/test", "GET /api/health", "GET /api/simple", "GET /dashboard"} {
		if _, ok := resp.Endpoints[endpoint]; !ok {
			t.Fatalf("endpoint directory missing %q: %v", endpoint, resp.Endpoints)
		}
	}
}
