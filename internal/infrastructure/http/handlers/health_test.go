package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runReadiness(t *testing.T, checks map[string]CheckFunc) (*httptest.ResponseRecorder, readinessResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewReadinessHandler(checks).Readiness(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec, body
}

func ok(context.Context) error { return nil }

func TestReadiness_AllHealthy(t *testing.T) {
	rec, body := runReadiness(t, map[string]CheckFunc{"mongodb": ok, "redis": ok})

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if body.Status != "ok" || len(body.Dependencies) != 2 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestReadiness_OneDependencyDown(t *testing.T) {
	down := func(context.Context) error { return errors.New("connection refused") }
	rec, body := runReadiness(t, map[string]CheckFunc{"mongodb": ok, "redis": down})

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
	if body.Status != "degraded" {
		t.Errorf("expected degraded, got %q", body.Status)
	}
	if got := body.Dependencies["redis"]; got.Status != "unhealthy" || got.Error == "" {
		t.Errorf("unexpected redis status: %+v", got)
	}
	if body.Dependencies["mongodb"].Status != "ok" {
		t.Errorf("mongodb should stay ok: %+v", body.Dependencies["mongodb"])
	}
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
