package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/storefront-engine/pkg/config"
	"github.com/angelmondragon/storefront-engine/pkg/metrics"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	rec := serve(HealthLive(cfg), newRequest(http.MethodGet, "/health/live", "", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(envHeader); got != "dev" {
		t.Fatalf("expected env header dev, got %q", got)
	}
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("all dependencies up", func(t *testing.T) {
		h := HealthReady(cfg, testLogger(), map[string]Pinger{"postgres": ok, "redis": ok, "skipped": nil})
		rec := serve(h, newRequest(http.MethodGet, "/health/ready", "", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var got struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		}
		decodeData(t, rec, &got)
		if got.Status != "ready" || len(got.Checks) != 2 {
			t.Fatalf("unexpected readiness payload %+v", got)
		}
	})

	t.Run("dependency down", func(t *testing.T) {
		h := HealthReady(cfg, testLogger(), map[string]Pinger{"postgres": ok, "redis": down})
		rec := serve(h, newRequest(http.MethodGet, "/health/ready", "", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		checks, _ := decodeError(t, rec).Error.Details["checks"].(map[string]any)
		if checks["redis"] != "error" || checks["postgres"] != "ok" {
			t.Fatalf("unexpected checks %v", checks)
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewPricingMetrics(reg)
	m.IncQuote()

	rec := serve(Metrics(reg), newRequest(http.MethodGet, "/metrics", "", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "pricing_quotes_total 1") {
		t.Fatalf("expected pricing counter in exposition, got %s", rec.Body.String())
	}
}
