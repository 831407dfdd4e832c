package rankdex

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/rankdex/internal/domain"
	healthuc "github.com/kailas-cloud/rankdex/internal/usecase/health"
)

func TestNew_DefaultsToMemory(t *testing.T) {
	c, err := New(context.Background())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
	h := c.Health(context.Background())
	if h.Status != "ok" || h.Checks["database"] != "ok" || h.Checks["ranking"] != "ok" {
		t.Errorf("health = %+v", h)
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNew_RedisWithoutAddress(t *testing.T) {
	cfg := &clientConfig{driver: driverRedis}
	if _, err := createStore(cfg); err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithValkey("localhost:6379", "secret").apply(cfg)
	if cfg.driver != driverValkey || cfg.addrs[0] != "localhost:6379" || cfg.password != "secret" {
		t.Errorf("WithValkey: %+v", cfg)
	}

	WithRedis("redis:6379", "").apply(cfg)
	if cfg.driver != driverRedis || cfg.addrs[0] != "redis:6379" {
		t.Errorf("WithRedis: %+v", cfg)
	}

	WithMemory().apply(cfg)
	if cfg.driver != driverMemory || cfg.addrs != nil {
		t.Errorf("WithMemory: %+v", cfg)
	}

	WithWorkers(4).apply(cfg)
	WithLimits(100, 10).apply(cfg)
	WithResultTTL(time.Minute).apply(cfg)
	WithCache(time.Hour).apply(cfg)
	if cfg.workers != 4 || cfg.maxAlternatives != 100 || cfg.maxCriteria != 10 {
		t.Errorf("limits: %+v", cfg)
	}
	if cfg.resultTTL != time.Minute || cfg.cacheTTL != time.Hour {
		t.Errorf("ttls: %+v", cfg)
	}

	WithLogger(slog.Default()).apply(cfg)
	WithPrometheus(prometheus.NewRegistry()).apply(cfg)
	if cfg.logger == nil || cfg.metricsReg == nil {
		t.Error("expected logger and registerer to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{}
	c.Close() // must not panic
}

func TestClient_Health_Degraded(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError, "ranking": healthuc.CheckOK},
	}}}
	h := c.Health(context.Background())
	if h.Status != "degraded" || h.Checks["database"] != "error" {
		t.Errorf("health = %+v", h)
	}
}

func TestObserver_NilSafe(t *testing.T) {
	// nil observer should not panic.
	var obs *observer
	obs.observe("test", "", time.Now(), nil)
	obs.observe("test", "WSR", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("rank", "TOPSIS", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("rank", "TOPSIS", time.Now(), domain.ErrDegenerateComputation)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "rankdex_sdk_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("rankdex_sdk_operations_total not found")
	}
}

func TestObserver_ReuseRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first newObserver: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second newObserver must reuse collectors: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("evaluate", "", time.Now(), nil)
	obs.observe("evaluate", "", time.Now(), errors.New("test error"))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{domain.NewMethodError("topsis", domain.ErrDegenerateComputation), "degenerate"},
		{domain.ErrNotFound, "not_found"},
		{domain.Errorf(domain.ErrMalformedMatrix, "row 2"), "invalid_input"},
		{domain.ErrTooLarge, "invalid_input"},
		{errors.New("boom"), "error"},
	}
	for _, tc := range tests {
		if got := status(tc.err); got != tc.want {
			t.Errorf("status(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
