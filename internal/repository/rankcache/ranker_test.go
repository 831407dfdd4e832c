package rankcache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rankdex/internal/db/memory"
	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/repository/dto"
)

func TestRank_CacheMiss(t *testing.T) {
	m := testMatrix(t)
	inner := &mockRanker{result: testRanking(m)}
	cr, ms := newTestCachedRanker(t, inner)

	var setKey string
	var setTTL time.Duration
	ms.setFn = func(_ context.Context, key string, _ []byte, ttl time.Duration) error {
		setKey, setTTL = key, ttl
		return nil
	}

	r, err := cr.Rank(context.Background(), method.WSR, m, params.Params{Weights: []float64{1, 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Order()[0] != 2 || inner.calls != 1 {
		t.Fatalf("unexpected order %v after %d calls", r.Order(), inner.calls)
	}
	if !strings.HasPrefix(setKey, "rankdex:rank_cache:") {
		t.Errorf("unexpected cache key %q", setKey)
	}
	if setTTL != time.Hour {
		t.Errorf("ttl = %v, want 1h", setTTL)
	}
}

func TestRank_CacheHit(t *testing.T) {
	m := testMatrix(t)
	inner := &mockRanker{}
	cr, ms := newTestCachedRanker(t, inner)

	cached, err := json.Marshal(dto.FromRanking(testRanking(m)))
	if err != nil {
		t.Fatal(err)
	}
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return cached, nil
	}

	r, err := cr.Rank(context.Background(), method.WSR, m, params.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 0 {
		t.Errorf("expected no inner calls on hit, got %d", inner.calls)
	}
	if r.Method() != method.WSR || r.Len() != 2 {
		t.Errorf("unexpected cached ranking %v", r.Order())
	}
}

func TestRank_InnerErrorNotCached(t *testing.T) {
	inner := &mockRanker{err: domain.ErrDegenerateComputation}
	cr, ms := newTestCachedRanker(t, inner)

	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		t.Fatal("failure must not be cached")
		return nil
	}

	_, err := cr.Rank(context.Background(), method.TOPSIS, testMatrix(t), params.Params{})
	if !errors.Is(err, domain.ErrDegenerateComputation) {
		t.Fatalf("err = %v", err)
	}
}

func TestRank_StoreErrorsDegradeToInner(t *testing.T) {
	m := testMatrix(t)
	inner := &mockRanker{result: testRanking(m)}
	cr, ms := newTestCachedRanker(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, errors.New("connection reset")
	}
	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		return errors.New("connection reset")
	}

	if _, err := cr.Rank(context.Background(), method.WSR, m, params.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
}

func TestRank_CorruptEntryIsMiss(t *testing.T) {
	m := testMatrix(t)
	inner := &mockRanker{result: testRanking(m)}
	cr, ms := newTestCachedRanker(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte("{not json"), nil
	}

	if _, err := cr.Rank(context.Background(), method.WSR, m, params.Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected fallback to inner, got %d calls", inner.calls)
	}
}

func TestCacheKey_DependsOnInputs(t *testing.T) {
	m := testMatrix(t)
	base, _ := cacheKey(method.WSR, m, params.Params{})
	v := 0.3

	variants := []struct {
		name string
		kind method.Kind
		p    params.Params
	}{
		{"method", method.AHP, params.Params{}},
		{"weights", method.WSR, params.Params{Weights: []float64{1, 2}}},
		{"directions", method.WSR, params.Params{Directions: []params.Direction{params.Cost, params.Benefit}}},
		{"v", method.WSR, params.Params{StrategyWeight: &v}},
	}
	for _, tc := range variants {
		key, err := cacheKey(tc.kind, m, tc.p)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if key == base {
			t.Errorf("%s: key did not change", tc.name)
		}
	}

	again, _ := cacheKey(method.WSR, m, params.Params{})
	if again != base {
		t.Error("key is not deterministic")
	}
}

func TestRank_MemoryStoreRoundTrip(t *testing.T) {
	m := testMatrix(t)
	inner := &mockRanker{result: testRanking(m)}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_total"}, []string{"result"})
	cr := New(inner, memory.NewStore(), time.Minute, counter, zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := cr.Rank(context.Background(), method.WSR, m, params.Params{}); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("hit")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("miss")); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
}
