package rank

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
	"github.com/kailas-cloud/rankdex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterRankingMetrics()
	os.Exit(m.Run())
}

type mockRanker struct {
	result ranking.Ranking
	err    error
	calls  int
}

func (m *mockRanker) Rank(_ context.Context, _ method.Kind, _ matrix.Matrix, _ params.Params) (ranking.Ranking, error) {
	m.calls++
	return m.result, m.err
}

func TestInstrumentedRanker_Success(t *testing.T) {
	inner := &mockRanker{result: ranking.New(method.MaxMin, nil, nil)}
	r := NewInstrumentedRanker(inner, zap.NewNop())
	before := testutil.ToFloat64(metrics.RankingsTotal.WithLabelValues("MAXMIN", "ok"))

	res, err := r.Rank(context.Background(), method.MaxMin, mustMatrix(t, [][]float64{{1}}), params.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Method() != method.MaxMin || inner.calls != 1 {
		t.Fatalf("unexpected result %v after %d calls", res.Method(), inner.calls)
	}
	if after := testutil.ToFloat64(metrics.RankingsTotal.WithLabelValues("MAXMIN", "ok")); after != before+1 {
		t.Errorf("rankings_total{ok} = %f, want %f", after, before+1)
	}
}

func TestInstrumentedRanker_Error(t *testing.T) {
	cause := domain.NewMethodError("electre", domain.ErrDegenerateComputation)
	r := NewInstrumentedRanker(&mockRanker{err: cause}, zap.NewNop())
	before := testutil.ToFloat64(metrics.RankingsTotal.WithLabelValues("ELECTRE", "degenerate"))

	_, err := r.Rank(context.Background(), method.ELECTRE, mustMatrix(t, [][]float64{{1}}), params.Params{})
	if !errors.Is(err, domain.ErrDegenerateComputation) {
		t.Fatalf("err = %v, want ErrDegenerateComputation", err)
	}
	if after := testutil.ToFloat64(metrics.RankingsTotal.WithLabelValues("ELECTRE", "degenerate")); after != before+1 {
		t.Errorf("rankings_total{degenerate} = %f, want %f", after, before+1)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("wrap: %w", domain.ErrDimensionMismatch), "invalid_input"},
		{domain.ErrUnknownMethod, "invalid_input"},
		{domain.ErrDegenerateComputation, "degenerate"},
		{context.Canceled, "canceled"},
		{errors.New("boom"), "error"},
	}
	for _, tc := range tests {
		if got := outcome(tc.err); got != tc.want {
			t.Errorf("outcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestEngine_Probe(t *testing.T) {
	if err := NewEngine().Probe(context.Background()); err != nil {
		t.Fatalf("Probe: %v", err)
	}
}
