package rankdex

import (
	"context"
	"errors"
	"testing"
	"time"

	domeval "github.com/kailas-cloud/rankdex/internal/domain/evaluation"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
	evaluationuc "github.com/kailas-cloud/rankdex/internal/usecase/evaluation"
)

func newMemoryClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestClient_Evaluate_RoundTrip(t *testing.T) {
	c := newMemoryClient(t, WithWorkers(3))
	ctx := context.Background()

	ev, err := c.Evaluate(ctx, Request{
		Matrix:  [][]float64{{8, 7, 6}, {7, 7, 7}, {6, 7, 8}},
		Labels:  []string{"north", "centre", "south"},
		Methods: []string{"WSR", "topsis", "VIKOR"},
		Params: map[string]Params{
			"wsr":   {Weights: []float64{0.4, 0.3, 0.3}},
			"VIKOR": {Directions: []Direction{Benefit, Cost, Benefit}},
		},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if ev.Pareto != ParetoOff || len(ev.Rankings) != 3 {
		t.Fatalf("evaluation = %+v", ev)
	}
	wsr := ev.Rankings[0]
	if wsr.Method != "WSR" || wsr.Rows[0].Label != "north" || wsr.Rows[0].Index != 1 {
		t.Errorf("WSR top = %+v", wsr.Rows[0])
	}
	if !wsr.Rows[0].Best || wsr.Rows[1].Best {
		t.Errorf("best markers = %v, %v", wsr.Rows[0].Best, wsr.Rows[1].Best)
	}
	if len(ev.Consensus) != 3 || ev.Consensus[0].Positions["WSR"] == 0 {
		t.Errorf("consensus = %+v", ev.Consensus)
	}

	got, err := c.Evaluation(ctx, ev.ID)
	if err != nil {
		t.Fatalf("Evaluation: %v", err)
	}
	if got.ID != ev.ID || len(got.Rankings) != 3 || got.Rankings[1].Method != "TOPSIS" {
		t.Errorf("stored = %+v", got)
	}
}

func TestClient_Evaluate_ParetoFilter(t *testing.T) {
	c := newMemoryClient(t)

	ev, err := c.Evaluate(context.Background(), Request{
		Matrix:  [][]float64{{1, 5}, {2, 2}, {3, 3}, {5, 1}},
		Methods: []string{"MINMAX"},
		Pareto:  ParetoFilter,
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(ev.Front) != 3 || len(ev.Alternatives) != 4 {
		t.Errorf("front = %d, alternatives = %d", len(ev.Front), len(ev.Alternatives))
	}
	if rows := ev.Rankings[0].Rows; len(rows) != 3 || rows[0].Label != "A2" {
		t.Errorf("MINMAX rows = %+v", rows)
	}
	if ev.Consensus != nil {
		t.Errorf("consensus for one method = %+v", ev.Consensus)
	}
}

func TestClient_Evaluate_Errors(t *testing.T) {
	c := newMemoryClient(t, WithLimits(2, 0))
	ctx := context.Background()

	tests := []struct {
		name       string
		req        Request
		want       error
		wantMethod string
	}{
		{"empty matrix", Request{Methods: []string{"DIP"}}, ErrEmptyInput, ""},
		{"unknown method", Request{Matrix: [][]float64{{1}}, Methods: []string{"BORDA"}}, ErrUnknownMethod, ""},
		{"too large", Request{Matrix: [][]float64{{1}, {2}, {3}}, Methods: []string{"DIP"}}, ErrTooLarge, ""},
		{"bad direction", Request{
			Matrix: [][]float64{{1, 2}}, Methods: []string{"TOPSIS"},
			Params: map[string]Params{"TOPSIS": {Directions: []Direction{"sideways", Cost}}},
		}, ErrInvalidParameter, "topsis"},
		{"params for unselected method", Request{
			Matrix: [][]float64{{1}}, Methods: []string{"DIP"},
			Params: map[string]Params{"WSR": {}},
		}, ErrInvalidParameter, ""},
		{"weights mismatch", Request{
			Matrix: [][]float64{{1, 2}, {2, 1}}, Methods: []string{"DIP", "AHP"},
			Params: map[string]Params{"AHP": {Weights: []float64{1, 2, 3}}},
		}, ErrDimensionMismatch, "ahp"},
		{"degenerate", Request{Matrix: [][]float64{{1, 2}}, Methods: []string{"TOPSIS"}}, ErrDegenerateComputation, "topsis"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Evaluate(ctx, tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			var me *MethodError
			gotMethod := ""
			if errors.As(err, &me) {
				gotMethod = me.Method
			}
			if gotMethod != tc.wantMethod {
				t.Errorf("method = %q, want %q", gotMethod, tc.wantMethod)
			}
		})
	}
}

func TestClient_Evaluation_NotFound(t *testing.T) {
	c := newMemoryClient(t)
	if _, err := c.Evaluation(context.Background(), "6f1c1f3e-8d0a-4c55-9a57-0c2b8f0e7c11"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClient_Rank(t *testing.T) {
	c := newMemoryClient(t, WithCache(time.Minute))
	ctx := context.Background()
	m := Matrix{Rows: [][]float64{{3, 5, 2}, {4, 1, 4}, {2, 6, 1}}}

	for i := 0; i < 2; i++ { // second call is served from the cache
		r, err := c.Rank(ctx, "min-sum", m, Params{})
		if err != nil {
			t.Fatalf("Rank: %v", err)
		}
		if r.Method != "MINSUM" || r.Rows[0].Label != "A2" || r.Rows[0].Score != 9 {
			t.Errorf("MINSUM top = %+v", r.Rows[0])
		}
	}

	if _, err := c.Rank(ctx, "nope", m, Params{}); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("err = %v, want ErrUnknownMethod", err)
	}
	v := 1.5
	_, err := c.Rank(ctx, "VIKOR", m, Params{V: &v})
	var me *MethodError
	if !errors.Is(err, ErrInvalidParameter) || !errors.As(err, &me) || me.Method != "vikor" {
		t.Errorf("err = %v, want vikor invalid parameter", err)
	}
}

func TestClient_Rank_PassesParams(t *testing.T) {
	var got params.Params
	c := &Client{ranker: &mockRanker{
		rankFn: func(_ context.Context, kind method.Kind, m matrix.Matrix, p params.Params) (ranking.Ranking, error) {
			got = p
			return ranking.New(kind, nil, nil), nil
		},
	}}
	v := 0.25
	_, err := c.Rank(context.Background(), "VIKOR", Matrix{Rows: [][]float64{{1, 2}, {2, 1}}}, Params{
		Weights:    []float64{2, 1},
		Directions: []Direction{"max", "min"},
		V:          &v,
	})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(got.Weights) != 2 || got.Weights[0] != 2 {
		t.Errorf("weights = %v", got.Weights)
	}
	if got.Directions[0] != params.Benefit || got.Directions[1] != params.Cost {
		t.Errorf("directions = %v", got.Directions)
	}
	if got.StrategyWeight == nil || *got.StrategyWeight != 0.25 {
		t.Errorf("v = %v", got.StrategyWeight)
	}
}

func TestClient_Evaluate_ServiceError(t *testing.T) {
	c := &Client{evalSvc: &mockEvaluationUC{
		evaluateFn: func(context.Context, evaluationuc.Request) (domeval.Evaluation, error) {
			return domeval.Evaluation{}, errors.New("store down")
		},
	}}
	_, err := c.Evaluate(context.Background(), Request{Matrix: [][]float64{{1}}, Methods: []string{"DIP"}})
	if err == nil || err.Error() != "evaluate: store down" {
		t.Errorf("err = %v", err)
	}
}

func TestClient_Pareto(t *testing.T) {
	c := newMemoryClient(t)

	front, err := c.Pareto(context.Background(), Matrix{
		Rows:   [][]float64{{1, 1}, {2, 2}, {0, 3}},
		Labels: []string{"a", "b", "c"},
	})
	if err != nil {
		t.Fatalf("Pareto: %v", err)
	}
	if len(front) != 2 || front[0].Label != "a" || front[1].Label != "c" || front[1].Index != 3 {
		t.Errorf("front = %+v", front)
	}

	if _, err := c.Pareto(context.Background(), Matrix{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
}

func TestClient_Methods(t *testing.T) {
	c := &Client{evalSvc: &mockEvaluationUC{}}

	all, err := c.Methods("")
	if err != nil || len(all) != 11 {
		t.Fatalf("Methods() = %d, %v", len(all), err)
	}
	outranking, err := c.Methods("outranking")
	if err != nil || len(outranking) != 1 || outranking[0].Name != "ELECTRE" {
		t.Errorf("outranking = %+v, %v", outranking, err)
	}
	if _, err := c.Methods("voting"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}

	info, err := c.Method("electre-iv")
	if err != nil || info.Name != "ELECTRE" {
		t.Errorf("Method(electre-iv) = %+v, %v", info, err)
	}
	wsr, _ := c.Method("WSR")
	if len(wsr.Inputs) != 1 || wsr.Inputs[0] != "weights" {
		t.Errorf("WSR inputs = %v", wsr.Inputs)
	}
}
