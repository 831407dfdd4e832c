package ranking

import (
	"math"
	"testing"

	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
)

func sample(t *testing.T) Ranking {
	t.Helper()
	m, err := matrix.New([][]float64{{1.23456, 2}, {3, 4.0004}, {5, 6}}, []string{"x", "y", "z"})
	if err != nil {
		t.Fatalf("matrix.New: %v", err)
	}
	return New(method.WSR, []Entry{
		NewEntry(m.Row(1), 7.40004, map[string]float64{"sum": 1.11111}),
		NewEntry(m.Row(0), 7.4, nil),
		NewEntry(m.Row(2), 6.6, nil),
	}, map[string]float64{"cr": 0.01})
}

func TestRanking_Accessors(t *testing.T) {
	r := sample(t)
	if r.Method() != method.WSR || r.Len() != 3 {
		t.Fatalf("Method() = %s, Len() = %d", r.Method(), r.Len())
	}
	best, ok := r.Best()
	if !ok || best.Label() != "y" || best.Index() != 2 {
		t.Errorf("Best() = %+v, %v", best, ok)
	}
	order := r.Order()
	if order[0] != 2 || order[1] != 1 || order[2] != 3 {
		t.Errorf("Order() = %v", order)
	}
	if r.Diagnostics()["cr"] != 0.01 {
		t.Errorf("Diagnostics() = %v", r.Diagnostics())
	}
	if _, ok := New(method.DIP, nil, nil).Best(); ok {
		t.Error("Best() on empty ranking ok = true")
	}
}

func TestPresent(t *testing.T) {
	rows := Present(sample(t))
	if len(rows) != 3 {
		t.Fatalf("Present() len = %d", len(rows))
	}
	if rows[0].Position != 1 || rows[0].Label != "y" || rows[0].Metric != 7.4 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[0].Values[1] != 4 {
		t.Errorf("rows[0].Values = %v", rows[0].Values)
	}
	if rows[0].Details["sum"] != 1.111 {
		t.Errorf("rows[0].Details = %v", rows[0].Details)
	}
	if rows[1].Values[0] != 1.235 {
		t.Errorf("rows[1].Values = %v", rows[1].Values)
	}
	if !rows[0].Best || !rows[1].Best || rows[2].Best {
		t.Errorf("best markers = %v %v %v", rows[0].Best, rows[1].Best, rows[2].Best)
	}
	if rows[1].Details != nil {
		t.Errorf("rows[1].Details = %v, want nil", rows[1].Details)
	}
}

func TestRound(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1.2345, 1.235},
		{-0.0001, 0},
		{2, 2},
		{0.6666666, 0.667},
	}
	for _, tc := range tests {
		got := Round(tc.in)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Round(%v) = %v, want %v", tc.in, got, tc.want)
		}
		if got == 0 && math.Signbit(got) {
			t.Errorf("Round(%v) returned negative zero", tc.in)
		}
	}
}
