package evaluation

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

func TestParseParetoMode(t *testing.T) {
	tests := []struct {
		in   string
		want ParetoMode
	}{
		{"", ParetoOff},
		{"off", ParetoOff},
		{" Filter ", ParetoFilter},
	}
	for _, tc := range tests {
		got, err := ParseParetoMode(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseParetoMode(%q) = %q, %v", tc.in, got, err)
		}
	}
	if _, err := ParseParetoMode("after"); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestEvaluation_Accessors(t *testing.T) {
	m, err := matrix.New([][]float64{{1, 2}, {2, 1}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rankings := []ranking.Ranking{
		ranking.New(method.MinSum, nil, nil),
		ranking.New(method.DIP, nil, nil),
	}
	e := New("id-1", now, m, ParetoFilter, m, rankings)

	if e.ID() != "id-1" || !e.CreatedAt().Equal(now) || e.Mode() != ParetoFilter {
		t.Errorf("unexpected evaluation %+v", e)
	}
	if e.Matrix().Len() != 2 || e.Front().Len() != 2 {
		t.Errorf("matrix/front sizes = %d/%d", e.Matrix().Len(), e.Front().Len())
	}
	if got := e.Methods(); len(got) != 2 || got[0] != method.MinSum || got[1] != method.DIP {
		t.Errorf("Methods() = %v", got)
	}
	if _, ok := e.Ranking(method.DIP); !ok {
		t.Error("Ranking(DIP) missing")
	}
	if _, ok := e.Ranking(method.GSR); ok {
		t.Error("Ranking(GSR) found")
	}
}
