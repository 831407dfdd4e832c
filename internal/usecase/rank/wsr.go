package rank

import (
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

// weightedSum scores each row by Σ value×weight on raw values.
func weightedSum(m matrix.Matrix, p params.Params) (ranking.Ranking, error) {
	w, err := p.WeightsFor(m.Criteria())
	if err != nil {
		return ranking.Ranking{}, err
	}
	cs := candidates(m, func(row []float64) float64 {
		return dot(row, w)
	})
	return order(method.WSR, cs, descending, nil), nil
}

func dot(a, b []float64) float64 {
	var s float64
	for j := range a {
		s += a[j] * b[j]
	}
	return s
}
