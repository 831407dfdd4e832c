package rank

import (
	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/normalize"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

// topsis ranks by closeness to the ideal solution:
// C = S⁻ / (S⁺ + S⁻) over the weighted, vector-normalized matrix.
func topsis(m matrix.Matrix, p params.Params) (ranking.Ranking, error) {
	n := m.Criteria()
	w, err := p.WeightsFor(n)
	if err != nil {
		return ranking.Ranking{}, err
	}
	dirs, err := p.DirectionsFor(n)
	if err != nil {
		return ranking.Ranking{}, err
	}

	v := normalize.Vector(m.Values())
	for i := range v {
		for j := range v[i] {
			v[i][j] *= w[j]
		}
	}

	mins, maxs := normalize.Bounds(v)
	ideal := make([]float64, n)
	anti := make([]float64, n)
	for j := range ideal {
		if dirs[j] == params.Cost {
			ideal[j], anti[j] = mins[j], maxs[j]
		} else {
			ideal[j], anti[j] = maxs[j], mins[j]
		}
	}

	cs := make([]candidate, m.Len())
	for i, alt := range m.Rows() {
		plus := distance(v[i], ideal)
		minus := distance(v[i], anti)
		if plus+minus == 0 {
			return ranking.Ranking{}, domain.Errorf(domain.ErrDegenerateComputation,
				"alternative %s coincides with both ideal and negative-ideal solutions", alt.Label())
		}
		cs[i] = candidate{
			alt:     alt,
			score:   minus / (plus + minus),
			details: map[string]float64{"s_plus": plus, "s_minus": minus},
		}
	}
	return order(method.TOPSIS, cs, descending, nil), nil
}
