package rank

import (
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/normalize"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

// vikor ranks by the compromise index Q = v·S̃ + (1−v)·R̃, lower first.
// S is the group utility, R the individual regret. Ties on Q fall back to S.
func vikor(m matrix.Matrix, p params.Params) (ranking.Ranking, error) {
	n := m.Criteria()
	w, err := p.WeightsFor(n)
	if err != nil {
		return ranking.Ranking{}, err
	}
	dirs, err := p.DirectionsFor(n)
	if err != nil {
		return ranking.Ranking{}, err
	}
	v, err := p.Strategy()
	if err != nil {
		return ranking.Ranking{}, err
	}

	gap := normalize.Gap(m.Values(), dirs)
	s := make([]float64, len(gap))
	r := make([]float64, len(gap))
	for i := range gap {
		for j, g := range gap[i] {
			d := w[j] * g
			s[i] += d
			if d > r[i] {
				r[i] = d
			}
		}
	}

	sn := rescale(s)
	rn := rescale(r)
	cs := make([]candidate, m.Len())
	for i, alt := range m.Rows() {
		cs[i] = candidate{
			alt:     alt,
			score:   v*sn[i] + (1-v)*rn[i],
			details: map[string]float64{"s": s[i], "r": r[i]},
		}
	}
	diag := map[string]float64{"v": v}
	return order(method.VIKOR, cs, func(a, b candidate) bool {
		if a.score != b.score {
			return a.score < b.score
		}
		return a.details["s"] < b.details["s"]
	}, diag), nil
}

// rescale min-max scales xs to [0,1]; a constant slice maps to 0.
func rescale(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	if hi == lo {
		return out
	}
	for i, x := range xs {
		out[i] = (x - lo) / (hi - lo)
	}
	return out
}
