package rank

import (
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/normalize"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

// ELECTRE IV thresholds on the scaled-to-best matrix.
const (
	electreIndifference = 0.1
	electrePreference   = 0.3
	electreVeto         = 0.5
	electreDiscordance  = 0.5
)

// electre counts, for every alternative, how many others it outranks.
// Ties on that count prefer the alternative outranked fewer times.
func electre(m matrix.Matrix) (ranking.Ranking, error) {
	x, err := normalize.ToBest(m.Values())
	if err != nil {
		return ranking.Ranking{}, err
	}
	rows := m.Len()
	n := m.Criteria()
	concordanceCut := 1 / float64(n)

	outranks := make([]int, rows)
	outranked := make([]int, rows)
	for i := 0; i < rows; i++ {
		for k := 0; k < rows; k++ {
			if i == k {
				continue
			}
			if concordance(x[i], x[k]) >= concordanceCut && discordance(x[i], x[k]) <= electreDiscordance {
				outranks[i]++
				outranked[k]++
			}
		}
	}

	cs := make([]candidate, rows)
	for i, alt := range m.Rows() {
		cs[i] = candidate{
			alt:     alt,
			score:   float64(outranks[i]),
			details: map[string]float64{"outranked_by": float64(outranked[i])},
		}
	}
	return order(method.ELECTRE, cs, func(a, b candidate) bool {
		if a.score != b.score {
			return a.score > b.score
		}
		return a.details["outranked_by"] < b.details["outranked_by"]
	}, nil), nil
}

// concordance is the share of criteria on which a is at least as good as b.
func concordance(a, b []float64) float64 {
	agree := 0
	for j := range a {
		if a[j] >= b[j] {
			agree++
		}
	}
	return float64(agree) / float64(len(a))
}

// discordance is the strongest objection to "a outranks b" over all criteria.
func discordance(a, b []float64) float64 {
	var d float64
	for j := range a {
		if p := penalty(b[j] - a[j]); p > d {
			d = p
		}
	}
	return d
}

// penalty maps the gap by which b beats a onto [0,1]: 0 up to the
// indifference threshold, 0.5 at preference, 1 at veto and beyond.
func penalty(gap float64) float64 {
	switch {
	case gap <= electreIndifference:
		return 0
	case gap <= electrePreference:
		return 0.5 * (gap - electreIndifference) / (electrePreference - electreIndifference)
	case gap <= electreVeto:
		return 0.5 + 0.5*(gap-electrePreference)/(electreVeto-electrePreference)
	default:
		return 1
	}
}
