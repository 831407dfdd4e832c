package evaluation

import (
	"sort"

	"github.com/kailas-cloud/rankdex/internal/domain/method"
)

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et al. 2009).
const rrfK = 60

// ConsensusEntry is one alternative of the fused ranking.
type ConsensusEntry struct {
	Index int
	Label string
	Score float64
	// Positions holds the 1-based position per method.
	Positions map[method.Kind]int
}

// Consensus fuses the method rankings via Reciprocal Rank Fusion:
// score(a) = sum of 1/(k + position_m(a)) over every method m.
// Returns nil for fewer than two rankings. Ties keep input order.
func (e Evaluation) Consensus() []ConsensusEntry {
	if len(e.rankings) < 2 {
		return nil
	}

	merged := make(map[int]*ConsensusEntry)
	for _, r := range e.rankings {
		for pos, entry := range r.Entries() {
			c, ok := merged[entry.Index()]
			if !ok {
				c = &ConsensusEntry{
					Index:     entry.Index(),
					Label:     entry.Label(),
					Positions: make(map[method.Kind]int, len(e.rankings)),
				}
				merged[entry.Index()] = c
			}
			c.Positions[r.Method()] = pos + 1
		}
	}

	out := make([]ConsensusEntry, 0, len(merged))
	for _, c := range merged {
		c.Score = fuse(c.Positions)
		out = append(out, *c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// fuse sums the reciprocal ranks in ascending position order so equal
// position sets always produce bit-identical scores.
func fuse(positions map[method.Kind]int) float64 {
	ps := make([]int, 0, len(positions))
	for _, p := range positions {
		ps = append(ps, p)
	}
	sort.Ints(ps)

	var score float64
	for _, p := range ps {
		score += 1.0 / float64(rrfK+p)
	}
	return score
}
