package rank

import (
	"context"
	"math"
	"sort"

	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/normalize"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

const gsrEpsilon = 1e-9

// gsr ranks by iterative elimination under "lower is better". Every criterion
// is rescaled so 1 marks the worst value. Each round removes the rows that are
// worst on at least two measures, or else the rows with the largest composite
// (sum of measures). The remaining rows are re-described by the triple
// (sum, max, −distance to the all-ones vector), rescaled across the remaining
// rows, and the loop repeats until one row is left.
//
// Every round removes at least one row and keeps at least one, so the loop
// runs at most m−1 rounds. The score is the round of elimination; the
// survivor scores rounds+1. Output is best-first.
func gsr(ctx context.Context, m matrix.Matrix) (ranking.Ranking, error) {
	rows := m.Rows()
	measures := normalize.Range(m.Values())
	if err := checkMeasures(measures); err != nil {
		return ranking.Ranking{}, err
	}

	remaining := make([]int, len(rows))
	for i := range remaining {
		remaining[i] = i
	}

	type elimination struct {
		pos       int
		round     int
		composite float64
	}
	var worstFirst []elimination
	round := 0
	for len(remaining) > 1 {
		if err := ctx.Err(); err != nil {
			return ranking.Ranking{}, err
		}
		round++
		out := eliminate(remaining, measures)
		for _, pos := range out {
			worstFirst = append(worstFirst, elimination{pos: pos, round: round, composite: sum(measures[pos])})
		}
		remaining = without(remaining, out)
		if len(remaining) > 1 {
			redescribe(remaining, measures)
			if err := checkMeasures(measures); err != nil {
				return ranking.Ranking{}, err
			}
		}
	}

	entries := make([]ranking.Entry, 0, len(rows))
	survivor := remaining[0]
	entries = append(entries, ranking.NewEntry(rows[survivor], float64(round+1),
		map[string]float64{"composite": sum(measures[survivor])}))
	for i := len(worstFirst) - 1; i >= 0; i-- {
		e := worstFirst[i]
		entries = append(entries, ranking.NewEntry(rows[e.pos], float64(e.round),
			map[string]float64{"composite": e.composite}))
	}
	return ranking.New(method.GSR, entries, map[string]float64{"rounds": float64(round)}), nil
}

func checkMeasures(measures [][]float64) error {
	for i, row := range measures {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return domain.Errorf(domain.ErrDegenerateComputation,
					"measure %d of row %d is not finite", j+1, i+1)
			}
		}
	}
	return nil
}

// eliminate picks this round's rows, ordered worst-first. It always picks at
// least one row and never every remaining row: the one with the smallest
// composite is spared.
func eliminate(remaining []int, measures [][]float64) []int {
	var out []int
	for _, pos := range remaining {
		if worstCount(measures[pos]) >= 2 {
			out = append(out, pos)
		}
	}
	if len(out) == 0 {
		top := math.Inf(-1)
		for _, pos := range remaining {
			top = max(top, sum(measures[pos]))
		}
		for _, pos := range remaining {
			if sum(measures[pos]) >= top-gsrEpsilon {
				out = append(out, pos)
			}
		}
	}
	if len(out) == 0 {
		out = []int{remaining[len(remaining)-1]}
	}
	if len(out) == len(remaining) {
		spare := remaining[0]
		for _, pos := range remaining[1:] {
			if sum(measures[pos]) < sum(measures[spare])-gsrEpsilon {
				spare = pos
			}
		}
		out = without(out, []int{spare})
	}

	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := sum(measures[out[i]]), sum(measures[out[j]])
		if math.Abs(ci-cj) > gsrEpsilon {
			return ci > cj
		}
		return out[i] > out[j]
	})
	return out
}

// redescribe replaces the measures of the remaining rows with the rescaled
// triple (sum, max, −distance to all-ones).
func redescribe(remaining []int, measures [][]float64) {
	triples := make([][]float64, len(remaining))
	for i, pos := range remaining {
		row := measures[pos]
		var worst, sq float64
		for _, v := range row {
			worst = max(worst, v)
			sq += (1 - v) * (1 - v)
		}
		triples[i] = []float64{sum(row), worst, -math.Sqrt(sq)}
	}
	scaled := normalize.Range(triples)
	for i, pos := range remaining {
		measures[pos] = scaled[i]
	}
}

func worstCount(row []float64) int {
	c := 0
	for _, v := range row {
		if math.Abs(v-1) <= gsrEpsilon {
			c++
		}
	}
	return c
}

func sum(row []float64) float64 {
	var s float64
	for _, v := range row {
		s += v
	}
	return s
}

// without returns xs minus drop, keeping order.
func without(xs, drop []int) []int {
	skip := make(map[int]bool, len(drop))
	for _, d := range drop {
		skip[d] = true
	}
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		if !skip[x] {
			out = append(out, x)
		}
	}
	return out
}
