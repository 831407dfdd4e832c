// Package normalize implements column-wise normalization strategies over a
// numeric table. Every function returns a new table and leaves its input intact.
package normalize

import (
	"math"

	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
)

// Bounds returns the column-wise minimum and maximum.
func Bounds(m [][]float64) (mins, maxs []float64) {
	if len(m) == 0 {
		return nil, nil
	}
	n := len(m[0])
	mins = make([]float64, n)
	maxs = make([]float64, n)
	copy(mins, m[0])
	copy(maxs, m[0])
	for _, row := range m[1:] {
		for j, v := range row {
			if v < mins[j] {
				mins[j] = v
			}
			if v > maxs[j] {
				maxs[j] = v
			}
		}
	}
	return mins, maxs
}

// Vector divides every column by its Euclidean (L2) norm. A zero-norm column
// normalizes to 0. The column is pre-scaled by its largest magnitude so the
// sum of squares cannot overflow.
func Vector(m [][]float64) [][]float64 {
	out := alloc(m)
	if len(m) == 0 {
		return out
	}
	for j := range m[0] {
		var scale float64
		for i := range m {
			scale = max(scale, math.Abs(m[i][j]))
		}
		if scale == 0 {
			continue
		}
		var sq float64
		for i := range m {
			x := m[i][j] / scale
			sq += x * x
		}
		norm := math.Sqrt(sq)
		for i := range m {
			out[i][j] = m[i][j] / scale / norm
		}
	}
	return out
}

// span describes a column [lo, hi] on a scale where hi-lo stays finite:
// scale is max(|lo|, |hi|) and r is (hi-lo)/scale, so r is in [0, 2].
type span struct {
	lo, hi, scale, r float64
}

func newSpan(lo, hi float64) span {
	scale := max(math.Abs(lo), math.Abs(hi))
	if scale == 0 {
		return span{lo: lo, hi: hi, scale: 1}
	}
	return span{lo: lo, hi: hi, scale: scale, r: hi/scale - lo/scale}
}

// fromLo returns (v-lo)/(hi-lo) without forming hi-lo.
func (s span) fromLo(v float64) float64 { return (v/s.scale - s.lo/s.scale) / s.r }

// fromHi returns (hi-v)/(hi-lo) without forming hi-lo.
func (s span) fromHi(v float64) float64 { return (s.hi/s.scale - v/s.scale) / s.r }

func spans(m [][]float64) []span {
	mins, maxs := Bounds(m)
	out := make([]span, len(mins))
	for j := range mins {
		out[j] = newSpan(mins[j], maxs[j])
	}
	return out
}

// MinMax rescales each column to [0,1] so that 1 is the best value given the
// criterion direction. A column whose max equals its min normalizes to 0.
func MinMax(m [][]float64, dirs []params.Direction) [][]float64 {
	sp := spans(m)
	out := alloc(m)
	for i := range m {
		for j, v := range m[i] {
			switch {
			case sp[j].r == 0:
				out[i][j] = 0
			case dirs[j] == params.Cost:
				out[i][j] = sp[j].fromHi(v)
			default:
				out[i][j] = sp[j].fromLo(v)
			}
		}
	}
	return out
}

// Gap rescales each column to the relative distance from the best value:
// 0 at the best, 1 at the worst. A column whose max equals its min normalizes to 0.
func Gap(m [][]float64, dirs []params.Direction) [][]float64 {
	sp := spans(m)
	out := alloc(m)
	for i := range m {
		for j, v := range m[i] {
			switch {
			case sp[j].r == 0:
				out[i][j] = 0
			case dirs[j] == params.Cost:
				out[i][j] = sp[j].fromLo(v)
			default:
				out[i][j] = sp[j].fromHi(v)
			}
		}
	}
	return out
}

// ToBest divides every column by its maximum (linear scale to the best value).
// A maximum of 0 or below leaves the best value undefined (dividing by a
// negative maximum reverses the column order) and is reported as degenerate.
func ToBest(m [][]float64) ([][]float64, error) {
	_, maxs := Bounds(m)
	for j, mx := range maxs {
		if mx <= 0 {
			return nil, domain.Errorf(domain.ErrDegenerateComputation,
				"criterion %d has maximum %g, cannot scale to best", j+1, mx)
		}
	}
	out := alloc(m)
	for i := range m {
		for j, v := range m[i] {
			out[i][j] = v / maxs[j]
		}
	}
	return out, nil
}

// Range maps each column through (x - min) / (max - min), so the column
// maximum becomes exactly 1. A column whose max equals its min maps to 0.
func Range(m [][]float64) [][]float64 {
	sp := spans(m)
	out := alloc(m)
	for j := range sp {
		if sp[j].r == 0 {
			continue
		}
		for i := range m {
			out[i][j] = sp[j].fromLo(m[i][j])
		}
	}
	return out
}

func alloc(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i := range m {
		out[i] = make([]float64, len(m[i]))
	}
	return out
}
