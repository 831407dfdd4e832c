package rank

import (
	"math"

	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/normalize"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

// minSum prefers the smallest row total.
func minSum(m matrix.Matrix) ranking.Ranking {
	cs := candidates(m, func(row []float64) float64 {
		var s float64
		for _, v := range row {
			s += v
		}
		return s
	})
	return order(method.MinSum, cs, ascending, nil)
}

// minMax prefers the row whose largest value is smallest.
func minMax(m matrix.Matrix) ranking.Ranking {
	cs := candidates(m, func(row []float64) float64 {
		mx := row[0]
		for _, v := range row[1:] {
			mx = math.Max(mx, v)
		}
		return mx
	})
	return order(method.MinMax, cs, ascending, nil)
}

// maxMin prefers the row whose smallest value is largest.
func maxMin(m matrix.Matrix) ranking.Ranking {
	cs := candidates(m, func(row []float64) float64 {
		mn := row[0]
		for _, v := range row[1:] {
			mn = math.Min(mn, v)
		}
		return mn
	})
	return order(method.MaxMin, cs, descending, nil)
}

// idealPoint ranks by Euclidean distance to the column-wise minimum vector.
func idealPoint(m matrix.Matrix) ranking.Ranking {
	ideal, _ := normalize.Bounds(m.Values())
	cs := candidates(m, func(row []float64) float64 {
		return distance(row, ideal)
	})
	return order(method.DIP, cs, ascending, nil)
}

func distance(a, b []float64) float64 {
	var sq float64
	for j := range a {
		d := a[j] - b[j]
		sq += d * d
	}
	return math.Sqrt(sq)
}
