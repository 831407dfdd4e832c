package rank

import (
	"strconv"

	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

// randomIndex is Saaty's random consistency index for n = 1..10.
var randomIndex = [...]float64{0, 0, 0.58, 0.90, 1.12, 1.24, 1.32, 1.41, 1.45, 1.49}

// ahp derives priorities from the column-normalized pairwise matrix and
// ranks by the priority-weighted sum.
func ahp(m matrix.Matrix, p params.Params) (ranking.Ranking, error) {
	w, err := p.WeightsFor(m.Criteria())
	if err != nil {
		return ranking.Ranking{}, err
	}
	pr := columnPriorities(pairwise(w))
	return weightedRanking(method.AHP, m, pr, priorityDiagnostics(pr)), nil
}

// chp uses row-sum priorities of the same pairwise matrix and reports the
// consistency index and ratio as diagnostics.
func chp(m matrix.Matrix, p params.Params) (ranking.Ranking, error) {
	w, err := p.WeightsFor(m.Criteria())
	if err != nil {
		return ranking.Ranking{}, err
	}
	a := pairwise(w)
	pr := rowPriorities(a)

	diag := priorityDiagnostics(pr)
	lambda, ci := consistency(a, pr)
	diag["lambda_max"] = lambda
	diag["ci"] = ci
	if n := len(pr); n <= len(randomIndex) {
		cr := 0.0
		if ri := randomIndex[n-1]; ri > 0 {
			cr = ci / ri
		}
		diag["cr"] = cr
	}
	return weightedRanking(method.CHP, m, pr, diag), nil
}

// minRelativeWeight is the smallest weight, relative to the largest, that
// still enters the pairwise matrix; smaller weights count as 0 so that no
// ratio w[k]/w[l] can overflow.
const minRelativeWeight = 1e-300

// pairwise builds a[k][l] = w[k] / w[l], dividing by 1 where w[l] is 0.
// Weights are first divided by their maximum, which leaves every ratio intact.
func pairwise(w []float64) [][]float64 {
	rel := relativeWeights(w)
	a := make([][]float64, len(rel))
	for k := range rel {
		a[k] = make([]float64, len(rel))
		for l := range rel {
			a[k][l] = rel[k] / nonZero(rel[l])
		}
	}
	return a
}

// relativeWeights scales w into [0, 1] by its maximum.
func relativeWeights(w []float64) []float64 {
	var top float64
	for _, x := range w {
		top = max(top, x)
	}
	out := make([]float64, len(w))
	if top == 0 {
		return out
	}
	for i, x := range w {
		if r := x / top; r >= minRelativeWeight {
			out[i] = r
		}
	}
	return out
}

// columnPriorities column-normalizes a and averages each row.
func columnPriorities(a [][]float64) []float64 {
	n := len(a)
	colSum := make([]float64, n)
	for k := range a {
		for l, v := range a[k] {
			colSum[l] += v
		}
	}
	pr := make([]float64, n)
	for k := range a {
		for l, v := range a[k] {
			pr[k] += v / nonZero(colSum[l])
		}
		pr[k] /= float64(n)
	}
	return unitSum(pr)
}

// rowPriorities normalizes the row sums of a.
func rowPriorities(a [][]float64) []float64 {
	pr := make([]float64, len(a))
	for k := range a {
		for _, v := range a[k] {
			pr[k] += v
		}
	}
	return unitSum(pr)
}

// consistency returns λmax and CI = (λmax − n)/(n − 1), clamped at 0.
// λmax averages (A·p)_k / p_k over criteria with a positive priority.
func consistency(a [][]float64, pr []float64) (lambda, ci float64) {
	n := len(pr)
	var sum float64
	count := 0
	for k := range a {
		if pr[k] <= 0 {
			continue
		}
		sum += dot(a[k], pr) / pr[k]
		count++
	}
	if count > 0 {
		lambda = sum / float64(count)
	}
	if n <= 1 {
		return lambda, 0
	}
	return lambda, max(0, (lambda-float64(n))/float64(n-1))
}

// unitSum scales xs to sum to 1; an all-zero vector becomes uniform.
func unitSum(xs []float64) []float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		if total == 0 {
			out[i] = 1 / float64(len(xs))
			continue
		}
		out[i] = x / total
	}
	return out
}

func nonZero(x float64) float64 {
	if x == 0 {
		return 1
	}
	return x
}

func weightedRanking(kind method.Kind, m matrix.Matrix, pr []float64, diag map[string]float64) ranking.Ranking {
	cs := candidates(m, func(row []float64) float64 {
		return dot(row, pr)
	})
	return order(kind, cs, descending, diag)
}

func priorityDiagnostics(pr []float64) map[string]float64 {
	diag := make(map[string]float64, len(pr)+3)
	for k, p := range pr {
		diag["w"+strconv.Itoa(k+1)] = p
	}
	return diag
}
