// Package pareto extracts the Pareto front of a decision matrix under the
// "lower is better" convention.
package pareto

import "github.com/kailas-cloud/rankdex/internal/domain/matrix"

// IsDominated reports whether a is dominated by b: b is at least as good
// (not greater) on every criterion and strictly better (smaller) on one.
// Vectors of different length never dominate each other.
func IsDominated(a, b []float64) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	strictly := false
	for j := range a {
		if a[j] < b[j] {
			return false
		}
		if a[j] > b[j] {
			strictly = true
		}
	}
	return strictly
}

// Front returns the alternatives that no other alternative dominates, in
// their original relative order. O(m²·n).
func Front(m matrix.Matrix) matrix.Matrix {
	// Fewer than two rows: the dominance relation is empty.
	if m.Len() < 2 {
		return m
	}

	rows := m.Rows()
	front := make([]matrix.Alternative, 0, len(rows))
	for i := range rows {
		a := rows[i].Values()
		dominated := false
		for j := range rows {
			if i == j {
				continue
			}
			if IsDominated(a, rows[j].Values()) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, rows[i])
		}
	}
	return m.Subset(front)
}

// Dominators returns, for each alternative, the 1-based indices of the
// alternatives that dominate it. Rows on the front have an empty list.
func Dominators(m matrix.Matrix) map[int][]int {
	out := make(map[int][]int, m.Len())
	rows := m.Rows()
	for i := range rows {
		a := rows[i].Values()
		for j := range rows {
			if i != j && IsDominated(a, rows[j].Values()) {
				out[rows[i].Index()] = append(out[rows[i].Index()], rows[j].Index())
			}
		}
	}
	return out
}
