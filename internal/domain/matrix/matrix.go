// Package matrix holds the decision matrix: alternatives (rows) scored on criteria (columns).
package matrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/rankdex/internal/domain"
)

// Alternative is one candidate option: a label plus one score per criterion.
type Alternative struct {
	index  int
	label  string
	values []float64
}

// Index returns the 1-based position of the alternative in the original input.
func (a Alternative) Index() int { return a.index }

// Label returns the display label.
func (a Alternative) Label() string { return a.label }

// Values returns a copy of the criterion scores.
func (a Alternative) Values() []float64 { return cloneRow(a.values) }

// Value returns the score on criterion j (0-based).
func (a Alternative) Value(j int) float64 { return a.values[j] }

// Matrix is a validated, immutable decision matrix.
type Matrix struct {
	rows     []Alternative
	criteria int
}

// DefaultLabel returns the label used when the caller supplies none.
func DefaultLabel(index int) string { return "A" + strconv.Itoa(index) }

// New validates rows and builds a Matrix. labels may be nil or shorter than rows;
// missing labels default to A1..Am.
func New(rows [][]float64, labels []string) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, domain.Errorf(domain.ErrEmptyInput, "matrix has no alternatives")
	}
	n := len(rows[0])
	if n == 0 {
		return Matrix{}, domain.Errorf(domain.ErrEmptyInput, "matrix has no criteria")
	}
	if len(labels) > len(rows) {
		return Matrix{}, domain.Errorf(domain.ErrDimensionMismatch,
			"%d labels for %d alternatives", len(labels), len(rows))
	}

	alts := make([]Alternative, len(rows))
	for i, row := range rows {
		if len(row) != n {
			return Matrix{}, domain.Errorf(domain.ErrMalformedMatrix,
				"row %d has %d values, expected %d", i+1, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Matrix{}, domain.Errorf(domain.ErrMalformedMatrix,
					"cell (%d,%d) is not a finite number", i+1, j+1)
			}
		}
		label := DefaultLabel(i + 1)
		if i < len(labels) && strings.TrimSpace(labels[i]) != "" {
			label = strings.TrimSpace(labels[i])
		}
		alts[i] = Alternative{index: i + 1, label: label, values: cloneRow(row)}
	}

	return Matrix{rows: alts, criteria: n}, nil
}

// Parse converts string cells into a Matrix. Cells accept either '.' or ','
// as the decimal separator.
func Parse(cells [][]string, labels []string) (Matrix, error) {
	if len(cells) == 0 {
		return Matrix{}, domain.Errorf(domain.ErrEmptyInput, "matrix has no alternatives")
	}
	rows := make([][]float64, len(cells))
	for i, rec := range cells {
		row := make([]float64, len(rec))
		for j, cell := range rec {
			v, err := ParseDecimal(cell)
			if err != nil {
				return Matrix{}, domain.Errorf(domain.ErrMalformedMatrix, "cell (%d,%d): %v", i+1, j+1, err)
			}
			row[j] = v
		}
		rows[i] = row
	}
	return New(rows, labels)
}

// ParseDecimal parses a decimal string, tolerating a comma decimal separator:
// "0,4" and "0.4" both yield 0.4.
func ParseDecimal(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, fmt.Errorf("empty value")
	}
	if strings.Contains(t, ",") {
		if strings.Contains(t, ".") || strings.Count(t, ",") > 1 {
			return 0, fmt.Errorf("ambiguous decimal %q", s)
		}
		t = strings.Replace(t, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

// Reconstruct rebuilds a Matrix from trusted storage without validation.
func Reconstruct(rows [][]float64, labels []string, indices []int) Matrix {
	alts := make([]Alternative, len(rows))
	n := 0
	if len(rows) > 0 {
		n = len(rows[0])
	}
	for i, row := range rows {
		idx := i + 1
		if i < len(indices) {
			idx = indices[i]
		}
		label := DefaultLabel(idx)
		if i < len(labels) {
			label = labels[i]
		}
		alts[i] = Alternative{index: idx, label: label, values: cloneRow(row)}
	}
	return Matrix{rows: alts, criteria: n}
}

// Len returns the number of alternatives.
func (m Matrix) Len() int { return len(m.rows) }

// Criteria returns the number of criteria.
func (m Matrix) Criteria() int { return m.criteria }

// IsEmpty reports whether the matrix has no alternatives.
func (m Matrix) IsEmpty() bool { return len(m.rows) == 0 }

// Row returns the i-th alternative (0-based).
func (m Matrix) Row(i int) Alternative { return m.rows[i] }

// Rows returns the alternatives in input order.
func (m Matrix) Rows() []Alternative {
	out := make([]Alternative, len(m.rows))
	copy(out, m.rows)
	return out
}

// At returns the score of alternative i on criterion j (both 0-based).
func (m Matrix) At(i, j int) float64 { return m.rows[i].values[j] }

// Values returns a deep copy of the numeric table, safe for in-place transforms.
func (m Matrix) Values() [][]float64 {
	out := make([][]float64, len(m.rows))
	for i, r := range m.rows {
		out[i] = cloneRow(r.values)
	}
	return out
}

// Column returns a copy of criterion j across all alternatives.
func (m Matrix) Column(j int) []float64 {
	col := make([]float64, len(m.rows))
	for i, r := range m.rows {
		col[i] = r.values[j]
	}
	return col
}

// Labels returns the alternative labels in input order.
func (m Matrix) Labels() []string {
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.label
	}
	return out
}

// Indices returns the 1-based original indices in row order.
func (m Matrix) Indices() []int {
	out := make([]int, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.index
	}
	return out
}

// Subset returns a matrix made of the given alternatives. The alternatives keep
// their original index and label.
func (m Matrix) Subset(alts []Alternative) Matrix {
	rows := make([]Alternative, len(alts))
	copy(rows, alts)
	return Matrix{rows: rows, criteria: m.criteria}
}

func cloneRow(row []float64) []float64 {
	out := make([]float64, len(row))
	copy(out, row)
	return out
}
