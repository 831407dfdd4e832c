// Package ranking holds the ordered output of a ranking method.
package ranking

import (
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
)

// Entry is one ranked alternative.
type Entry struct {
	index   int
	label   string
	score   float64
	details map[string]float64
	row     []float64
}

// NewEntry creates an entry for an alternative with its primary score and
// optional secondary (tie-break) metrics.
func NewEntry(alt matrix.Alternative, score float64, details map[string]float64) Entry {
	return Entry{
		index:   alt.Index(),
		label:   alt.Label(),
		score:   score,
		details: details,
		row:     alt.Values(),
	}
}

// ReconstructEntry creates an entry from storage without validation.
func ReconstructEntry(index int, label string, score float64, details map[string]float64, row []float64) Entry {
	return Entry{index: index, label: label, score: score, details: details, row: row}
}

// Index returns the 1-based index of the alternative in the input matrix.
func (e Entry) Index() int { return e.index }

// Label returns the alternative label.
func (e Entry) Label() string { return e.label }

// Score returns the primary metric.
func (e Entry) Score() float64 { return e.score }

// Details returns secondary metrics (tie-break data, partial indices).
func (e Entry) Details() map[string]float64 { return e.details }

// Row returns the original criterion values.
func (e Entry) Row() []float64 { return e.row }

// Ranking is the best-first output of one method over one matrix.
type Ranking struct {
	method      method.Kind
	entries     []Entry
	diagnostics map[string]float64
}

// New creates a ranking. entries must already be ordered best-first.
func New(kind method.Kind, entries []Entry, diagnostics map[string]float64) Ranking {
	return Ranking{method: kind, entries: entries, diagnostics: diagnostics}
}

// Method returns the method that produced the ranking.
func (r Ranking) Method() method.Kind { return r.method }

// Entries returns the entries best-first.
func (r Ranking) Entries() []Entry { return r.entries }

// Len returns the number of ranked alternatives.
func (r Ranking) Len() int { return len(r.entries) }

// Best returns the top entry. ok is false for an empty ranking.
func (r Ranking) Best() (Entry, bool) {
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[0], true
}

// Diagnostics returns method-level diagnostics such as AHP consistency metrics.
func (r Ranking) Diagnostics() map[string]float64 { return r.diagnostics }

// Order returns the 1-based alternative indices best-first.
func (r Ranking) Order() []int {
	out := make([]int, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.index
	}
	return out
}
