// Package dto holds the JSON shapes rankdex persists in the key-value store.
package dto

import (
	"fmt"

	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

// Matrix is the stored form of a decision matrix.
type Matrix struct {
	Rows    [][]float64 `json:"rows"`
	Labels  []string    `json:"labels"`
	Indices []int       `json:"indices"`
}

// FromMatrix converts a domain matrix.
func FromMatrix(m matrix.Matrix) Matrix {
	return Matrix{Rows: m.Values(), Labels: m.Labels(), Indices: m.Indices()}
}

// ToDomain hydrates the matrix without validation.
func (d Matrix) ToDomain() (matrix.Matrix, error) {
	if len(d.Labels) != len(d.Rows) || len(d.Indices) != len(d.Rows) {
		return matrix.Matrix{}, fmt.Errorf("stored matrix: %d rows, %d labels, %d indices",
			len(d.Rows), len(d.Labels), len(d.Indices))
	}
	return matrix.Reconstruct(d.Rows, d.Labels, d.Indices), nil
}

// Entry is the stored form of a ranking entry.
type Entry struct {
	Index   int                `json:"index"`
	Label   string             `json:"label"`
	Score   float64            `json:"score"`
	Details map[string]float64 `json:"details,omitempty"`
	Row     []float64          `json:"row"`
}

// Ranking is the stored form of a ranking.
type Ranking struct {
	Method      string             `json:"method"`
	Entries     []Entry            `json:"entries"`
	Diagnostics map[string]float64 `json:"diagnostics,omitempty"`
}

// FromRanking converts a domain ranking.
func FromRanking(r ranking.Ranking) Ranking {
	entries := make([]Entry, r.Len())
	for i, e := range r.Entries() {
		entries[i] = Entry{
			Index:   e.Index(),
			Label:   e.Label(),
			Score:   e.Score(),
			Details: e.Details(),
			Row:     e.Row(),
		}
	}
	return Ranking{
		Method:      r.Method().String(),
		Entries:     entries,
		Diagnostics: r.Diagnostics(),
	}
}

// ToDomain hydrates the ranking.
func (d Ranking) ToDomain() (ranking.Ranking, error) {
	kind := method.Kind(d.Method)
	if !kind.IsValid() {
		return ranking.Ranking{}, fmt.Errorf("stored ranking: unknown method %q", d.Method)
	}
	entries := make([]ranking.Entry, len(d.Entries))
	for i, e := range d.Entries {
		entries[i] = ranking.ReconstructEntry(e.Index, e.Label, e.Score, e.Details, e.Row)
	}
	return ranking.New(kind, entries, d.Diagnostics), nil
}
