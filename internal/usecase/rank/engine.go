// Package rank implements the ranking methods. Each method is a pure function
// of a decision matrix and its parameters; Engine dispatches on method.Kind.
package rank

import (
	"context"
	"math"
	"sort"

	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

// Engine runs ranking methods. The zero value is ready to use.
type Engine struct{}

// NewEngine creates an engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Rank ranks m with the given method. Failures are method-qualified, and a
// ranking carrying a non-finite number is reported as degenerate.
func (e *Engine) Rank(ctx context.Context, kind method.Kind, m matrix.Matrix, p params.Params) (ranking.Ranking, error) {
	if err := ctx.Err(); err != nil {
		return ranking.Ranking{}, domain.NewMethodError(kind.Lower(), err)
	}
	r, err := e.rank(ctx, kind, m, p)
	if err == nil {
		err = checkFinite(r)
	}
	if err != nil {
		return ranking.Ranking{}, domain.NewMethodError(kind.Lower(), err)
	}
	return r, nil
}

func (e *Engine) rank(ctx context.Context, kind method.Kind, m matrix.Matrix, p params.Params) (ranking.Ranking, error) {
	if m.IsEmpty() || m.Criteria() == 0 {
		return ranking.Ranking{}, domain.Errorf(domain.ErrEmptyInput, "matrix has no alternatives")
	}
	if err := checkInputs(kind, p); err != nil {
		return ranking.Ranking{}, err
	}

	switch kind {
	case method.MinSum:
		return minSum(m), nil
	case method.MinMax:
		return minMax(m), nil
	case method.MaxMin:
		return maxMin(m), nil
	case method.DIP:
		return idealPoint(m), nil
	case method.WSR:
		return weightedSum(m, p)
	case method.TOPSIS:
		return topsis(m, p)
	case method.ELECTRE:
		return electre(m)
	case method.VIKOR:
		return vikor(m, p)
	case method.AHP:
		return ahp(m, p)
	case method.CHP:
		return chp(m, p)
	case method.GSR:
		return gsr(ctx, m)
	default:
		return ranking.Ranking{}, domain.Errorf(domain.ErrUnknownMethod, "%q", string(kind))
	}
}

// checkInputs rejects parameters the method's catalog entry does not list.
func checkInputs(kind method.Kind, p params.Params) error {
	info, ok := method.Describe(kind)
	if !ok {
		return domain.Errorf(domain.ErrUnknownMethod, "%q", string(kind))
	}
	accepts := make(map[string]bool, len(info.Inputs))
	for _, in := range info.Inputs {
		accepts[in.Name] = true
	}
	switch {
	case p.Weights != nil && !accepts["weights"]:
		return domain.Errorf(domain.ErrInvalidParameter, "method takes no weights")
	case p.Directions != nil && !accepts["directions"]:
		return domain.Errorf(domain.ErrInvalidParameter, "method takes no directions")
	case p.StrategyWeight != nil && !accepts["v"]:
		return domain.Errorf(domain.ErrInvalidParameter, "method takes no strategy weight")
	}
	return nil
}

// checkFinite rejects rankings whose scores, details or diagnostics overflowed.
func checkFinite(r ranking.Ranking) error {
	for _, e := range r.Entries() {
		if !finite(e.Score()) {
			return domain.Errorf(domain.ErrDegenerateComputation, "score of %s is %v", e.Label(), e.Score())
		}
		for k, v := range e.Details() {
			if !finite(v) {
				return domain.Errorf(domain.ErrDegenerateComputation, "%s of %s is %v", k, e.Label(), v)
			}
		}
	}
	for k, v := range r.Diagnostics() {
		if !finite(v) {
			return domain.Errorf(domain.ErrDegenerateComputation, "%s is %v", k, v)
		}
	}
	return nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// candidate is an alternative with its metrics before ordering.
type candidate struct {
	alt     matrix.Alternative
	score   float64
	details map[string]float64
}

func candidates(m matrix.Matrix, score func(row []float64) float64) []candidate {
	out := make([]candidate, m.Len())
	for i, alt := range m.Rows() {
		out[i] = candidate{alt: alt, score: score(alt.Values())}
	}
	return out
}

// order sorts stably (ties keep input order) and builds the ranking.
func order(kind method.Kind, cs []candidate, less func(a, b candidate) bool, diagnostics map[string]float64) ranking.Ranking {
	sort.SliceStable(cs, func(i, j int) bool {
		return less(cs[i], cs[j])
	})
	entries := make([]ranking.Entry, len(cs))
	for i, c := range cs {
		entries[i] = ranking.NewEntry(c.alt, c.score, c.details)
	}
	return ranking.New(kind, entries, diagnostics)
}

func ascending(a, b candidate) bool  { return a.score < b.score }
func descending(a, b candidate) bool { return a.score > b.score }
