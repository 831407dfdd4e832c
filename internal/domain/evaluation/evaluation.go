// Package evaluation holds the result of ranking one decision matrix with one
// or more methods.
package evaluation

import (
	"strings"
	"time"

	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

// ParetoMode controls whether methods rank the full matrix or only its front.
type ParetoMode string

// Pareto modes.
const (
	ParetoOff    ParetoMode = "off"
	ParetoFilter ParetoMode = "filter"
)

// ParseParetoMode parses a mode name; empty means ParetoOff.
func ParseParetoMode(s string) (ParetoMode, error) {
	switch ParetoMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ParetoOff:
		return ParetoOff, nil
	case ParetoFilter:
		return ParetoFilter, nil
	default:
		return "", domain.Errorf(domain.ErrInvalidParameter, "pareto mode must be off or filter, got %q", s)
	}
}

// Evaluation is an immutable evaluation result.
type Evaluation struct {
	id        string
	createdAt time.Time
	matrix    matrix.Matrix
	mode      ParetoMode
	front     matrix.Matrix
	rankings  []ranking.Ranking
}

// New creates an evaluation.
func New(id string, createdAt time.Time, m matrix.Matrix, mode ParetoMode, front matrix.Matrix, rankings []ranking.Ranking) Evaluation {
	return Evaluation{
		id:        id,
		createdAt: createdAt,
		matrix:    m,
		mode:      mode,
		front:     front,
		rankings:  rankings,
	}
}

// ID returns the evaluation ID.
func (e Evaluation) ID() string { return e.id }

// CreatedAt returns the creation time.
func (e Evaluation) CreatedAt() time.Time { return e.createdAt }

// Matrix returns the input matrix.
func (e Evaluation) Matrix() matrix.Matrix { return e.matrix }

// Mode returns the Pareto mode.
func (e Evaluation) Mode() ParetoMode { return e.mode }

// Front returns the Pareto front of the input matrix.
func (e Evaluation) Front() matrix.Matrix { return e.front }

// Rankings returns the rankings in method selection order.
func (e Evaluation) Rankings() []ranking.Ranking { return e.rankings }

// Ranking returns the ranking of one method.
func (e Evaluation) Ranking(kind method.Kind) (ranking.Ranking, bool) {
	for _, r := range e.rankings {
		if r.Method() == kind {
			return r, true
		}
	}
	return ranking.Ranking{}, false
}

// Methods returns the methods in selection order.
func (e Evaluation) Methods() []method.Kind {
	out := make([]method.Kind, len(e.rankings))
	for i, r := range e.rankings {
		out[i] = r.Method()
	}
	return out
}
