// Package params holds per-method ranking parameters.
package params

import (
	"math"
	"strings"

	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
)

// Direction is the optimisation direction of a criterion.
type Direction string

// Criterion directions.
const (
	// Benefit criteria prefer larger values.
	Benefit Direction = "benefit"
	// Cost criteria prefer smaller values.
	Cost Direction = "cost"
)

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == Benefit || d == Cost
}

// ParseDirection accepts "benefit"/"cost" in any case, plus "max"/"min".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "benefit", "max", "+":
		return Benefit, nil
	case "cost", "min", "-":
		return Cost, nil
	default:
		return "", domain.Errorf(domain.ErrInvalidParameter, "direction %q must be benefit or cost", s)
	}
}

// DefaultStrategyWeight is VIKOR's default weight of the group-utility strategy.
const DefaultStrategyWeight = 0.5

// Params are the optional inputs of one ranking method. Zero value means
// "all defaults": equal weights, benefit directions, v = 0.5.
type Params struct {
	Weights    []float64
	Directions []Direction
	// StrategyWeight is VIKOR's v; nil means DefaultStrategyWeight.
	StrategyWeight *float64
}

// WeightsFor returns the weights for n criteria, defaulting to 1 per criterion.
func (p Params) WeightsFor(n int) ([]float64, error) {
	if p.Weights == nil {
		w := make([]float64, n)
		for i := range w {
			w[i] = 1
		}
		return w, nil
	}
	if len(p.Weights) != n {
		return nil, domain.Errorf(domain.ErrDimensionMismatch,
			"%d weights for %d criteria", len(p.Weights), n)
	}
	out := make([]float64, n)
	for i, w := range p.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, domain.Errorf(domain.ErrInvalidParameter,
				"weight %d must be a finite non-negative number, got %v", i+1, w)
		}
		out[i] = w
	}
	return out, nil
}

// DirectionsFor returns the directions for n criteria, defaulting to Benefit.
func (p Params) DirectionsFor(n int) ([]Direction, error) {
	if p.Directions == nil {
		d := make([]Direction, n)
		for i := range d {
			d[i] = Benefit
		}
		return d, nil
	}
	if len(p.Directions) != n {
		return nil, domain.Errorf(domain.ErrDimensionMismatch,
			"%d directions for %d criteria", len(p.Directions), n)
	}
	out := make([]Direction, n)
	for i, d := range p.Directions {
		if !d.IsValid() {
			return nil, domain.Errorf(domain.ErrInvalidParameter,
				"direction %d must be benefit or cost, got %q", i+1, d)
		}
		out[i] = d
	}
	return out, nil
}

// Strategy returns VIKOR's v in [0,1].
func (p Params) Strategy() (float64, error) {
	if p.StrategyWeight == nil {
		return DefaultStrategyWeight, nil
	}
	v := *p.StrategyWeight
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, domain.Errorf(domain.ErrInvalidParameter, "strategy weight v must be in [0,1], got %v", v)
	}
	return v, nil
}

// ParseWeights parses decimal strings (comma or dot separator) into weights.
func ParseWeights(raw []string) ([]float64, error) {
	if raw == nil {
		return nil, nil
	}
	out := make([]float64, len(raw))
	for i, s := range raw {
		v, err := matrix.ParseDecimal(s)
		if err != nil {
			return nil, domain.Errorf(domain.ErrInvalidParameter, "weight %d: %v", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}
