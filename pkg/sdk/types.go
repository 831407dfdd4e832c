package rankdex

import "time"

// Direction is the optimisation direction of a criterion.
type Direction string

// Direction constants.
const (
	Benefit Direction = "benefit"
	Cost    Direction = "cost"
)

// ParetoMode controls whether methods rank every alternative or only the Pareto front.
type ParetoMode string

// Pareto mode constants.
const (
	ParetoOff    ParetoMode = "off"
	ParetoFilter ParetoMode = "filter"
)

// Matrix is a decision matrix: one row per alternative, one column per criterion.
// Labels are optional and default to A1..Am.
type Matrix struct {
	Rows   [][]float64
	Labels []string
}

// Params are the optional inputs of one method. The zero value means
// equal weights, benefit directions and VIKOR v = 0.5.
type Params struct {
	Weights    []float64
	Directions []Direction
	V          *float64
}

// Request describes one evaluation.
type Request struct {
	Matrix  [][]float64
	Labels  []string
	Methods []string
	// Params are keyed by method name.
	Params map[string]Params
	Pareto ParetoMode
}

// Alternative is one row of a matrix with its 1-based position in the input.
type Alternative struct {
	Index  int
	Label  string
	Values []float64
}

// Row is one ranked alternative, best first.
type Row struct {
	Position int
	Index    int
	Label    string
	Score    float64
	Values   []float64
	Details  map[string]float64
	// Best marks every row tied with the top row at display precision.
	Best bool
}

// Ranking is the output of one method.
type Ranking struct {
	Method      string
	Rows        []Row
	Diagnostics map[string]float64
}

// Evaluation is a stored multi-method result.
type Evaluation struct {
	ID           string
	CreatedAt    time.Time
	Pareto       ParetoMode
	Alternatives []Alternative
	Front        []Alternative
	Rankings     []Ranking
	// Consensus fuses the rankings by reciprocal rank; nil for a single method.
	Consensus    []ConsensusRow
}

// ConsensusRow is one alternative of the fused ranking.
type ConsensusRow struct {
	Position  int
	Index     int
	Label     string
	Score     float64
	Positions map[string]int
}

// MethodInfo describes a supported method.
type MethodInfo struct {
	Name        string
	Title       string
	Category    string
	Direction   string
	Description string
	Inputs      []string
}
