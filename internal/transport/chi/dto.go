package chi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/rankdex/internal/domain"
	domeval "github.com/kailas-cloud/rankdex/internal/domain/evaluation"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
	evaluationuc "github.com/kailas-cloud/rankdex/internal/usecase/evaluation"
)

// ErrorCode is a machine-readable error code.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest            ErrorCode = "bad_request"
	ErrorCodeUnauthorized          ErrorCode = "unauthorized"
	ErrorCodeEmptyInput            ErrorCode = "empty_input"
	ErrorCodeMalformedMatrix       ErrorCode = "malformed_matrix"
	ErrorCodeDimensionMismatch     ErrorCode = "dimension_mismatch"
	ErrorCodeInvalidParameter      ErrorCode = "invalid_parameter"
	ErrorCodeDegenerateComputation ErrorCode = "degenerate_computation"
	ErrorCodeUnknownMethod         ErrorCode = "unknown_method"
	ErrorCodeNotFound              ErrorCode = "not_found"
	ErrorCodeTooLarge              ErrorCode = "too_large"
	ErrorCodeInternalError         ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Method  string    `json:"method,omitempty"`
}

// Cell is a matrix or weight value: a JSON number or a decimal string
// ("0,4" and "0.4" are both accepted).
type Cell string

// UnmarshalJSON accepts numbers and strings.
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cell(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cell must be a number or a decimal string, got %s", data)
	}
	*c = Cell(n.String())
	return nil
}

func cellStrings(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = string(c)
	}
	return out
}

// MatrixInput is a decision matrix as sent by clients.
type MatrixInput struct {
	Matrix [][]Cell `json:"matrix"`
	Labels []string `json:"labels,omitempty"`
}

func (in MatrixInput) toDomain() (matrix.Matrix, error) {
	rows := make([][]string, len(in.Matrix))
	for i, r := range in.Matrix {
		rows[i] = cellStrings(r)
	}
	return matrix.Parse(rows, in.Labels)
}

// MethodParams are the optional inputs of one method.
type MethodParams struct {
	Weights    []Cell   `json:"weights,omitempty"`
	Directions []string `json:"directions,omitempty"`
	V          *float64 `json:"v,omitempty"`
}

// EvaluationRequest is the body of POST /api/v1/evaluations.
type EvaluationRequest struct {
	MatrixInput
	Methods []string                `json:"methods"`
	Params  map[string]MethodParams `json:"params,omitempty"`
	// Weights is a flat list split across the weighted methods in selection order.
	Weights []Cell `json:"weights,omitempty"`
	Pareto  string `json:"pareto,omitempty"`
}

func evaluationRequestFromDTO(req EvaluationRequest) (evaluationuc.Request, error) {
	m, err := req.toDomain()
	if err != nil {
		return evaluationuc.Request{}, err
	}
	kinds, err := method.ParseList(req.Methods)
	if err != nil {
		return evaluationuc.Request{}, err
	}
	mode, err := domeval.ParseParetoMode(req.Pareto)
	if err != nil {
		return evaluationuc.Request{}, err
	}

	var ps map[method.Kind]params.Params
	switch {
	case len(req.Weights) > 0 && len(req.Params) > 0:
		return evaluationuc.Request{}, domain.Errorf(domain.ErrInvalidParameter,
			"weights and params cannot be combined")
	case len(req.Weights) > 0:
		flat, err := params.ParseWeights(cellStrings(req.Weights))
		if err != nil {
			return evaluationuc.Request{}, err
		}
		if ps, err = params.Partition(kinds, flat, m.Criteria()); err != nil {
			return evaluationuc.Request{}, err
		}
	default:
		if ps, err = methodParamsFromDTO(kinds, req.Params); err != nil {
			return evaluationuc.Request{}, err
		}
	}

	return evaluationuc.Request{Matrix: m, Methods: kinds, Params: ps, Pareto: mode}, nil
}

func methodParamsFromDTO(kinds []method.Kind, in map[string]MethodParams) (map[method.Kind]params.Params, error) {
	selected := make(map[method.Kind]bool, len(kinds))
	for _, k := range kinds {
		selected[k] = true
	}
	out := make(map[method.Kind]params.Params, len(in))
	for name, mp := range in {
		kind, err := method.Parse(name)
		if err != nil {
			return nil, err
		}
		if !selected[kind] {
			return nil, domain.Errorf(domain.ErrInvalidParameter, "params given for unselected method %s", kind)
		}
		weights, err := params.ParseWeights(nilIfEmpty(mp.Weights))
		if err != nil {
			return nil, domain.NewMethodError(kind.Lower(), err)
		}
		var dirs []params.Direction
		if len(mp.Directions) > 0 {
			dirs = make([]params.Direction, len(mp.Directions))
			for i, d := range mp.Directions {
				if dirs[i], err = params.ParseDirection(d); err != nil {
					return nil, domain.NewMethodError(kind.Lower(), err)
				}
			}
		}
		out[kind] = params.Params{Weights: weights, Directions: dirs, StrategyWeight: mp.V}
	}
	return out, nil
}

func nilIfEmpty(cells []Cell) []string {
	if len(cells) == 0 {
		return nil
	}
	return cellStrings(cells)
}

// Alternative is one matrix row.
type Alternative struct {
	Index  int       `json:"index"`
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

func alternativesToDTO(m matrix.Matrix) []Alternative {
	out := make([]Alternative, m.Len())
	for i, a := range m.Rows() {
		out[i] = Alternative{Index: a.Index(), Label: a.Label(), Values: a.Values()}
	}
	return out
}

// RankingRow is one display row of a ranking.
type RankingRow struct {
	Position int                `json:"position"`
	Label    string             `json:"label"`
	Metric   float64            `json:"metric"`
	Values   []float64          `json:"values"`
	Details  map[string]float64 `json:"details,omitempty"`
	Best     bool               `json:"best"`
}

// Ranking is the display form of one method's ranking.
type Ranking struct {
	Method      string             `json:"method"`
	Title       string             `json:"title"`
	Direction   string             `json:"direction"`
	Rows        []RankingRow       `json:"rows"`
	Diagnostics map[string]float64 `json:"diagnostics,omitempty"`
}

func rankingToDTO(r ranking.Ranking) Ranking {
	out := Ranking{Method: r.Method().String()}
	if info, ok := method.Describe(r.Method()); ok {
		out.Title = info.Title
		out.Direction = info.Direction
	}
	rows := ranking.Present(r)
	out.Rows = make([]RankingRow, len(rows))
	for i, row := range rows {
		out.Rows[i] = RankingRow(row)
	}
	if d := r.Diagnostics(); len(d) > 0 {
		out.Diagnostics = make(map[string]float64, len(d))
		for k, v := range d {
			out.Diagnostics[k] = ranking.Round(v)
		}
	}
	return out
}

// EvaluationResponse is the body of evaluation responses.
type EvaluationResponse struct {
	ID           string        `json:"id"`
	CreatedAt    time.Time     `json:"created_at"`
	Pareto       string        `json:"pareto"`
	Alternatives []Alternative `json:"alternatives"`
	Front        []Alternative `json:"front"`
	Rankings     []Ranking     `json:"rankings"`
	Consensus    []Consensus   `json:"consensus,omitempty"`
}

// Consensus is one row of the cross-method fused ranking.
type Consensus struct {
	Position  int            `json:"position"`
	Index     int            `json:"index"`
	Label     string         `json:"label"`
	Score     float64        `json:"score"`
	Positions map[string]int `json:"positions"`
}

func consensusToDTO(entries []domeval.ConsensusEntry) []Consensus {
	if len(entries) == 0 {
		return nil
	}
	out := make([]Consensus, len(entries))
	for i, c := range entries {
		positions := make(map[string]int, len(c.Positions))
		for k, p := range c.Positions {
			positions[k.String()] = p
		}
		out[i] = Consensus{Position: i + 1, Index: c.Index, Label: c.Label, Score: c.Score, Positions: positions}
	}
	return out
}

func evaluationToDTO(e domeval.Evaluation) EvaluationResponse {
	rankings := make([]Ranking, len(e.Rankings()))
	for i, r := range e.Rankings() {
		rankings[i] = rankingToDTO(r)
	}
	return EvaluationResponse{
		ID:           e.ID(),
		CreatedAt:    e.CreatedAt(),
		Pareto:       string(e.Mode()),
		Alternatives: alternativesToDTO(e.Matrix()),
		Front:        alternativesToDTO(e.Front()),
		Rankings:     rankings,
		Consensus:    consensusToDTO(e.Consensus()),
	}
}

// ParetoResponse is the body of POST /api/v1/pareto.
type ParetoResponse struct {
	Front []Alternative `json:"front"`
	Count int           `json:"count"`
}

// MethodInput describes an extra input a method accepts.
type MethodInput struct {
	Name        string `json:"name"`
	PerCriteria bool   `json:"per_criteria"`
	Required    bool   `json:"required"`
}

// MethodInfo is one catalog entry.
type MethodInfo struct {
	Name        string        `json:"name"`
	Title       string        `json:"title"`
	Category    string        `json:"category"`
	Direction   string        `json:"direction"`
	Description string        `json:"description"`
	Inputs      []MethodInput `json:"inputs"`
}

func methodInfoToDTO(info method.Info) MethodInfo {
	inputs := make([]MethodInput, len(info.Inputs))
	for i, in := range info.Inputs {
		inputs[i] = MethodInput(in)
	}
	return MethodInfo{
		Name:        info.Kind.String(),
		Title:       info.Title,
		Category:    string(info.Category),
		Direction:   info.Direction,
		Description: info.Description,
		Inputs:      inputs,
	}
}

// MethodListResponse is the body of GET /api/v1/methods.
type MethodListResponse struct {
	Items []MethodInfo `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}
