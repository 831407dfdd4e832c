package rankdex

import (
	"context"
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

// Evaluate runs every requested method on the matrix and stores the result.
// If any method fails, nothing is stored and the error names the method.
func (c *Client) Evaluate(ctx context.Context, req Request) (_ Evaluation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("evaluate", "", start, err) }()

	internal, err := toInternalRequest(req)
	if err != nil {
		return Evaluation{}, err
	}
	e, err := c.evalSvc.Evaluate(ctx, internal)
	if err != nil {
		return Evaluation{}, fmt.Errorf("evaluate: %w", err)
	}
	return fromInternalEvaluation(e), nil
}

// Evaluation returns a stored evaluation by ID.
func (c *Client) Evaluation(ctx context.Context, id string) (_ Evaluation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("evaluation.get", "", start, err) }()

	e, err := c.evalSvc.Get(ctx, id)
	if err != nil {
		return Evaluation{}, fmt.Errorf("get evaluation: %w", err)
	}
	return fromInternalEvaluation(e), nil
}

// Rank runs a single method without storing anything.
func (c *Client) Rank(ctx context.Context, name string, m Matrix, p Params) (_ Ranking, err error) {
	start := time.Now()
	kind, err := method.Parse(name)
	if err != nil {
		c.obs.observe("rank", "", start, err)
		return Ranking{}, err
	}
	defer func() { c.obs.observe("rank", kind.String(), start, err) }()

	dm, err := matrix.New(m.Rows, m.Labels)
	if err != nil {
		return Ranking{}, err
	}
	ip, err := toInternalParams(p)
	if err != nil {
		return Ranking{}, domain.NewMethodError(kind.Lower(), err)
	}
	r, err := c.ranker.Rank(ctx, kind, dm, ip)
	if err != nil {
		return Ranking{}, domain.NewMethodError(kind.Lower(), err)
	}
	return fromInternalRanking(r), nil
}

// Pareto returns the alternatives no other alternative dominates, where
// smaller values are better on every criterion.
func (c *Client) Pareto(ctx context.Context, m Matrix) (_ []Alternative, err error) {
	start := time.Now()
	defer func() { c.obs.observe("pareto", "", start, err) }()

	dm, err := matrix.New(m.Rows, m.Labels)
	if err != nil {
		return nil, err
	}
	front, err := c.evalSvc.Pareto(ctx, dm)
	if err != nil {
		return nil, fmt.Errorf("pareto: %w", err)
	}
	return fromInternalAlternatives(front), nil
}

// Methods lists the supported methods, optionally filtered by category
// (empty string means all).
func (c *Client) Methods(category string) ([]MethodInfo, error) {
	cat, err := method.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	infos := c.evalSvc.Methods(cat)
	out := make([]MethodInfo, len(infos))
	for i, info := range infos {
		out[i] = fromInternalMethodInfo(info)
	}
	return out, nil
}

// Method describes one method; aliases such as "ELECTRE-IV" are accepted.
func (c *Client) Method(name string) (MethodInfo, error) {
	info, err := c.evalSvc.Method(name)
	if err != nil {
		return MethodInfo{}, err
	}
	return fromInternalMethodInfo(info), nil
}

func toInternalRequest(req Request) (evaluationuc.Request, error) {
	m, err := matrix.New(req.Matrix, req.Labels)
	if err != nil {
		return evaluationuc.Request{}, err
	}
	kinds, err := method.ParseList(req.Methods)
	if err != nil {
		return evaluationuc.Request{}, err
	}
	mode, err := domeval.ParseParetoMode(string(req.Pareto))
	if err != nil {
		return evaluationuc.Request{}, err
	}

	selected := make(map[method.Kind]bool, len(kinds))
	for _, k := range kinds {
		selected[k] = true
	}
	ps := make(map[method.Kind]params.Params, len(req.Params))
	for name, p := range req.Params {
		kind, err := method.Parse(name)
		if err != nil {
			return evaluationuc.Request{}, err
		}
		if !selected[kind] {
			return evaluationuc.Request{}, domain.Errorf(domain.ErrInvalidParameter,
				"params given for unselected method %s", kind)
		}
		ip, err := toInternalParams(p)
		if err != nil {
			return evaluationuc.Request{}, domain.NewMethodError(kind.Lower(), err)
		}
		ps[kind] = ip
	}

	return evaluationuc.Request{Matrix: m, Methods: kinds, Params: ps, Pareto: mode}, nil
}

func toInternalParams(p Params) (params.Params, error) {
	var dirs []params.Direction
	if len(p.Directions) > 0 {
		dirs = make([]params.Direction, len(p.Directions))
		for i, d := range p.Directions {
			pd, err := params.ParseDirection(string(d))
			if err != nil {
				return params.Params{}, err
			}
			dirs[i] = pd
		}
	}
	return params.Params{Weights: p.Weights, Directions: dirs, StrategyWeight: p.V}, nil
}

func fromInternalEvaluation(e domeval.Evaluation) Evaluation {
	rankings := make([]Ranking, len(e.Rankings()))
	for i, r := range e.Rankings() {
		rankings[i] = fromInternalRanking(r)
	}
	return Evaluation{
		ID:           e.ID(),
		CreatedAt:    e.CreatedAt(),
		Pareto:       ParetoMode(e.Mode()),
		Alternatives: fromInternalAlternatives(e.Matrix()),
		Front:        fromInternalAlternatives(e.Front()),
		Rankings:     rankings,
		Consensus:    fromInternalConsensus(e.Consensus()),
	}
}

func fromInternalConsensus(entries []domeval.ConsensusEntry) []ConsensusRow {
	if len(entries) == 0 {
		return nil
	}
	out := make([]ConsensusRow, len(entries))
	for i, c := range entries {
		positions := make(map[string]int, len(c.Positions))
		for k, p := range c.Positions {
			positions[k.String()] = p
		}
		out[i] = ConsensusRow{Position: i + 1, Index: c.Index, Label: c.Label, Score: c.Score, Positions: positions}
	}
	return out
}

func fromInternalRanking(r ranking.Ranking) Ranking {
	display := ranking.Present(r)
	rows := make([]Row, r.Len())
	for i, e := range r.Entries() {
		rows[i] = Row{
			Position: i + 1,
			Index:    e.Index(),
			Label:    e.Label(),
			Score:    e.Score(),
			Values:   e.Row(),
			Details:  e.Details(),
			Best:     display[i].Best,
		}
	}
	return Ranking{
		Method:      r.Method().String(),
		Rows:        rows,
		Diagnostics: r.Diagnostics(),
	}
}

func fromInternalAlternatives(m matrix.Matrix) []Alternative {
	out := make([]Alternative, m.Len())
	for i, a := range m.Rows() {
		out[i] = Alternative{Index: a.Index(), Label: a.Label(), Values: a.Values()}
	}
	return out
}

func fromInternalMethodInfo(info method.Info) MethodInfo {
	inputs := make([]string, len(info.Inputs))
	for i, in := range info.Inputs {
		inputs[i] = in.Name
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
