package rankdex

import (
	"context"

	domeval "github.com/kailas-cloud/rankdex/internal/domain/evaluation"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
	evaluationuc "github.com/kailas-cloud/rankdex/internal/usecase/evaluation"
	healthuc "github.com/kailas-cloud/rankdex/internal/usecase/health"
)

// --- evaluationUseCase mock ---

type mockEvaluationUC struct {
	evaluateFn func(ctx context.Context, req evaluationuc.Request) (domeval.Evaluation, error)
	getFn      func(ctx context.Context, id string) (domeval.Evaluation, error)
	paretoFn   func(ctx context.Context, m matrix.Matrix) (matrix.Matrix, error)
}

func (m *mockEvaluationUC) Evaluate(ctx context.Context, req evaluationuc.Request) (domeval.Evaluation, error) {
	return m.evaluateFn(ctx, req)
}

func (m *mockEvaluationUC) Get(ctx context.Context, id string) (domeval.Evaluation, error) {
	return m.getFn(ctx, id)
}

func (m *mockEvaluationUC) Pareto(ctx context.Context, mx matrix.Matrix) (matrix.Matrix, error) {
	return m.paretoFn(ctx, mx)
}

func (m *mockEvaluationUC) Methods(category method.Category) []method.Info {
	return method.Catalog(category)
}

func (m *mockEvaluationUC) Method(name string) (method.Info, error) {
	k, err := method.Parse(name)
	if err != nil {
		return method.Info{}, err
	}
	info, _ := method.Describe(k)
	return info, nil
}

// --- rankUseCase mock ---

type mockRanker struct {
	rankFn func(ctx context.Context, kind method.Kind, m matrix.Matrix, p params.Params) (ranking.Ranking, error)
}

func (m *mockRanker) Rank(
	ctx context.Context, kind method.Kind, mx matrix.Matrix, p params.Params,
) (ranking.Ranking, error) {
	return m.rankFn(ctx, kind, mx, p)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }
