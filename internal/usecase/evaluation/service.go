package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/rankdex/internal/domain"
	domeval "github.com/kailas-cloud/rankdex/internal/domain/evaluation"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/pareto"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
	logpkg "github.com/kailas-cloud/rankdex/internal/logger"
	"github.com/kailas-cloud/rankdex/internal/metrics"
)

// Config bounds the work a single evaluation may request.
type Config struct {
	// Workers caps how many methods of one evaluation run at once.
	Workers         int
	MaxAlternatives int
	MaxCriteria     int
	ResultTTL       time.Duration
}

// Request is one evaluation: a matrix, the methods to run in order, and
// per-method parameters. Methods missing from Params run with defaults.
type Request struct {
	Matrix  matrix.Matrix
	Methods []method.Kind
	Params  map[method.Kind]params.Params
	Pareto  domeval.ParetoMode
}

// Service ranks decision matrices and keeps the results for later retrieval.
type Service struct {
	ranker Ranker
	repo   Repository
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New creates an evaluation service.
func New(ranker Ranker, repo Repository, cfg Config, logger *zap.Logger) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Service{
		ranker: ranker,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Evaluate runs every requested method and stores the evaluation. Any method
// failure fails the whole evaluation with a method-qualified error.
func (s *Service) Evaluate(ctx context.Context, req Request) (domeval.Evaluation, error) {
	if err := s.checkLimits(req.Matrix); err != nil {
		return domeval.Evaluation{}, err
	}
	if len(req.Methods) == 0 {
		return domeval.Evaluation{}, domain.Errorf(domain.ErrInvalidParameter, "at least one method is required")
	}
	seen := make(map[method.Kind]bool, len(req.Methods))
	for _, k := range req.Methods {
		if seen[k] {
			return domeval.Evaluation{}, domain.Errorf(domain.ErrInvalidParameter, "method %s selected twice", k)
		}
		seen[k] = true
	}
	mode := req.Pareto
	if mode == "" {
		mode = domeval.ParetoOff
	}

	front := pareto.Front(req.Matrix)
	target := req.Matrix
	if mode == domeval.ParetoFilter {
		target = front
	}

	rankings, err := s.rankAll(ctx, target, req.Methods, req.Params)
	if err != nil {
		return domeval.Evaluation{}, err
	}

	e := domeval.New(s.newID(), s.now().UTC(), req.Matrix, mode, front, rankings)
	if err := s.repo.Save(ctx, e, s.cfg.ResultTTL); err != nil {
		return domeval.Evaluation{}, fmt.Errorf("save evaluation: %w", err)
	}
	metrics.EvaluationAlternatives.Observe(float64(req.Matrix.Len()))

	logpkg.FromContextOr(ctx, s.logger).Info("Evaluation completed",
		zap.String("evaluation_id", e.ID()),
		zap.Int("alternatives", req.Matrix.Len()),
		zap.Int("criteria", req.Matrix.Criteria()),
		zap.Int("front", front.Len()),
		zap.Int("methods", len(rankings)),
		zap.String("pareto", string(mode)),
	)
	return e, nil
}

// rankAll fans the methods out on a bounded errgroup. Rankings keep the
// selection order.
func (s *Service) rankAll(
	ctx context.Context, m matrix.Matrix, kinds []method.Kind, ps map[method.Kind]params.Params,
) ([]ranking.Ranking, error) {
	out := make([]ranking.Ranking, len(kinds))
	log := logpkg.FromContextOr(ctx, s.logger)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i, kind := range kinds {
		i, kind := i, kind
		p := ps[kind]
		g.Go(func() error {
			r, err := s.ranker.Rank(gctx, kind, m, p)
			if err != nil {
				log.Warn("Ranking method failed",
					zap.String("method", kind.String()),
					zap.Error(err),
				)
				return domain.NewMethodError(kind.Lower(), err)
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a stored evaluation.
func (s *Service) Get(ctx context.Context, id string) (domeval.Evaluation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domeval.Evaluation{}, domain.ErrNotFound
	}
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return domeval.Evaluation{}, fmt.Errorf("get evaluation %s: %w", id, err)
	}
	return e, nil
}

// Pareto returns the Pareto front of m.
func (s *Service) Pareto(_ context.Context, m matrix.Matrix) (matrix.Matrix, error) {
	if err := s.checkLimits(m); err != nil {
		return matrix.Matrix{}, err
	}
	return pareto.Front(m), nil
}

// Methods lists the method catalog, optionally filtered by category.
func (s *Service) Methods(category method.Category) []method.Info {
	return method.Catalog(category)
}

// Method describes one method by name.
func (s *Service) Method(name string) (method.Info, error) {
	kind, err := method.Parse(name)
	if err != nil {
		return method.Info{}, err
	}
	info, ok := method.Describe(kind)
	if !ok {
		return method.Info{}, domain.Errorf(domain.ErrUnknownMethod, "%q", name)
	}
	return info, nil
}

func (s *Service) checkLimits(m matrix.Matrix) error {
	if m.IsEmpty() {
		return domain.Errorf(domain.ErrEmptyInput, "matrix has no alternatives")
	}
	if s.cfg.MaxAlternatives > 0 && m.Len() > s.cfg.MaxAlternatives {
		return domain.Errorf(domain.ErrTooLarge, "%d alternatives exceed the limit of %d", m.Len(), s.cfg.MaxAlternatives)
	}
	if s.cfg.MaxCriteria > 0 && m.Criteria() > s.cfg.MaxCriteria {
		return domain.Errorf(domain.ErrTooLarge, "%d criteria exceed the limit of %d", m.Criteria(), s.cfg.MaxCriteria)
	}
	return nil
}
