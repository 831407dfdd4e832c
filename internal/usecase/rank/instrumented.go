package rank

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
	logpkg "github.com/kailas-cloud/rankdex/internal/logger"
	"github.com/kailas-cloud/rankdex/internal/metrics"
)

// Ranker ranks a decision matrix with one method.
type Ranker interface {
	Rank(ctx context.Context, kind method.Kind, m matrix.Matrix, p params.Params) (ranking.Ranking, error)
}

// InstrumentedRanker wraps a Ranker with metrics and debug logging.
type InstrumentedRanker struct {
	inner  Ranker
	logger *zap.Logger
}

// NewInstrumentedRanker wraps a ranker with observability.
func NewInstrumentedRanker(inner Ranker, logger *zap.Logger) *InstrumentedRanker {
	return &InstrumentedRanker{inner: inner, logger: logger}
}

// Rank delegates to the inner ranker and records duration and outcome.
func (r *InstrumentedRanker) Rank(
	ctx context.Context, kind method.Kind, m matrix.Matrix, p params.Params,
) (ranking.Ranking, error) {
	start := time.Now()
	res, err := r.inner.Rank(ctx, kind, m, p)
	duration := time.Since(start)

	label := kind.String()
	metrics.RankingDuration.WithLabelValues(label).Observe(duration.Seconds())
	metrics.RankingsTotal.WithLabelValues(label, outcome(err)).Inc()
	log := logpkg.FromContextOr(ctx, r.logger)

	if err != nil {
		log.Debug("Ranking failed",
			zap.String("method", label),
			zap.Int("alternatives", m.Len()),
			zap.Int("criteria", m.Criteria()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return ranking.Ranking{}, err
	}

	log.Debug("Ranking completed",
		zap.String("method", label),
		zap.Int("alternatives", m.Len()),
		zap.Int("criteria", m.Criteria()),
		zap.Duration("duration", duration),
	)
	return res, nil
}

// outcome classifies err into a low-cardinality metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrDegenerateComputation):
		return "degenerate"
	case errors.Is(err, domain.ErrDimensionMismatch),
		errors.Is(err, domain.ErrInvalidParameter),
		errors.Is(err, domain.ErrUnknownMethod),
		errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrMalformedMatrix):
		return "invalid_input"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
