package rankdex

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rankdex/internal/db"
	"github.com/kailas-cloud/rankdex/internal/db/memory"
	dbRedis "github.com/kailas-cloud/rankdex/internal/db/redis"
	domeval "github.com/kailas-cloud/rankdex/internal/domain/evaluation"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
	evaluationrepo "github.com/kailas-cloud/rankdex/internal/repository/evaluation"
	"github.com/kailas-cloud/rankdex/internal/repository/rankcache"
	evaluationuc "github.com/kailas-cloud/rankdex/internal/usecase/evaluation"
	healthuc "github.com/kailas-cloud/rankdex/internal/usecase/health"
	"github.com/kailas-cloud/rankdex/internal/usecase/rank"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultResultTTL        = 24 * time.Hour
)

// Internal interfaces, replaced by mocks in tests.
type evaluationUseCase interface {
	Evaluate(ctx context.Context, req evaluationuc.Request) (domeval.Evaluation, error)
	Get(ctx context.Context, id string) (domeval.Evaluation, error)
	Pareto(ctx context.Context, m matrix.Matrix) (matrix.Matrix, error)
	Methods(category method.Category) []method.Info
	Method(name string) (method.Info, error)
}

type rankUseCase interface {
	Rank(ctx context.Context, kind method.Kind, m matrix.Matrix, p params.Params) (ranking.Ranking, error)
}

// Client is the rankdex SDK entry point.
type Client struct {
	store     db.Store
	evalSvc   evaluationUseCase
	ranker    rankUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a rankdex Client. Without a store option evaluations are kept
// in memory. The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:    driverMemory,
		workers:   1,
		resultTTL: defaultResultTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("rankdex: database not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverMemory:
		return memory.NewStore(), nil
	case driverValkey, driverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("rankdex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("rankdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	// The SDK reports through slog and its own registerer; internals stay quiet.
	logger := zap.NewNop()

	engine := rank.NewEngine()
	var ranker rankUseCase = engine
	if cfg.cacheTTL > 0 {
		ranker = rankcache.New(engine, store, cfg.cacheTTL, nil, logger)
	}

	evalSvc := evaluationuc.New(ranker, evaluationrepo.New(store), evaluationuc.Config{
		Workers:         cfg.workers,
		MaxAlternatives: cfg.maxAlternatives,
		MaxCriteria:     cfg.maxCriteria,
		ResultTTL:       cfg.resultTTL,
	}, logger)

	return &Client{
		store:     store,
		evalSvc:   evalSvc,
		ranker:    ranker,
		healthSvc: healthuc.New(store, engine),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", "", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
