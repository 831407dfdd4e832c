package rankcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rankdex/internal/db"
	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
	"github.com/kailas-cloud/rankdex/internal/repository/dto"
)

var cacheKeyPrefix = domain.KeyPrefix + "rank_cache:"

// store is the consumer interface for the ranking cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ranker is the decorated ranking engine.
type ranker interface {
	Rank(ctx context.Context, kind method.Kind, m matrix.Matrix, p params.Params) (ranking.Ranking, error)
}

// CachedRanker caches rankings in a key-value store. Failures are never cached.
type CachedRanker struct {
	inner      ranker
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner ranker,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedRanker {
	return &CachedRanker{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Rank returns a cached ranking or calls the inner ranker.
func (c *CachedRanker) Rank(
	ctx context.Context, kind method.Kind, m matrix.Matrix, p params.Params,
) (ranking.Ranking, error) {
	key, err := cacheKey(kind, m, p)
	if err != nil {
		c.logger.Warn("Failed to build ranking cache key", zap.Error(err))
		return c.inner.Rank(ctx, kind, m, p)
	}

	if r, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return r, nil
	}

	c.incCache("miss")

	r, err := c.inner.Rank(ctx, kind, m, p)
	if err != nil {
		return ranking.Ranking{}, err
	}

	c.putToCache(ctx, key, r)
	return r, nil
}

func (c *CachedRanker) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// keyInput is everything a ranking depends on, labels and indices included.
type keyInput struct {
	Method     string             `json:"method"`
	Matrix     dto.Matrix         `json:"matrix"`
	Weights    []float64          `json:"weights,omitempty"`
	Directions []params.Direction `json:"directions,omitempty"`
	V          *float64           `json:"v,omitempty"`
}

func cacheKey(kind method.Kind, m matrix.Matrix, p params.Params) (string, error) {
	data, err := json.Marshal(keyInput{
		Method:     kind.String(),
		Matrix:     dto.FromMatrix(m),
		Weights:    p.Weights,
		Directions: p.Directions,
		V:          p.StrategyWeight,
	})
	if err != nil {
		return "", fmt.Errorf("marshal cache key: %w", err)
	}
	h := sha256.Sum256(data)
	return cacheKeyPrefix + hex.EncodeToString(h[:]), nil
}

func (c *CachedRanker) getFromCache(ctx context.Context, key string) (ranking.Ranking, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached ranking", zap.String("key", key), zap.Error(err))
		}
		return ranking.Ranking{}, false
	}
	if len(data) == 0 {
		return ranking.Ranking{}, false
	}

	var d dto.Ranking
	if err := json.Unmarshal(data, &d); err != nil {
		c.logger.Warn("Failed to parse cached ranking", zap.String("key", key), zap.Error(err))
		return ranking.Ranking{}, false
	}
	r, err := d.ToDomain()
	if err != nil {
		c.logger.Warn("Failed to hydrate cached ranking", zap.String("key", key), zap.Error(err))
		return ranking.Ranking{}, false
	}
	return r, true
}

func (c *CachedRanker) putToCache(ctx context.Context, key string, r ranking.Ranking) {
	data, err := json.Marshal(dto.FromRanking(r))
	if err != nil {
		c.logger.Warn("Failed to encode ranking", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache ranking", zap.String("key", key), zap.Error(err))
	}
}
