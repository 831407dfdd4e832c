package rankcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rankdex/internal/db"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

type mockRanker struct {
	result ranking.Ranking
	err    error
	calls  int
}

func (m *mockRanker) Rank(_ context.Context, _ method.Kind, _ matrix.Matrix, _ params.Params) (ranking.Ranking, error) {
	m.calls++
	return m.result, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedRanker(t *testing.T, inner *mockRanker) (*CachedRanker, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cr := New(inner, ms, time.Hour, nil, zap.NewNop())
	return cr, ms
}

func testMatrix(t *testing.T) matrix.Matrix {
	t.Helper()
	m, err := matrix.New([][]float64{{1, 2}, {2, 1}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func testRanking(m matrix.Matrix) ranking.Ranking {
	return ranking.New(method.WSR, []ranking.Entry{
		ranking.NewEntry(m.Row(1), 4, nil),
		ranking.NewEntry(m.Row(0), 3, nil),
	}, nil)
}
