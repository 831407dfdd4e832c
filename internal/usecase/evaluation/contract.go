package evaluation

import (
	"context"
	"time"

	domeval "github.com/kailas-cloud/rankdex/internal/domain/evaluation"
	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
)

// Ranker ranks a decision matrix with one method.
type Ranker interface {
	Rank(ctx context.Context, kind method.Kind, m matrix.Matrix, p params.Params) (ranking.Ranking, error)
}

// Repository defines the storage contract for evaluations.
type Repository interface {
	Save(ctx context.Context, e domeval.Evaluation, ttl time.Duration) error
	Get(ctx context.Context, id string) (domeval.Evaluation, error)
}
