package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/rankdex/internal/db"
	"github.com/kailas-cloud/rankdex/internal/domain"
	domeval "github.com/kailas-cloud/rankdex/internal/domain/evaluation"
)

// store is the consumer interface for evaluations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repo implements usecase/evaluation.Repository.
type Repo struct {
	store store
}

// New creates an evaluation repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save stores the evaluation as a JSON document that expires after ttl.
func (r *Repo) Save(ctx context.Context, e domeval.Evaluation, ttl time.Duration) error {
	data, err := json.Marshal(toRecord(e))
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}
	if err := r.store.SetWithTTL(ctx, key(e.ID()), data, ttl); err != nil {
		return fmt.Errorf("store evaluation: %w", err)
	}
	return nil
}

// Get loads an evaluation. Missing or expired evaluations are domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domeval.Evaluation, error) {
	data, err := r.store.Get(ctx, key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domeval.Evaluation{}, domain.ErrNotFound
		}
		return domeval.Evaluation{}, fmt.Errorf("get evaluation: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return domeval.Evaluation{}, fmt.Errorf("unmarshal evaluation: %w", err)
	}
	e, err := fromRecord(rec)
	if err != nil {
		return domeval.Evaluation{}, fmt.Errorf("hydrate evaluation %s: %w", id, err)
	}
	return e, nil
}

func key(id string) string {
	return domain.KeyPrefix + "evaluation:" + id
}
