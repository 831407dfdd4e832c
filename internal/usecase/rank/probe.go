package rank

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/rankdex/internal/domain/matrix"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/domain/params"
)

// Probe ranks a fixed matrix and checks the known order. Used by health checks.
func (e *Engine) Probe(ctx context.Context) error {
	m, err := matrix.New([][]float64{{8, 7, 6}, {7, 7, 7}, {6, 7, 8}}, nil)
	if err != nil {
		return fmt.Errorf("probe matrix: %w", err)
	}
	r, err := e.Rank(ctx, method.WSR, m, params.Params{Weights: []float64{0.4, 0.3, 0.3}})
	if err != nil {
		return fmt.Errorf("probe rank: %w", err)
	}
	if got := r.Order(); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		return fmt.Errorf("probe rank: unexpected order %v", got)
	}
	return nil
}
