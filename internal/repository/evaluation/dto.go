package evaluation

import (
	"fmt"
	"time"

	domeval "github.com/kailas-cloud/rankdex/internal/domain/evaluation"
	"github.com/kailas-cloud/rankdex/internal/domain/ranking"
	"github.com/kailas-cloud/rankdex/internal/repository/dto"
)

// record is the JSON document stored per evaluation.
type record struct {
	ID        string        `json:"id"`
	CreatedAt int64         `json:"created_at"` // unix millis
	Mode      string        `json:"pareto_mode"`
	Matrix    dto.Matrix    `json:"matrix"`
	Front     dto.Matrix    `json:"front"`
	Rankings  []dto.Ranking `json:"rankings"`
}

func toRecord(e domeval.Evaluation) record {
	rankings := make([]dto.Ranking, len(e.Rankings()))
	for i, r := range e.Rankings() {
		rankings[i] = dto.FromRanking(r)
	}
	return record{
		ID:        e.ID(),
		CreatedAt: e.CreatedAt().UnixMilli(),
		Mode:      string(e.Mode()),
		Matrix:    dto.FromMatrix(e.Matrix()),
		Front:     dto.FromMatrix(e.Front()),
		Rankings:  rankings,
	}
}

func fromRecord(rec record) (domeval.Evaluation, error) {
	m, err := rec.Matrix.ToDomain()
	if err != nil {
		return domeval.Evaluation{}, fmt.Errorf("matrix: %w", err)
	}
	front, err := rec.Front.ToDomain()
	if err != nil {
		return domeval.Evaluation{}, fmt.Errorf("front: %w", err)
	}
	rankings := make([]ranking.Ranking, len(rec.Rankings))
	for i, d := range rec.Rankings {
		r, err := d.ToDomain()
		if err != nil {
			return domeval.Evaluation{}, err
		}
		rankings[i] = r
	}
	return domeval.New(
		rec.ID,
		time.UnixMilli(rec.CreatedAt).UTC(),
		m,
		domeval.ParetoMode(rec.Mode),
		front,
		rankings,
	), nil
}
