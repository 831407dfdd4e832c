package params

import (
	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
)

// Partition splits a flat weight list across the selected weighted methods.
// The k-th weighted method in selection order receives
// flat[k*criteria : (k+1)*criteria]; unweighted methods receive nothing.
// An empty flat list yields no weights (methods fall back to defaults).
func Partition(kinds []method.Kind, flat []float64, criteria int) (map[method.Kind]Params, error) {
	out := make(map[method.Kind]Params, len(kinds))
	weighted := 0
	for _, k := range kinds {
		if k.Weighted() {
			weighted++
		}
	}

	if len(flat) == 0 {
		for _, k := range kinds {
			out[k] = Params{}
		}
		return out, nil
	}

	if want := criteria * weighted; len(flat) != want {
		return nil, domain.Errorf(domain.ErrDimensionMismatch,
			"flat weight list has %d values, expected %d (%d criteria x %d weighted methods)",
			len(flat), want, criteria, weighted)
	}

	slot := 0
	for _, k := range kinds {
		if !k.Weighted() {
			out[k] = Params{}
			continue
		}
		w := make([]float64, criteria)
		copy(w, flat[slot*criteria:(slot+1)*criteria])
		out[k] = Params{Weights: w}
		slot++
	}
	return out, nil
}
