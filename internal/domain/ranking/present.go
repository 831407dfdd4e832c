package ranking

import "math"

// DisplayPrecision is the number of decimals shown to users.
const DisplayPrecision = 3

// Row is a display-ready ranking row.
type Row struct {
	Position int
	Label    string
	Metric   float64
	Values   []float64
	Details  map[string]float64
	// Best marks every row tied with the top row after rounding.
	Best bool
}

// Present turns a ranking into display rows, rounding every number to
// DisplayPrecision decimals.
func Present(r Ranking) []Row {
	rows := make([]Row, len(r.entries))
	var top float64
	for i, e := range r.entries {
		metric := Round(e.score)
		if i == 0 {
			top = metric
		}
		values := make([]float64, len(e.row))
		for j, v := range e.row {
			values[j] = Round(v)
		}
		var details map[string]float64
		if len(e.details) > 0 {
			details = make(map[string]float64, len(e.details))
			for k, v := range e.details {
				details[k] = Round(v)
			}
		}
		rows[i] = Row{
			Position: i + 1,
			Label:    e.label,
			Metric:   metric,
			Values:   values,
			Details:  details,
			Best:     metric == top,
		}
	}
	return rows
}

// Round rounds v to DisplayPrecision decimals, half away from zero.
func Round(v float64) float64 {
	p := math.Pow(10, DisplayPrecision)
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
