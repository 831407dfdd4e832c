// Package rankdex ranks decision alternatives with classic multi-criteria
// decision analysis methods (MINSUM, MINMAX, MAXMIN, DIP, WSR, TOPSIS,
// ELECTRE IV, VIKOR, AHP, CHP, GSR) and filters Pareto-optimal alternatives.
//
// The client runs in-process. Evaluations are kept in memory by default, or
// in Valkey/Redis when a connection is configured.
//
//	client, _ := rankdex.New(ctx)
//	defer client.Close()
//
//	ev, _ := client.Evaluate(ctx, rankdex.Request{
//	    Matrix:  [][]float64{{8, 7, 6}, {7, 7, 7}, {6, 7, 8}},
//	    Methods: []string{"WSR", "TOPSIS", "VIKOR"},
//	    Params: map[string]rankdex.Params{
//	        "WSR": {Weights: []float64{0.4, 0.3, 0.3}},
//	    },
//	    Pareto: rankdex.ParetoFilter,
//	})
//	for _, r := range ev.Rankings {
//	    fmt.Println(r.Method, r.Rows[0].Label)
//	}
//
// A single method can be run without storing anything:
//
//	r, _ := client.Rank(ctx, "DIP", rankdex.Matrix{Rows: rows}, rankdex.Params{})
package rankdex
