package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ranking Prometheus metrics.
var (
	RankingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rankdex",
			Name:      "rankings_total",
			Help:      "Total number of ranking method runs",
		},
		[]string{"method", "status"}, // status: "ok" / error class
	)

	RankingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rankdex",
			Name:      "ranking_duration_seconds",
			Help:      "Ranking method duration in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method"},
	)

	RankingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rankdex",
			Name:      "ranking_cache_total",
			Help:      "Ranking cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	EvaluationAlternatives = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rankdex",
			Name:      "evaluation_alternatives",
			Help:      "Number of alternatives per evaluation",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
	)
)

var rankingMetricsRegistered bool

// RegisterRankingMetrics registers Prometheus ranking metrics. Must be called once from main.
func RegisterRankingMetrics() {
	if rankingMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankingsTotal)
	prometheus.MustRegister(RankingDuration)
	prometheus.MustRegister(RankingCacheTotal)
	prometheus.MustRegister(EvaluationAlternatives)
	rankingMetricsRegistered = true
}
