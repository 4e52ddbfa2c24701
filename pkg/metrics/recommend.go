package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the related-products Recommend HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reco_recommend_latency_seconds",
		Help:    "Latency of the related products handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_recommend_requests_total",
		Help: "Total number of recommendation requests",
	})

	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_cache_hits_total",
		Help: "Recommendation result cache hits",
	})

	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_cache_misses_total",
		Help: "Recommendation result cache misses",
	})

	FallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_fallback_total",
		Help: "How many times the content-only fallback produced the result",
	})

	StrategyCandidates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reco_strategy_candidates_total",
		Help: "Candidates returned per scoring strategy",
	}, []string{"strategy"})

	StrategyErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reco_strategy_errors_total",
		Help: "Scorer failures degraded to empty candidate sets",
	}, []string{"strategy"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		CacheHits,
		CacheMisses,
		FallbackTotal,
		StrategyCandidates,
		StrategyErrors,
	)
}
