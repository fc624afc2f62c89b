package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultError    = "error"
	ResultCached   = "cached"
)

var (
	RecommendationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tourism",
		Subsystem: "recommend",
		Name:      "requests_total",
		Help:      "Number of recommendation requests by result.",
	}, []string{"result"})
	RecommendationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tourism",
		Subsystem: "recommend",
		Name:      "seconds",
		Help:      "Time spent computing recommendations.",
		Buckets:   prometheus.DefBuckets,
	})
	RecommendationResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tourism",
		Subsystem: "recommend",
		Name:      "results",
		Help:      "Length of returned recommendation lists.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
	RatingAggregateConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tourism",
		Subsystem: "rating",
		Name:      "aggregate_conflicts_total",
		Help:      "Number of rating aggregate writes rejected by a concurrent update.",
	})
	RatingAggregateSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tourism",
		Subsystem: "rating",
		Name:      "aggregate_seconds",
		Help:      "Time spent holding a place aggregate lock, retries included.",
		Buckets:   prometheus.DefBuckets,
	})
)
