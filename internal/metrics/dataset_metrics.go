package metrics

import "github.com/prometheus/client_golang/prometheus"

// Dataset counter vectors
var (
	DatasetRowsLoaded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_rows_loaded_total",
		Help:      "Total number of dataset rows accepted by source and sport",
	}, []string{"source", "sport"})

	DatasetRowsSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_rows_skipped_total",
		Help:      "Total number of malformed dataset rows excluded by source and sport",
	}, []string{"source", "sport"})

	DatasetCacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_cache_requests_total",
		Help:      "Dataset cache lookups by result",
	}, []string{"result"})

	DatasetRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_refresh_total",
		Help:      "Scheduled dataset refreshes by status",
	}, []string{"status"})
)

// Dataset histogram vectors
var (
	DatasetFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dataset_fetch_duration_seconds",
		Help:      "Duration of dataset loads in seconds by source",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})
)

// RecordDatasetLoad records the outcome of parsing one dataset.
func RecordDatasetLoad(source, sport string, loaded, skipped int, durationSeconds float64) {
	DatasetRowsLoaded.WithLabelValues(source, sport).Add(float64(loaded))
	DatasetRowsSkipped.WithLabelValues(source, sport).Add(float64(skipped))
	DatasetFetchDuration.WithLabelValues(source).Observe(durationSeconds)
}

// RecordCacheHit records a dataset cache hit.
func RecordCacheHit() {
	DatasetCacheRequests.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a dataset cache miss.
func RecordCacheMiss() {
	DatasetCacheRequests.WithLabelValues("miss").Inc()
}

// RecordDatasetRefresh records a scheduled refresh outcome.
func RecordDatasetRefresh(status string) {
	DatasetRefreshTotal.WithLabelValues(status).Inc()
}
