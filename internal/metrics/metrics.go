// Package metrics provides the centralized Prometheus metrics registry for odds-lab.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "odds_lab"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	BetsSimulatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bets_simulated_total",
		Help:      "Total number of simulated bets by market and outcome",
	}, []string{"market", "outcome"})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of API requests by route and status code",
	}, []string{"route", "code"})
)

// Gauge metrics
var (
	FinalBankroll = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "final_bankroll",
		Help:      "Final bankroll of the latest backtest run by market",
	}, []string{"market"})
)

// Histogram metrics
var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of API requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(BetsSimulatedTotal)
		registry.MustRegister(HTTPRequestsTotal)
		registry.MustRegister(FinalBankroll)
		registry.MustRegister(HTTPRequestDuration)

		// Register backtest metrics
		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(BacktestDuration)
		registry.MustRegister(BacktestROI)
		registry.MustRegister(LeagueROI)
		registry.MustRegister(LeagueBankrollBusted)
		registry.MustRegister(ClassificationsTotal)

		// Register dataset metrics
		registry.MustRegister(DatasetRowsLoaded)
		registry.MustRegister(DatasetRowsSkipped)
		registry.MustRegister(DatasetCacheRequests)
		registry.MustRegister(DatasetRefreshTotal)
		registry.MustRegister(DatasetFetchDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordBetsSimulated records the settled bets of one run.
func RecordBetsSimulated(market string, won, lost int) {
	BetsSimulatedTotal.WithLabelValues(market, "won").Add(float64(won))
	BetsSimulatedTotal.WithLabelValues(market, "lost").Add(float64(lost))
}

// UpdateFinalBankroll updates the final bankroll gauge for a market.
func UpdateFinalBankroll(market string, amount float64) {
	FinalBankroll.WithLabelValues(market).Set(amount)
}

// RecordHTTPRequest records one API request.
func RecordHTTPRequest(route, code string, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(route, code).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}
