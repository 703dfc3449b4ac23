package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest counter vectors
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by kind and status",
	}, []string{"kind", "status"})

	ClassificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tennis_classifications_total",
		Help:      "Total number of tennis odds band classifications by band type",
	}, []string{"band"})
)

// Backtest histogram vectors
var (
	BacktestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"kind"})

	BacktestROI = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backtest_roi_percent",
		Help:      "ROI of completed backtest runs in percent",
		Buckets:   []float64{-100, -50, -20, -10, -5, 0, 5, 10, 20, 50, 100},
	}, []string{"market"})
)

// Backtest gauge vectors
var (
	LeagueROI = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "league_roi_percent",
		Help:      "ROI of the latest per-league backtest by league and market",
	}, []string{"league", "market"})

	LeagueBankrollBusted = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "league_bankroll_busted",
		Help:      "1 when the latest per-league backtest reached a bankroll at or below zero",
	}, []string{"league", "market"})
)

// RecordBacktestRun records a backtest run event.
// kind should be one of: "single", "league"
// status should be one of: "success", "failure"
func RecordBacktestRun(kind, status string, durationSeconds float64) {
	BacktestRunsTotal.WithLabelValues(kind, status).Inc()
	BacktestDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// RecordBacktestROI records the ROI of a completed run.
func RecordBacktestROI(market string, roi float64) {
	BacktestROI.WithLabelValues(market).Observe(roi)
}

// UpdateLeagueSummary updates the per-league gauges.
func UpdateLeagueSummary(league, market string, roi float64, busted bool) {
	LeagueROI.WithLabelValues(league, market).Set(roi)
	value := 0.0
	if busted {
		value = 1
	}
	LeagueBankrollBusted.WithLabelValues(league, market).Set(value)
}

// RecordClassification records a tennis classifier run.
func RecordClassification(defaultBand bool) {
	band := "custom"
	if defaultBand {
		band = "default"
	}
	ClassificationsTotal.WithLabelValues(band).Inc()
}
