package logger

import (
	"github.com/sirupsen/logrus"
)

// BacktestLogger provides dedicated logging for simulation runs.
type BacktestLogger struct {
	*logrus.Entry
}

// NewBacktestLogger creates a new backtest logger.
func NewBacktestLogger(baseLogger *logrus.Logger) *BacktestLogger {
	return &BacktestLogger{
		Entry: baseLogger.WithField("component", "backtest"),
	}
}

// LogRunStarted logs the parameters of a run.
func (bl *BacktestLogger) LogRunStarted(runID, market, stake, initialBankroll string, matches int) {
	bl.WithFields(logrus.Fields{
		"run_id":           runID,
		"market":           market,
		"stake":            stake,
		"initial_bankroll": initialBankroll,
		"matches":          matches,
	}).Info("Backtest run started")
}

// LogRunCompleted logs the outcome of a run.
func (bl *BacktestLogger) LogRunCompleted(runID, finalBankroll, roi string, betsWon, betsLost int, durationMs float64) {
	bl.WithFields(logrus.Fields{
		"run_id":         runID,
		"final_bankroll": finalBankroll,
		"roi":            roi,
		"bets_won":       betsWon,
		"bets_lost":      betsLost,
		"duration_ms":    durationMs,
	}).Info("Backtest run completed")
}

// LogRunFailed logs a run that returned an error.
func (bl *BacktestLogger) LogRunFailed(runID string, err error) {
	bl.WithFields(logrus.Fields{
		"run_id": runID,
	}).WithError(err).Error("Backtest run failed")
}

// LogLeagueSummary logs one per-league row.
func (bl *BacktestLogger) LogLeagueSummary(runID, league, finalBankroll, roi string, totalBets int, busted bool) {
	entry := bl.WithFields(logrus.Fields{
		"run_id":         runID,
		"league":         league,
		"final_bankroll": finalBankroll,
		"roi":            roi,
		"total_bets":     totalBets,
		"busted":         busted,
	})
	if busted {
		entry.Warn("League bankroll reached zero")
		return
	}
	entry.Debug("League summary computed")
}

// LogClassification logs a tennis odds band classification.
func (bl *BacktestLogger) LogClassification(bandMin, bandMax string, defaultBand bool, total, winning, losing int) {
	bl.WithFields(logrus.Fields{
		"band_min":     bandMin,
		"band_max":     bandMax,
		"default_band": defaultBand,
		"total":        total,
		"winning":      winning,
		"losing":       losing,
	}).Info("Tennis odds band classified")
}
