package backtest

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-lab/internal/logger"
	"github.com/yourusername/odds-lab/internal/metrics"
	"github.com/yourusername/odds-lab/internal/models"
)

const roiPlaces = 2

// RunBacktest bets cfg.Stake on cfg.Market for every match in input order and
// returns the bankroll trajectory. The bankroll has no floor: once it reaches
// zero the run continues and may go negative.
func RunBacktest(matches []models.FootballMatch, cfg BacktestConfig) (Result, error) {
	state := NewBacktestState(cfg.InitialBankroll, len(matches))

	for i := range matches {
		stake := cfg.Stake.NextStake(state.CurrentBankroll)
		state.Settle(&matches[i], cfg.Market, stake)
	}

	roi, err := calculateROI(cfg.InitialBankroll, state.CurrentBankroll)
	if err != nil {
		return Result{}, err
	}

	return Result{
		InitialBankroll: cfg.InitialBankroll,
		FinalBankroll:   state.CurrentBankroll,
		TotalBets:       state.TotalBets(),
		BetsWon:         state.BetsWon,
		BetsLost:        state.BetsLost,
		ROI:             roi,
		Trajectory:      state.Trajectory,
	}, nil
}

// calculateROI returns (final - initial) / initial * 100 rounded to 2 places.
// The ratio is taken in float64 and rounded on its binary value, so ties such
// as 0.025 resolve the way the published ROI figures do (0.03, while 0.125 -> 0.12).
func calculateROI(initial, final decimal.Decimal) (decimal.Decimal, error) {
	start, end := initial.InexactFloat64(), final.InexactFloat64()
	if start == 0 {
		return decimal.Zero, models.ErrZeroBankroll
	}
	roi := ((end - start) / start) * 100
	if math.IsInf(roi, 0) || math.IsNaN(roi) {
		return decimal.Zero, fmt.Errorf("roi out of range for bankroll %s -> %s", initial, final)
	}
	return decimal.RequireFromString(strconv.FormatFloat(roi, 'f', roiPlaces, 64)), nil
}

// Engine wraps the simulator with run ids, structured logs and Prometheus recording
type Engine struct {
	logger *logger.BacktestLogger
}

// NewEngine creates a new backtesting engine
func NewEngine(log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.New()
	}
	return &Engine{logger: logger.NewBacktestLogger(log)}
}

// Run executes a single backtest and returns its result tagged with a run id
func (e *Engine) Run(ctx context.Context, matches []models.FootballMatch, cfg BacktestConfig) (string, Result, error) {
	runID := uuid.NewString()
	if err := ctx.Err(); err != nil {
		return runID, Result{}, err
	}

	e.logger.LogRunStarted(runID, string(cfg.Market), cfg.Stake.String(), cfg.InitialBankroll.String(), len(matches))
	start := time.Now()

	result, err := RunBacktest(matches, cfg)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordBacktestRun("single", "failure", elapsed.Seconds())
		e.logger.LogRunFailed(runID, err)
		return runID, Result{}, err
	}

	metrics.RecordBacktestRun("single", "success", elapsed.Seconds())
	metrics.RecordBetsSimulated(string(cfg.Market), result.BetsWon, result.BetsLost)
	metrics.RecordBacktestROI(string(cfg.Market), result.ROI.InexactFloat64())
	metrics.UpdateFinalBankroll(string(cfg.Market), result.FinalBankroll.InexactFloat64())

	e.logger.LogRunCompleted(runID, result.FinalBankroll.String(), result.ROI.String(), result.BetsWon, result.BetsLost, float64(elapsed.Microseconds())/1000)
	return runID, result, nil
}

// RunByLeague executes the per-league aggregation, concurrently when workers > 1
func (e *Engine) RunByLeague(ctx context.Context, matches []models.FootballMatch, cfg BacktestConfig, workers int) (string, []LeagueSummary, error) {
	runID := uuid.NewString()
	start := time.Now()

	var (
		summaries []LeagueSummary
		err       error
	)
	if workers > 1 {
		summaries, err = SummarizeByLeagueConcurrent(ctx, matches, cfg, workers)
	} else {
		summaries, err = SummarizeByLeague(matches, cfg)
	}
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordBacktestRun("league", "failure", elapsed.Seconds())
		e.logger.LogRunFailed(runID, err)
		return runID, nil, err
	}

	metrics.RecordBacktestRun("league", "success", elapsed.Seconds())
	for _, summary := range summaries {
		metrics.UpdateLeagueSummary(summary.League, string(cfg.Market), summary.ROI.InexactFloat64(), summary.BankrollHitZeroOrBelow)
		e.logger.LogLeagueSummary(runID, summary.League, summary.FinalBankroll.String(), summary.ROI.String(), summary.TotalBets, summary.BankrollHitZeroOrBelow)
	}
	return runID, summaries, nil
}
