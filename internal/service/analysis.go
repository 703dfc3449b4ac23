package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-lab/internal/backtest"
	"github.com/yourusername/odds-lab/internal/classifier"
	"github.com/yourusername/odds-lab/internal/datasource"
	"github.com/yourusername/odds-lab/internal/filter"
	"github.com/yourusername/odds-lab/internal/logger"
	"github.com/yourusername/odds-lab/internal/metrics"
)

// ErrInvalidRequest wraps every rejection of caller-supplied parameters
var ErrInvalidRequest = errors.New("invalid request")

// BacktestRequest describes one football analysis
type BacktestRequest struct {
	Config   backtest.BacktestConfig
	Criteria filter.Criteria
	// ByLeague adds a per-league summary of the filtered matches
	ByLeague bool
	// HistogramBins > 0 adds an odds distribution of the filtered matches
	HistogramBins int
}

// BacktestReport is everything produced for a BacktestRequest
type BacktestReport struct {
	RunID        string                   `json:"run_id"`
	Matches      int                      `json:"matches"`
	Result       backtest.Result          `json:"result"`
	Metrics      backtest.Metrics         `json:"metrics"`
	Leagues      []backtest.LeagueSummary `json:"leagues,omitempty"`
	Distribution []backtest.Bucket        `json:"distribution,omitempty"`
	// OddsFilterMidpoint is (min+max)/2 of the odds filter, when one was applied
	OddsFilterMidpoint *decimal.Decimal `json:"odds_filter_midpoint,omitempty"`
}

// AnalysisService loads datasets and runs backtests and classifications on them
type AnalysisService struct {
	source  datasource.DataSource
	engine  *backtest.Engine
	logger  *logger.BacktestLogger
	workers int
}

// NewAnalysisService creates a new analysis service. workers bounds the
// number of leagues simulated at once.
func NewAnalysisService(source datasource.DataSource, log *logrus.Logger, workers int) *AnalysisService {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &AnalysisService{
		source:  source,
		engine:  backtest.NewEngine(log),
		logger:  logger.NewBacktestLogger(log),
		workers: workers,
	}
}

// Leagues returns the leagues of the football dataset in order of first appearance
func (s *AnalysisService) Leagues(ctx context.Context) ([]string, error) {
	matches, err := s.source.LoadFootball(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load football dataset: %w", err)
	}
	return filter.DistinctLeagues(matches), nil
}

// Backtest filters the football dataset and simulates the requested strategy on it
func (s *AnalysisService) Backtest(ctx context.Context, req BacktestRequest) (*BacktestReport, error) {
	if err := req.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if req.Criteria.Odds != nil {
		if err := req.Criteria.Odds.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}

	all, err := s.source.LoadFootball(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load football dataset: %w", err)
	}
	matches := req.Criteria.Apply(all)

	runID, result, err := s.engine.Run(ctx, matches, req.Config)
	if err != nil {
		return nil, err
	}

	report := &BacktestReport{
		RunID:   runID,
		Matches: len(matches),
		Result:  result,
		Metrics: backtest.CalculateMetrics(result),
	}

	if req.ByLeague {
		_, summaries, err := s.engine.RunByLeague(ctx, matches, req.Config, s.workers)
		if err != nil {
			return nil, err
		}
		report.Leagues = summaries
	}
	if req.Criteria.Odds != nil {
		midpoint := req.Criteria.Odds.Midpoint()
		report.OddsFilterMidpoint = &midpoint
	}
	if req.HistogramBins > 0 {
		report.Distribution = backtest.OddsDistribution(matches, req.HistogramBins)
	}
	return report, nil
}

// Classify computes the win/loss record of tennis prices inside band
func (s *AnalysisService) Classify(ctx context.Context, band classifier.Band) (classifier.Classification, error) {
	if err := band.Validate(); err != nil {
		return classifier.Classification{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	matches, err := s.source.LoadTennis(ctx)
	if err != nil {
		return classifier.Classification{}, fmt.Errorf("failed to load tennis dataset: %w", err)
	}

	c := classifier.Classify(matches, band)
	metrics.RecordClassification(band.IsDefault())
	s.logger.LogClassification(band.Min.String(), band.Max.String(), band.IsDefault(), c.TotalMatches, c.WinningMatches, c.LosingMatches)
	return c, nil
}

// ParseBand builds a band from the two text inputs, falling back to the
// default bound for an empty value
func ParseBand(min, max string) (classifier.Band, error) {
	lo, hi := classifier.DefaultBand.Min, classifier.DefaultBand.Max
	var err error
	if min != "" {
		if lo, err = decimal.NewFromString(min); err != nil {
			return classifier.Band{}, fmt.Errorf("invalid band min %q", min)
		}
	}
	if max != "" {
		if hi, err = decimal.NewFromString(max); err != nil {
			return classifier.Band{}, fmt.Errorf("invalid band max %q", max)
		}
	}
	return classifier.NewBand(lo, hi)
}
