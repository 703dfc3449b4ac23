package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/odds-lab/internal/backtest"
	"github.com/yourusername/odds-lab/internal/classifier"
	"github.com/yourusername/odds-lab/internal/filter"
	"github.com/yourusername/odds-lab/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type memorySource struct {
	football []models.FootballMatch
	tennis   []models.TennisMatch
	err      error
}

func (s *memorySource) Name() string { return "memory" }

func (s *memorySource) LoadFootball(ctx context.Context) ([]models.FootballMatch, error) {
	return s.football, s.err
}

func (s *memorySource) LoadTennis(ctx context.Context) ([]models.TennisMatch, error) {
	return s.tennis, s.err
}

func newMemorySource() *memorySource {
	return &memorySource{
		football: []models.FootballMatch{
			{League: "E0", Result: models.ResultHomeWin, OddsHome: d("2.0"), OddsDraw: d("3.4"), OddsAway: d("4.0")},
			{League: "E0", Result: models.ResultAwayWin, OddsHome: d("3.0"), OddsDraw: d("3.2"), OddsAway: d("2.5")},
			{League: "SP1", Result: models.ResultHomeWin, OddsHome: d("1.5"), OddsDraw: d("4.0"), OddsAway: d("6.0")},
		},
		tennis: []models.TennisMatch{
			{Winner: "A", Loser: "B", OddsWinner: d("1.5"), OddsLoser: d("2.6")},
			{Winner: "C", Loser: "D", OddsWinner: d("2.2"), OddsLoser: d("1.66")},
			{Winner: "E", Loser: "F", OddsWinner: d("1.3"), OddsLoser: d("3.5")},
		},
	}
}

func homeFixed(stake string) backtest.BacktestConfig {
	return backtest.BacktestConfig{
		Market:          models.MarketHome,
		InitialBankroll: d("100"),
		Stake:           backtest.NewFixedStake(d(stake)),
	}
}

func TestAnalysisServiceLeagues(t *testing.T) {
	svc := NewAnalysisService(newMemorySource(), nil, 2)

	leagues, err := svc.Leagues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"E0", "SP1"}, leagues)
}

func TestAnalysisServiceBacktest(t *testing.T) {
	svc := NewAnalysisService(newMemorySource(), nil, 2)

	report, err := svc.Backtest(context.Background(), BacktestRequest{
		Config:        homeFixed("10"),
		Criteria:      filter.Criteria{Leagues: filter.SelectAll()},
		ByLeague:      true,
		HistogramBins: 4,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 3, report.Matches)
	assert.True(t, report.Result.FinalBankroll.Equal(d("105")), "got %s", report.Result.FinalBankroll)
	assert.True(t, report.Result.ROI.Equal(d("5")))
	assert.Equal(t, 2, report.Metrics.BetsWon)

	require.Len(t, report.Leagues, 2)
	assert.Equal(t, "E0", report.Leagues[0].League)
	assert.True(t, report.Leagues[0].FinalBankroll.Equal(d("100")))
	assert.True(t, report.Leagues[1].FinalBankroll.Equal(d("105")))

	assert.Len(t, report.Distribution, 4)
	assert.Nil(t, report.OddsFilterMidpoint)
}

func TestAnalysisServiceBacktestFiltered(t *testing.T) {
	svc := NewAnalysisService(newMemorySource(), nil, 1)

	odds, err := filter.NewOddsFilter(filter.SideHome, d("1.5"), d("2.0"))
	require.NoError(t, err)

	report, err := svc.Backtest(context.Background(), BacktestRequest{
		Config:   homeFixed("10"),
		Criteria: filter.Criteria{Leagues: filter.SelectLeagues("E0"), Odds: &odds},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Matches)
	assert.True(t, report.Result.FinalBankroll.Equal(d("110")))
	assert.Nil(t, report.Leagues)
	assert.Nil(t, report.Distribution)
	require.NotNil(t, report.OddsFilterMidpoint)
	assert.True(t, report.OddsFilterMidpoint.Equal(d("1.75")), "got %s", report.OddsFilterMidpoint)
}

func TestAnalysisServiceBacktestRejectsInvalidInput(t *testing.T) {
	svc := NewAnalysisService(newMemorySource(), nil, 1)

	cfg := homeFixed("10")
	cfg.Market = models.Market("corners")
	_, err := svc.Backtest(context.Background(), BacktestRequest{Config: cfg})
	assert.ErrorIs(t, err, models.ErrInvalidMarket)

	bad := filter.OddsFilter{Side: filter.SideHome, Min: d("3"), Max: d("2")}
	_, err = svc.Backtest(context.Background(), BacktestRequest{Config: homeFixed("10"), Criteria: filter.Criteria{Odds: &bad}})
	assert.Error(t, err)
}

func TestAnalysisServiceSourceError(t *testing.T) {
	source := newMemorySource()
	source.err = errors.New("unreachable")
	svc := NewAnalysisService(source, nil, 1)

	_, err := svc.Leagues(context.Background())
	assert.Error(t, err)

	_, err = svc.Classify(context.Background(), classifier.DefaultBand)
	assert.Error(t, err)
}

func TestAnalysisServiceClassify(t *testing.T) {
	svc := NewAnalysisService(newMemorySource(), nil, 1)

	c, err := svc.Classify(context.Background(), classifier.DefaultBand)
	require.NoError(t, err)
	assert.Equal(t, 3, c.TotalMatches)
	assert.Zero(t, c.WinningMatches)
	assert.Zero(t, c.LosingMatches)

	band, err := ParseBand("1.4", "2.0")
	require.NoError(t, err)
	c, err = svc.Classify(context.Background(), band)
	require.NoError(t, err)
	assert.Equal(t, 2, c.TotalMatches)
	assert.Equal(t, 1, c.WinningMatches)
	assert.Equal(t, 1, c.LosingMatches)
	assert.True(t, c.WinPct.Equal(d("50")))
}

func TestParseBand(t *testing.T) {
	band, err := ParseBand("", "")
	require.NoError(t, err)
	assert.True(t, band.IsDefault())

	_, err = ParseBand("abc", "")
	assert.Error(t, err)

	_, err = ParseBand("3", "2")
	assert.Error(t, err)
}

type recordingWriter struct {
	football  []models.FootballMatch
	tennis    []models.TennisMatch
	truncated []models.Sport
	saveErr   error
}

func (w *recordingWriter) SaveFootball(ctx context.Context, matches []models.FootballMatch) (int64, error) {
	if w.saveErr != nil {
		return 0, w.saveErr
	}
	w.football = append(w.football, matches...)
	return int64(len(matches)), nil
}

func (w *recordingWriter) SaveTennis(ctx context.Context, matches []models.TennisMatch) (int64, error) {
	if w.saveErr != nil {
		return 0, w.saveErr
	}
	w.tennis = append(w.tennis, matches...)
	return int64(len(matches)), nil
}

func (w *recordingWriter) Truncate(ctx context.Context, sport models.Sport) (int64, error) {
	w.truncated = append(w.truncated, sport)
	if sport == models.SportFootball {
		n := int64(len(w.football))
		w.football = nil
		return n, nil
	}
	n := int64(len(w.tennis))
	w.tennis = nil
	return n, nil
}

func TestIngestionServiceImport(t *testing.T) {
	writer := &recordingWriter{}
	svc := NewIngestionService(newMemorySource(), writer, "sqlite", nil)

	result, err := svc.Import(context.Background(), models.SportFootball, false)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Loaded)
	assert.Equal(t, int64(3), result.Written)
	assert.Equal(t, "memory", result.Source)
	assert.Contains(t, result.String(), "written=3")

	result, err = svc.Import(context.Background(), models.SportFootball, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Replaced)
	assert.Len(t, writer.football, 3)
	assert.Equal(t, []models.Sport{models.SportFootball}, writer.truncated)
}

func TestIngestionServiceImportAll(t *testing.T) {
	writer := &recordingWriter{}
	svc := NewIngestionService(newMemorySource(), writer, "postgres", nil)

	results, err := svc.ImportAll(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, models.SportTennis, results[1].Sport)
	assert.Len(t, writer.tennis, 3)
}

func TestIngestionServiceFailures(t *testing.T) {
	writer := &recordingWriter{saveErr: errors.New("disk full")}
	svc := NewIngestionService(newMemorySource(), writer, "sqlite", nil)

	_, err := svc.Import(context.Background(), models.SportTennis, false)
	assert.ErrorContains(t, err, "disk full")

	_, err = svc.Import(context.Background(), models.Sport("golf"), false)
	assert.Error(t, err)
}
