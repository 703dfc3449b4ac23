package backtest

import (
	"context"
	"fmt"
	"sort"

	"github.com/yourusername/odds-lab/internal/models"
	"golang.org/x/sync/errgroup"
)

// partitionByLeague groups matches by league, keeping leagues in first-appearance
// order and matches in input order within each league
func partitionByLeague(matches []models.FootballMatch) ([]string, map[string][]models.FootballMatch) {
	var leagues []string
	groups := make(map[string][]models.FootballMatch)
	for _, match := range matches {
		if _, seen := groups[match.League]; !seen {
			leagues = append(leagues, match.League)
		}
		groups[match.League] = append(groups[match.League], match)
	}
	return leagues, groups
}

func summarize(league string, matches []models.FootballMatch, cfg BacktestConfig) (LeagueSummary, error) {
	result, err := RunBacktest(matches, cfg)
	if err != nil {
		return LeagueSummary{}, fmt.Errorf("league %s: %w", league, err)
	}
	return LeagueSummary{
		League:                 league,
		Result:                 result,
		BankrollHitZeroOrBelow: result.Trajectory.HitZeroOrBelow(),
	}, nil
}

// SummarizeByLeague runs an independent backtest for every league in the input
func SummarizeByLeague(matches []models.FootballMatch, cfg BacktestConfig) ([]LeagueSummary, error) {
	leagues, groups := partitionByLeague(matches)
	summaries := make([]LeagueSummary, 0, len(leagues))
	for _, league := range leagues {
		summary, err := summarize(league, groups[league], cfg)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// SummarizeByLeagueConcurrent is SummarizeByLeague with up to workers leagues
// simulated at once. Rows come back in the same order.
func SummarizeByLeagueConcurrent(ctx context.Context, matches []models.FootballMatch, cfg BacktestConfig, workers int) ([]LeagueSummary, error) {
	leagues, groups := partitionByLeague(matches)
	summaries := make([]LeagueSummary, len(leagues))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, league := range leagues {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			summary, err := summarize(league, groups[league], cfg)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// SortByROI orders summaries by ROI, best first. Ties keep their order.
func SortByROI(summaries []LeagueSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].ROI.GreaterThan(summaries[j].ROI)
	})
}

// SortByFinalBankroll orders summaries by final bankroll, highest first. Ties keep their order.
func SortByFinalBankroll(summaries []LeagueSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].FinalBankroll.GreaterThan(summaries[j].FinalBankroll)
	})
}
