// Package main provides the football backtesting CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/yourusername/odds-lab/internal/app"
	"github.com/yourusername/odds-lab/internal/backtest"
	"github.com/yourusername/odds-lab/internal/filter"
	"github.com/yourusername/odds-lab/internal/models"
	"github.com/yourusername/odds-lab/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	market     string
	stakeMode  string
	stakeValue string
	bankroll   string
	leagues    []string
	oddsSide   string
	oddsMin    string
	oddsMax    string
	byLeague   bool
	sortBy     string
	bins       int
	outputDir  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:     "backtest",
	Short:   "Backtest a flat football betting strategy",
	Long:    `Bets on the home, draw or away market of every selected match in order and reports the bankroll trajectory, ROI and per-league results.`,
	Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
	RunE:    run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	flags.StringVarP(&market, "market", "m", "", "Market to bet on: home, draw, away (or 1, x, 2)")
	flags.StringVar(&stakeMode, "stake-mode", "", "Stake mode: fixed or percent")
	flags.StringVar(&stakeValue, "stake", "", "Stake amount (fixed) or percentage of bankroll (percent)")
	flags.StringVar(&bankroll, "bankroll", "", "Initial bankroll")
	flags.StringSliceVarP(&leagues, "league", "l", nil, "League codes to include, or \"all\"")
	flags.StringVar(&oddsSide, "odds-side", "", "Restrict to matches whose home or away odds lie in the range")
	flags.StringVar(&oddsMin, "odds-min", filter.DefaultMinOdds.String(), "Lower bound of the odds range")
	flags.StringVar(&oddsMax, "odds-max", filter.DefaultMaxOdds.String(), "Upper bound of the odds range")
	flags.BoolVar(&byLeague, "by-league", false, "Also backtest every league separately")
	flags.StringVar(&sortBy, "sort", "", "Order the league table by roi or bankroll (default: first appearance)")
	flags.IntVar(&bins, "bins", -1, "Odds histogram buckets (0 disables, default from config)")
	flags.StringVarP(&outputDir, "output", "o", "", "Directory for trajectory.csv and leagues.csv")
	flags.BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseDecimal(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q", name, value)
	}
	return d, nil
}

func buildRequest(a *app.App, cmd *cobra.Command) (service.BacktestRequest, error) {
	defaults, err := a.BacktestDefaults()
	if err != nil {
		return service.BacktestRequest{}, err
	}
	cfg := defaults.Config
	if market != "" {
		if cfg.Market, err = models.ParseMarket(market); err != nil {
			return service.BacktestRequest{}, err
		}
	}
	if bankroll != "" {
		if cfg.InitialBankroll, err = parseDecimal("bankroll", bankroll); err != nil {
			return service.BacktestRequest{}, err
		}
	}
	if stakeMode != "" || stakeValue != "" {
		var mode backtest.StakeMode
		if stakeMode != "" {
			if mode, err = backtest.ParseStakeMode(stakeMode); err != nil {
				return service.BacktestRequest{}, err
			}
		}
		var value *decimal.Decimal
		if stakeValue != "" {
			v, err := parseDecimal("stake", stakeValue)
			if err != nil {
				return service.BacktestRequest{}, err
			}
			value = &v
		}
		cfg.Stake = defaults.WithStake(mode, value)
	}

	criteria, err := a.Criteria()
	if err != nil {
		return service.BacktestRequest{}, err
	}
	if cmd.Flags().Changed("league") {
		criteria.Leagues = filter.SelectLeagues(leagues...)
	}
	if oddsSide != "" {
		side, err := filter.ParseSide(oddsSide)
		if err != nil {
			return service.BacktestRequest{}, err
		}
		lo, err := parseDecimal("odds-min", oddsMin)
		if err != nil {
			return service.BacktestRequest{}, err
		}
		hi, err := parseDecimal("odds-max", oddsMax)
		if err != nil {
			return service.BacktestRequest{}, err
		}
		odds, err := filter.NewOddsFilter(side, lo, hi)
		if err != nil {
			return service.BacktestRequest{}, err
		}
		criteria.Odds = &odds
	}

	histogramBins := a.Config.Backtest.HistogramBins
	if bins >= 0 {
		histogramBins = bins
	}

	return service.BacktestRequest{
		Config:        cfg,
		Criteria:      criteria,
		ByLeague:      byLeague,
		HistogramBins: histogramBins,
	}, nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Bootstrap(ctx, configFile)
	if err != nil {
		return err
	}
	defer a.Close()

	req, err := buildRequest(a, cmd)
	if err != nil {
		return err
	}

	svc := service.NewAnalysisService(a.Source, a.Logger, a.Config.Backtest.Workers)
	report, err := svc.Backtest(ctx, req)
	if err != nil {
		return err
	}

	switch sortBy {
	case "roi":
		backtest.SortByROI(report.Leagues)
	case "bankroll":
		backtest.SortByFinalBankroll(report.Leagues)
	case "":
	default:
		return fmt.Errorf("invalid --sort %q", sortBy)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		if err := backtest.WriteConsoleReport(out, req.Config, report.Result, report.Metrics); err != nil {
			return err
		}
		if report.OddsFilterMidpoint != nil {
			fmt.Fprintf(out, "Odds filter midpoint: %s\n", report.OddsFilterMidpoint.StringFixed(2))
		}
		if len(report.Leagues) > 0 {
			fmt.Fprintln(out)
			if err := backtest.WriteLeagueTable(out, report.Leagues); err != nil {
				return err
			}
		}
		if len(report.Distribution) > 0 {
			fmt.Fprintln(out)
			if err := backtest.WriteDistributionTable(out, report.Distribution); err != nil {
				return err
			}
		}
	}

	dir := outputDir
	if dir == "" {
		dir = a.Config.Backtest.OutputPath
	}
	if dir != "" {
		if err := backtest.GenerateCSVExport(report.Result, report.Leagues, dir); err != nil {
			return err
		}
		a.Logger.WithField("dir", dir).Info("Exported backtest results")
	}
	return nil
}
