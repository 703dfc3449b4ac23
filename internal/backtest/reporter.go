package backtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// WriteConsoleReport renders the overall result of a run
func WriteConsoleReport(w io.Writer, cfg BacktestConfig, result Result, m Metrics) error {
	fmt.Fprintf(w, "Backtest Report\n")
	fmt.Fprintf(w, "================\n")
	fmt.Fprintf(w, "Market: %s  Stake: %s\n\n", cfg.Market.Label(), cfg.Stake)

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"Initial bankroll", result.InitialBankroll.StringFixed(2)},
		{"Final bankroll", result.FinalBankroll.StringFixed(2)},
		{"Profit", m.Profit.StringFixed(2)},
		{"ROI", result.ROI.StringFixed(2) + "%"},
		{"Bets", strconv.Itoa(result.TotalBets)},
		{"Won", strconv.Itoa(result.BetsWon)},
		{"Lost", strconv.Itoa(result.BetsLost)},
		{"Win rate", fmt.Sprintf("%.2f%%", m.WinRate*100)},
		{"Peak bankroll", m.PeakBankroll.StringFixed(2)},
		{"Max drawdown", fmt.Sprintf("%.2f%%", m.MaxDrawdown*100)},
		{"Bankroll hit zero", yesNo(result.Trajectory.HitZeroOrBelow())},
	}
	for _, row := range rows {
		if err := table.Append(row[0], row[1]); err != nil {
			return err
		}
	}
	return table.Render()
}

// WriteLeagueTable renders one row per league in the given order
func WriteLeagueTable(w io.Writer, summaries []LeagueSummary) error {
	table := tablewriter.NewWriter(w)
	table.Header("League", "Final bankroll", "Bets", "Won", "Lost", "ROI %", "Hit zero")
	for _, s := range summaries {
		err := table.Append(
			s.League,
			s.FinalBankroll.StringFixed(2),
			strconv.Itoa(s.TotalBets),
			strconv.Itoa(s.BetsWon),
			strconv.Itoa(s.BetsLost),
			s.ROI.StringFixed(2),
			yesNo(s.BankrollHitZeroOrBelow),
		)
		if err != nil {
			return err
		}
	}
	return table.Render()
}

// WriteDistributionTable renders the odds histogram
func WriteDistributionTable(w io.Writer, buckets []Bucket) error {
	table := tablewriter.NewWriter(w)
	table.Header("Odds from", "Odds to", "Home", "Draw", "Away")
	for _, b := range buckets {
		err := table.Append(
			b.Lower.StringFixed(2),
			b.Upper.StringFixed(2),
			strconv.Itoa(b.Home),
			strconv.Itoa(b.Draw),
			strconv.Itoa(b.Away),
		)
		if err != nil {
			return err
		}
	}
	return table.Render()
}

// WriteLeagueCSV writes league summaries as CSV
func WriteLeagueCSV(w io.Writer, summaries []LeagueSummary) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"league", "final_bankroll", "total_bets", "bets_won", "bets_lost", "roi", "bankroll_hit_zero_or_below"}); err != nil {
		return err
	}
	for _, s := range summaries {
		record := []string{
			s.League,
			s.FinalBankroll.StringFixed(2),
			strconv.Itoa(s.TotalBets),
			strconv.Itoa(s.BetsWon),
			strconv.Itoa(s.BetsLost),
			s.ROI.StringFixed(2),
			strconv.FormatBool(s.BankrollHitZeroOrBelow),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// GenerateCSVExport writes the league summaries and the trajectory of the
// overall run into outputDir
func GenerateCSVExport(result Result, summaries []LeagueSummary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(outputDir, "trajectory.csv"), []byte(result.Trajectory.ToCSV()), 0o644); err != nil {
		return fmt.Errorf("failed to write trajectory: %w", err)
	}

	file, err := os.Create(filepath.Join(outputDir, "leagues.csv"))
	if err != nil {
		return fmt.Errorf("failed to create league export: %w", err)
	}
	defer file.Close()

	if err := WriteLeagueCSV(file, summaries); err != nil {
		return fmt.Errorf("failed to write league export: %w", err)
	}
	return nil
}
