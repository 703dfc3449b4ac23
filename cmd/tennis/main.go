// Package main provides the tennis odds-band classifier CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/yourusername/odds-lab/internal/app"
	"github.com/yourusername/odds-lab/internal/classifier"
	"github.com/yourusername/odds-lab/internal/service"
)

var (
	configFile string
	bandMin    string
	bandMax    string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "tennis",
	Short: "Classify tennis prices by odds band",
	Long:  `Counts winners and losers priced inside an odds band and reports their observed frequencies and implied odds.`,
	RunE:  run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	flags.StringVar(&bandMin, "min", "", "Lower bound of the odds band (default from config)")
	flags.StringVar(&bandMax, "max", "", "Upper bound of the odds band (default from config)")
	flags.BoolVar(&jsonOutput, "json", false, "Print the classification as JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := app.Bootstrap(ctx, configFile)
	if err != nil {
		return err
	}
	defer a.Close()

	band, err := a.Band()
	if err != nil {
		return err
	}
	if bandMin != "" || bandMax != "" {
		lo, hi := band.Min.String(), band.Max.String()
		if bandMin != "" {
			lo = bandMin
		}
		if bandMax != "" {
			hi = bandMax
		}
		if band, err = service.ParseBand(lo, hi); err != nil {
			return err
		}
	}

	svc := service.NewAnalysisService(a.Source, a.Logger, 1)
	c, err := svc.Classify(ctx, band)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
	return writeClassification(cmd, c)
}

func writeClassification(cmd *cobra.Command, c classifier.Classification) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Odds band %s - %s\n\n", c.Band.Min, c.Band.Max)

	table := tablewriter.NewWriter(out)
	table.Header("Metric", "Value")
	rows := [][2]string{
		{"Total matches", fmt.Sprint(c.TotalMatches)},
		{"Winning matches", fmt.Sprint(c.WinningMatches)},
		{"Losing matches", fmt.Sprint(c.LosingMatches)},
		{"Win %", c.WinPct.StringFixed(2)},
		{"Loss %", c.LosePct.StringFixed(2)},
		{"Implied odds (win)", c.ImpliedOddsWin.StringFixed(2)},
		{"Implied odds (loss)", c.ImpliedOddsLoss.StringFixed(2)},
	}
	for _, row := range rows {
		if err := table.Append(row[0], row[1]); err != nil {
			return err
		}
	}
	return table.Render()
}
