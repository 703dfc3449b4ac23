// Package main provides the dataset ingestion CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yourusername/odds-lab/internal/app"
	"github.com/yourusername/odds-lab/internal/config"
	"github.com/yourusername/odds-lab/internal/datasource"
	"github.com/yourusername/odds-lab/internal/logger"
	"github.com/yourusername/odds-lab/internal/models"
	"github.com/yourusername/odds-lab/internal/repository"
	"github.com/yourusername/odds-lab/internal/service"
)

var (
	configFile string
	sport      string
	target     string
	from       string
	replace    bool
)

var rootCmd = &cobra.Command{
	Use:               "data-ingestion",
	Short:             "Load historical match tables into a SQL store",
	PersistentPreRunE: checkTarget,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import football and/or tennis rows from a file or http source",
	RunE:  runImport,
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of stored rows per sport",
	RunE:  runCount,
}

var truncateCmd = &cobra.Command{
	Use:   "truncate",
	Short: "Delete every stored row of a sport",
	RunE:  runTruncate,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&target, "target", "t", config.SourceSQLite, "Store to write to: postgres or sqlite")
	rootCmd.PersistentFlags().StringVarP(&sport, "sport", "s", "", "football or tennis (default: both)")

	importCmd.Flags().StringVar(&from, "from", "", "Read from file or http (default: dataset.source)")
	importCmd.Flags().BoolVar(&replace, "replace", false, "Truncate existing rows before importing")

	rootCmd.AddCommand(importCmd, countCmd, truncateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func checkTarget(cmd *cobra.Command, args []string) error {
	if target != config.SourcePostgres && target != config.SourceSQLite {
		return fmt.Errorf("invalid --target %q: must be postgres or sqlite", target)
	}
	return nil
}

func sports() ([]models.Sport, error) {
	if sport == "" {
		return []models.Sport{models.SportFootball, models.SportTennis}, nil
	}
	s, err := models.ParseSport(sport)
	if err != nil {
		return nil, err
	}
	return []models.Sport{s}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (repository.MatchRepository, error) {
	store, err := repository.New(ctx, target, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", target, err)
	}
	return store, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig(ctx, configFile)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	datasetCfg := cfg.Dataset
	if from != "" {
		datasetCfg.Source = from
	}
	if datasetCfg.Source != config.SourceFile && datasetCfg.Source != config.SourceHTTP {
		return fmt.Errorf("cannot import from %q: use --from file or --from http", datasetCfg.Source)
	}
	source, err := datasource.NewFactory(&datasetCfg, log).Create(nil)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ingestion := service.NewIngestionService(source, store, target, log)
	var results []*service.ImportResult
	if sport == "" {
		results, err = ingestion.ImportAll(ctx, replace)
	} else {
		var s models.Sport
		if s, err = models.ParseSport(sport); err != nil {
			return err
		}
		var result *service.ImportResult
		if result, err = ingestion.Import(ctx, s, replace); err == nil {
			results = append(results, result)
		}
	}
	if err != nil {
		return err
	}
	for _, result := range results {
		fmt.Fprintln(cmd.OutOrStdout(), result.String())
	}
	return nil
}

func runCount(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := app.LoadConfig(ctx, configFile)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	selected, err := sports()
	if err != nil {
		return err
	}
	for _, s := range selected {
		n, err := store.Count(ctx, s)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", s, n)
	}
	return nil
}

func runTruncate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if sport == "" {
		return fmt.Errorf("--sport is required for truncate")
	}

	cfg, err := app.LoadConfig(ctx, configFile)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	s, err := models.ParseSport(sport)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Truncate(ctx, s)
	if err != nil {
		return err
	}
	logger.NewAuditLogger(log).LogTruncate(string(s), target, n)
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d %s rows\n", n, s)
	return nil
}
