// Package main provides the odds-lab HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yourusername/odds-lab/internal/api"
	"github.com/yourusername/odds-lab/internal/app"
	"github.com/yourusername/odds-lab/internal/health"
	"github.com/yourusername/odds-lab/internal/scheduler"
	"github.com/yourusername/odds-lab/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	port       int
)

var rootCmd = &cobra.Command{
	Use:     "server",
	Short:   "Serve the backtesting and classification API",
	Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
	RunE:    run,
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides server.port)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Bootstrap(ctx, configFile)
	if err != nil {
		return err
	}
	defer a.Close()

	defaults, err := a.BacktestDefaults()
	if err != nil {
		return err
	}

	svc := service.NewAnalysisService(a.Source, a.Logger, a.Config.Backtest.Workers)
	handler := api.NewHandler(svc, defaults, a.Logger)

	checks := map[string]health.Pinger{"dataset": a.Source}
	if pinger, ok := a.Store.(health.Pinger); ok {
		checks["database"] = pinger
	}

	listenPort := a.Config.Server.Port
	if port > 0 {
		listenPort = port
	}

	srvCfg := health.Config{
		ServiceName:     a.Config.App.Name,
		Version:         Version,
		Port:            listenPort,
		Logger:          a.Logger,
		Checks:          checks,
		Routes:          []health.Registrar{handler},
		ReadTimeout:     a.Config.Server.ReadTimeout,
		WriteTimeout:    a.Config.Server.WriteTimeout,
		ShutdownTimeout: a.Config.Server.ShutdownTimeout,
	}
	if a.Config.Metrics.Enabled {
		srvCfg.MetricsPath = a.Config.Metrics.Path
	}
	srv := health.NewServer(srvCfg)

	if expr := a.Config.Dataset.RefreshSchedule; expr != "" {
		sched := scheduler.NewScheduler(a.Logger)
		if _, err := sched.ScheduleRefresh(expr, "dataset-refresh", a.Source); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	}

	// Warm the cache so the first requests do not pay for the load.
	if err := a.Source.Refresh(ctx); err != nil {
		a.Logger.WithError(err).Warn("Initial dataset load failed, serving anyway")
	}

	srv.SetReady(true)
	a.Logger.WithFields(logrus.Fields{
		"port":   listenPort,
		"source": a.Config.Dataset.Source,
	}).Info("Starting odds-lab server")

	return srv.Run(ctx)
}
