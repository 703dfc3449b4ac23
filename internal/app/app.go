// Package app wires configuration, logging and the dataset stack shared by the commands.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-lab/internal/backtest"
	"github.com/yourusername/odds-lab/internal/classifier"
	"github.com/yourusername/odds-lab/internal/config"
	"github.com/yourusername/odds-lab/internal/datasource"
	"github.com/yourusername/odds-lab/internal/filter"
	"github.com/yourusername/odds-lab/internal/logger"
	"github.com/yourusername/odds-lab/internal/metrics"
	"github.com/yourusername/odds-lab/internal/repository"
)

// App holds the dependencies built from one configuration
type App struct {
	Config *config.Config
	Logger *logrus.Logger
	Store  repository.MatchRepository
	Source *datasource.CachedSource
}

// LoadConfig reads .env, the config file and environment overrides, overlays
// AWS secrets when AWS_SECRETS_ENABLED=true, and validates the result
func LoadConfig(ctx context.Context, path string) (*config.Config, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.ReloadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to reload config: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// New builds the logger, the optional match store and the cached dataset source
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	a := &App{Config: cfg, Logger: log}

	var store datasource.MatchReader
	if cfg.UsesDatabase() {
		repo, err := repository.New(ctx, cfg.Dataset.Source, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open match store: %w", err)
		}
		a.Store = repo
		store = repo
	}

	source, err := datasource.NewFactory(&cfg.Dataset, log).CreateCached(store)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Source = source
	return a, nil
}

// Bootstrap is LoadConfig followed by New
func Bootstrap(ctx context.Context, path string) (*App, error) {
	cfg, err := LoadConfig(ctx, path)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg)
}

// Close releases the match store, if any
func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.WithError(err).Warn("Failed to close match store")
		}
	}
}

// BacktestDefaults converts the configured backtest defaults
func (a *App) BacktestDefaults() (backtest.Defaults, error) {
	return backtest.DefaultsFromConfig(&a.Config.Backtest)
}

// Criteria converts the configured default filters
func (a *App) Criteria() (filter.Criteria, error) {
	criteria := filter.Criteria{Leagues: filter.SelectLeagues(a.Config.Filters.Leagues...)}

	odds := a.Config.Filters.Odds
	if !odds.Enabled {
		return criteria, nil
	}
	side, err := filter.ParseSide(odds.Side)
	if err != nil {
		return filter.Criteria{}, err
	}
	f, err := filter.NewOddsFilter(side, decimal.NewFromFloat(odds.Min), decimal.NewFromFloat(odds.Max))
	if err != nil {
		return filter.Criteria{}, err
	}
	criteria.Odds = &f
	return criteria, nil
}

// Band converts the configured tennis band
func (a *App) Band() (classifier.Band, error) {
	return classifier.NewBand(
		decimal.NewFromFloat(a.Config.Tennis.BandMin),
		decimal.NewFromFloat(a.Config.Tennis.BandMax),
	)
}
