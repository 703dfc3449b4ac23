// Package config provides configuration management for the odds-lab tools.
package config

import "time"

// Dataset source types
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Stake modes
const (
	StakeModeFixed   = "fixed"
	StakeModePercent = "percent"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Dataset  DatasetConfig  `mapstructure:"dataset" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Backtest BacktestConfig `mapstructure:"backtest" validate:"required"`
	Filters  FiltersConfig  `mapstructure:"filters"`
	Tennis   TennisConfig   `mapstructure:"tennis" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Server   ServerConfig   `mapstructure:"server"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	LogFormat   string `mapstructure:"log_format" validate:"omitempty,oneof=text json"`
}

// DatasetConfig describes where historical match tables are read from
type DatasetConfig struct {
	Source          string        `mapstructure:"source" validate:"required,sourcetype"`
	FootballPath    string        `mapstructure:"football_path"`
	TennisPath      string        `mapstructure:"tennis_path"`
	FootballURL     string        `mapstructure:"football_url" validate:"omitempty,url"`
	TennisURL       string        `mapstructure:"tennis_url" validate:"omitempty,url"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	RefreshSchedule string        `mapstructure:"refresh_schedule"`
	RequestsPerSec  float64       `mapstructure:"requests_per_second" validate:"gte=0"`
	MaxRetries      int           `mapstructure:"max_retries" validate:"gte=0"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
	MinConnections int    `mapstructure:"min_connections" validate:"gte=0"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	Market          string  `mapstructure:"market" validate:"required,market"`
	InitialBankroll float64 `mapstructure:"initial_bankroll" validate:"required,gt=0"`
	StakeMode       string  `mapstructure:"stake_mode" validate:"required,stakemode"`
	StakeAmount     float64 `mapstructure:"stake_amount" validate:"gte=0"`
	StakePercent    float64 `mapstructure:"stake_percent" validate:"gte=0,lte=100"`
	Workers         int     `mapstructure:"workers" validate:"gte=0"`
	HistogramBins   int     `mapstructure:"histogram_bins" validate:"gte=0"`
	OutputPath      string  `mapstructure:"output_path"`
}

// FiltersConfig holds the default match filters applied before a football backtest
type FiltersConfig struct {
	Leagues []string         `mapstructure:"leagues"`
	Odds    OddsFilterConfig `mapstructure:"odds"`
}

// OddsFilterConfig restricts matches to an odds range on one side
type OddsFilterConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Side    string  `mapstructure:"side" validate:"omitempty,betside"`
	Min     float64 `mapstructure:"min" validate:"gte=0"`
	Max     float64 `mapstructure:"max" validate:"gte=0"`
}

// TennisConfig holds the classifier odds band
type TennisConfig struct {
	BandMin float64 `mapstructure:"band_min" validate:"required,gt=0"`
	BandMax float64 `mapstructure:"band_max" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ServerConfig represents the HTTP API listener
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// UsesDatabase reports whether the dataset is read from a SQL store
func (c *Config) UsesDatabase() bool {
	return c.Dataset.Source == SourcePostgres || c.Dataset.Source == SourceSQLite
}
