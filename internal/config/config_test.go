package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	expansionConfigPath          = "testdata/expansion_config.yaml"
	expansionConfigMissingPath   = "testdata/expansion_config_missing.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	expectedNoErrorMsg           = "expected no error, got %v"
	expectedNonNilConfig         = "expected non-nil config"
	oddsLabName                  = "odds-lab"
	developmentEnv               = "development"
	invalidEnv                   = "invalid"
	localhostHost                = "localhost"
	postgresPort                 = 5432
	testAppName                  = "test-app"
	testDBPassword               = "TEST_DB_PASSWORD"
	testMissingVar               = "TEST_MISSING_VAR"
	expandedSecretValue          = "expanded_secret_value"
)

func loadValid(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}
	return cfg
}

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != oddsLabName {
		t.Errorf("expected app name '%s', got '%s'", oddsLabName, cfg.App.Name)
	}
	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected environment '%s', got '%s'", developmentEnv, cfg.App.Environment)
	}
	if cfg.Database.Host != localhostHost {
		t.Errorf("expected database host '%s', got '%s'", localhostHost, cfg.Database.Host)
	}
	if cfg.Database.Port != postgresPort {
		t.Errorf("expected database port %d, got %d", postgresPort, cfg.Database.Port)
	}
	if cfg.Backtest.InitialBankroll != 1000 {
		t.Errorf("expected initial bankroll 1000, got %v", cfg.Backtest.InitialBankroll)
	}
	if cfg.Dataset.CacheTTL != 30*time.Minute {
		t.Errorf("expected cache ttl 30m, got %v", cfg.Dataset.CacheTTL)
	}
	if cfg.Tennis.BandMax != 100 {
		t.Errorf("expected tennis band max 100, got %v", cfg.Tennis.BandMax)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("ODDS_LAB_APP_NAME", testAppName)

	cfg := loadValid(t)
	if cfg.App.Name != testAppName {
		t.Errorf("expected app name '%s' from environment, got '%s'", testAppName, cfg.App.Name)
	}
}

// TestLoadWithDefaultsMissingFile tests that defaults cover a missing config file
func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Backtest.Market != "home" {
		t.Errorf("expected default market 'home', got '%s'", cfg.Backtest.Market)
	}
	if cfg.Backtest.StakeMode != StakeModeFixed {
		t.Errorf("expected default stake mode '%s', got '%s'", StakeModeFixed, cfg.Backtest.StakeMode)
	}
	if cfg.Tennis.BandMin != 1.01 || cfg.Tennis.BandMax != 100 {
		t.Errorf("expected default band 1.01-100, got %v-%v", cfg.Tennis.BandMin, cfg.Tennis.BandMax)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default server port 8080, got %d", cfg.Server.Port)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg := loadValid(t)
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestValidateInvalidEnvironment tests validation of invalid environment
func TestValidateInvalidEnvironment(t *testing.T) {
	cfg := loadValid(t)
	cfg.App.Environment = invalidEnv
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
}

// TestValidateInvalidMarket tests validation of unknown market names
func TestValidateInvalidMarket(t *testing.T) {
	cfg := loadValid(t)
	cfg.Backtest.Market = "over2.5"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for invalid market")
	}
	if !strings.Contains(err.Error(), "Market") {
		t.Errorf("expected market validation error, got: %v", err)
	}
}

// TestValidateMarketShorthand tests that 1X2 shorthand is accepted
func TestValidateMarketShorthand(t *testing.T) {
	cfg := loadValid(t)
	for _, market := range []string{"1", "X", "2", "draw", "away"} {
		cfg.Backtest.Market = market
		if err := Validate(cfg); err != nil {
			t.Errorf("expected market %q to validate, got %v", market, err)
		}
	}
}

// TestValidateStakeInvariants tests the stake cross-field checks
func TestValidateStakeInvariants(t *testing.T) {
	cfg := loadValid(t)
	cfg.Backtest.StakeAmount = 0
	if err := Validate(cfg); err == nil {
		t.Error("expected error for zero fixed stake")
	}

	cfg = loadValid(t)
	cfg.Backtest.StakeMode = StakeModePercent
	cfg.Backtest.StakePercent = 0
	if err := Validate(cfg); err == nil {
		t.Error("expected error for zero percent stake")
	}

	cfg.Backtest.StakePercent = 100
	if err := Validate(cfg); err != nil {
		t.Errorf("expected 100 percent stake to validate, got %v", err)
	}

	cfg.Backtest.StakeMode = "martingale"
	if err := Validate(cfg); err == nil {
		t.Error("expected error for unknown stake mode")
	}
}

// TestValidateOddsFilterBounds tests the odds filter cross-field checks
func TestValidateOddsFilterBounds(t *testing.T) {
	cfg := loadValid(t)
	cfg.Filters.Odds.Min = 3.0
	cfg.Filters.Odds.Max = 2.0
	if err := Validate(cfg); err == nil {
		t.Error("expected error when min exceeds max")
	}

	cfg = loadValid(t)
	cfg.Filters.Odds.Side = "draw"
	if err := Validate(cfg); err == nil {
		t.Error("expected error for draw side")
	}

	cfg = loadValid(t)
	cfg.Filters.Odds.Enabled = false
	cfg.Filters.Odds.Min = 5
	cfg.Filters.Odds.Max = 1
	if err := Validate(cfg); err != nil {
		t.Errorf("expected disabled filter bounds to be ignored, got %v", err)
	}
}

// TestValidateTennisBand tests the classifier band bounds
func TestValidateTennisBand(t *testing.T) {
	cfg := loadValid(t)
	cfg.Tennis.BandMin = 3.0
	cfg.Tennis.BandMax = 1.5
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error when band_min exceeds band_max")
	}
}

// TestValidateDatasetSource tests source-specific requirements
func TestValidateDatasetSource(t *testing.T) {
	cfg := loadValid(t)
	cfg.Dataset.Source = "ftp"
	if err := Validate(cfg); err == nil {
		t.Error("expected error for unknown source type")
	}

	cfg = loadValid(t)
	cfg.Dataset.Source = SourceSQLite
	if err := Validate(cfg); err == nil {
		t.Error("expected error for sqlite source without sqlite_path")
	}
	cfg.Dataset.SQLitePath = filepath.Join(t.TempDir(), "matches.db")
	if err := Validate(cfg); err != nil {
		t.Errorf("expected sqlite source to validate, got %v", err)
	}

	cfg = loadValid(t)
	cfg.Dataset.Source = SourcePostgres
	cfg.App.Environment = "production"
	if err := Validate(cfg); err == nil {
		t.Error("expected error for production postgres without ssl")
	}
}

// TestEnvironmentChecks tests the environment helpers
func TestEnvironmentChecks(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: developmentEnv}}
	if !cfg.IsDevelopment() || cfg.IsProduction() || cfg.IsStaging() {
		t.Error("expected development only")
	}

	cfg.App.Environment = "staging"
	if !cfg.IsStaging() || cfg.IsDevelopment() {
		t.Error("expected staging only")
	}

	cfg.App.Environment = "production"
	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}
}

// TestUsesDatabase tests source classification
func TestUsesDatabase(t *testing.T) {
	cfg := &Config{Dataset: DatasetConfig{Source: SourceFile}}
	if cfg.UsesDatabase() {
		t.Error("file source should not use a database")
	}
	cfg.Dataset.Source = SourceSQLite
	if !cfg.UsesDatabase() {
		t.Error("sqlite source should use a database")
	}
}

// TestLoadConfigEnvironmentVariableExpansion tests environment variable expansion in config file
func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	t.Setenv(testDBPassword, expandedSecretValue)

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config with expansion, got %v", err)
	}
	if cfg.Database.Password != expandedSecretValue {
		t.Errorf("expected password '%s' from environment expansion, got '%s'", expandedSecretValue, cfg.Database.Password)
	}
}

// TestLoadConfigMissingEnvironmentVariable tests handling of missing environment variables
func TestLoadConfigMissingEnvironmentVariable(t *testing.T) {
	os.Unsetenv(testMissingVar)

	cfg, err := Load(expansionConfigMissingPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}
	// os.ExpandEnv replaces unset variables with the empty string
	if cfg.Database.Password != "" {
		t.Errorf("expected empty password, got %q", cfg.Database.Password)
	}
}

// TestLoadEnvFile tests .env loading into the process environment
func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ODDS_LAB_TEST_ENV_FILE=loaded\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("ODDS_LAB_TEST_ENV_FILE") })

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if got := os.Getenv("ODDS_LAB_TEST_ENV_FILE"); got != "loaded" {
		t.Errorf("expected env var from file, got %q", got)
	}

	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("expected missing env file to be ignored, got %v", err)
	}
}
