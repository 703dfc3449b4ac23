package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("market", validateMarket)
	_ = v.RegisterValidation("stakemode", validateStakeMode)
	_ = v.RegisterValidation("sourcetype", validateSourceType)
	_ = v.RegisterValidation("betside", validateBetSide)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateMarket accepts the config names and the 1X2 shorthand
func validateMarket(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "home", "draw", "away", "1", "X", "x", "2":
		return true
	default:
		return false
	}
}

func validateStakeMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case StakeModeFixed, StakeModePercent:
		return true
	default:
		return false
	}
}

func validateSourceType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case SourceFile, SourceHTTP, SourcePostgres, SourceSQLite:
		return true
	default:
		return false
	}
}

func validateBetSide(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "home", "away":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	bt := cfg.Backtest
	switch bt.StakeMode {
	case StakeModeFixed:
		if bt.StakeAmount <= 0 {
			return fmt.Errorf("backtest stake_amount must be positive for fixed stakes")
		}
	case StakeModePercent:
		if bt.StakePercent <= 0 || bt.StakePercent > 100 {
			return fmt.Errorf("backtest stake_percent must be in (0, 100]")
		}
	}

	odds := cfg.Filters.Odds
	if odds.Enabled {
		if odds.Side == "" {
			return fmt.Errorf("filters.odds.side is required when the odds filter is enabled")
		}
		if odds.Min < 1 {
			return fmt.Errorf("filters.odds.min must be at least 1.0")
		}
		if odds.Min > odds.Max {
			return fmt.Errorf("filters.odds.min cannot exceed filters.odds.max")
		}
	}

	if cfg.Tennis.BandMin > cfg.Tennis.BandMax {
		return fmt.Errorf("tennis band_min cannot exceed band_max")
	}

	switch cfg.Dataset.Source {
	case SourceFile:
		if cfg.Dataset.FootballPath == "" && cfg.Dataset.TennisPath == "" {
			return fmt.Errorf("file dataset requires football_path or tennis_path")
		}
	case SourceHTTP:
		if cfg.Dataset.FootballURL == "" && cfg.Dataset.TennisURL == "" {
			return fmt.Errorf("http dataset requires football_url or tennis_url")
		}
	case SourcePostgres:
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("postgres dataset requires database host, name and user")
		}
		if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
		}
	case SourceSQLite:
		if cfg.Dataset.SQLitePath == "" {
			return fmt.Errorf("sqlite dataset requires sqlite_path")
		}
	}

	if cfg.Database.MinConnections > cfg.Database.MaxConnections && cfg.Database.MaxConnections > 0 {
		return fmt.Errorf("min_connections cannot exceed max_connections")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "market":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: home, draw, away, got '%v'\n", field, value)
		case "stakemode":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: fixed, percent, got '%v'\n", field, value)
		case "sourcetype":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: file, http, postgres, sqlite, got '%v'\n", field, value)
		case "betside":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: home, away, got '%v'\n", field, value)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
