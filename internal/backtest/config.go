package backtest

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/odds-lab/internal/config"
	"github.com/yourusername/odds-lab/internal/models"
)

// DefaultHistogramBins matches the odds distribution chart of the analysis pages
const DefaultHistogramBins = 30

// BacktestConfig holds the immutable parameters of one simulated run
type BacktestConfig struct {
	Market          models.Market   `json:"market"`
	InitialBankroll decimal.Decimal `json:"initial_bankroll"`
	Stake           StakePolicy     `json:"stake"`
}

// FromConfig converts app config to backtest config
func FromConfig(cfg *config.BacktestConfig) (BacktestConfig, error) {
	if cfg == nil {
		return BacktestConfig{}, fmt.Errorf("backtest config is required")
	}
	market, err := models.ParseMarket(cfg.Market)
	if err != nil {
		return BacktestConfig{}, fmt.Errorf("invalid market %q: %w", cfg.Market, err)
	}
	mode, err := ParseStakeMode(cfg.StakeMode)
	if err != nil {
		return BacktestConfig{}, err
	}

	stake := NewFixedStake(decimal.NewFromFloat(cfg.StakeAmount))
	if mode == StakeModePercent {
		stake = NewPercentStake(decimal.NewFromFloat(cfg.StakePercent))
	}

	bt := BacktestConfig{
		Market:          market,
		InitialBankroll: decimal.NewFromFloat(cfg.InitialBankroll),
		Stake:           stake,
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters
func (b BacktestConfig) Validate() error {
	if !b.Market.IsValid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidMarket, b.Market)
	}
	if !b.InitialBankroll.IsPositive() {
		return fmt.Errorf("initial bankroll must be positive")
	}
	return b.Stake.Validate()
}

// Defaults is the configured run together with the stake value of both modes,
// so a caller that only switches mode gets the value configured for that mode.
type Defaults struct {
	Config       BacktestConfig
	StakeAmount  decimal.Decimal
	StakePercent decimal.Decimal
}

// DefaultsFromConfig converts app config to run defaults
func DefaultsFromConfig(cfg *config.BacktestConfig) (Defaults, error) {
	bt, err := FromConfig(cfg)
	if err != nil {
		return Defaults{}, err
	}
	return Defaults{
		Config:       bt,
		StakeAmount:  decimal.NewFromFloat(cfg.StakeAmount),
		StakePercent: decimal.NewFromFloat(cfg.StakePercent),
	}, nil
}

// StakeFor returns the configured policy for mode
func (d Defaults) StakeFor(mode StakeMode) StakePolicy {
	if mode == StakeModePercent {
		return NewPercentStake(d.StakePercent)
	}
	return NewFixedStake(d.StakeAmount)
}

// WithStake applies optional stake overrides. An empty mode keeps the
// configured mode; a nil value takes the configured value of the chosen mode.
func (d Defaults) WithStake(mode StakeMode, value *decimal.Decimal) StakePolicy {
	policy := d.Config.Stake
	if mode != "" {
		policy = d.StakeFor(mode)
	}
	if value != nil {
		policy.Value = *value
	}
	return policy
}
