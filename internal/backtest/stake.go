package backtest

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/odds-lab/internal/models"
)

var hundred = decimal.NewFromInt(100)

// StakeMode selects how the wager size is derived for each bet
type StakeMode string

const (
	StakeModeFixed   StakeMode = "fixed"
	StakeModePercent StakeMode = "percent"
)

// ParseStakeMode converts a config value into a StakeMode
func ParseStakeMode(value string) (StakeMode, error) {
	switch StakeMode(value) {
	case StakeModeFixed, StakeModePercent:
		return StakeMode(value), nil
	default:
		return "", fmt.Errorf("%w: %q", models.ErrInvalidStakeMode, value)
	}
}

// StakePolicy sizes each wager either as a fixed amount or as a share of the
// current bankroll. Value is the amount for fixed stakes and the percentage for
// percent stakes.
type StakePolicy struct {
	Mode  StakeMode       `json:"mode"`
	Value decimal.Decimal `json:"value"`
}

// NewFixedStake returns a policy that always wagers amount
func NewFixedStake(amount decimal.Decimal) StakePolicy {
	return StakePolicy{Mode: StakeModeFixed, Value: amount}
}

// NewPercentStake returns a policy that wagers percent of the bankroll before each bet
func NewPercentStake(percent decimal.Decimal) StakePolicy {
	return StakePolicy{Mode: StakeModePercent, Value: percent}
}

// NextStake returns the wager for the next bet given the current bankroll.
// A negative bankroll under a percent policy yields a negative stake.
func (p StakePolicy) NextStake(bankroll decimal.Decimal) decimal.Decimal {
	switch p.Mode {
	case StakeModeFixed:
		return p.Value
	case StakeModePercent:
		return bankroll.Mul(p.Value).Div(hundred)
	default:
		return decimal.Zero
	}
}

// Validate checks amount > 0 for fixed stakes and percent in (0, 100]
func (p StakePolicy) Validate() error {
	switch p.Mode {
	case StakeModeFixed:
		if !p.Value.IsPositive() {
			return fmt.Errorf("fixed stake must be positive, got %s", p.Value)
		}
	case StakeModePercent:
		if !p.Value.IsPositive() || p.Value.GreaterThan(hundred) {
			return fmt.Errorf("stake percent must be in (0, 100], got %s", p.Value)
		}
	default:
		return fmt.Errorf("%w: %q", models.ErrInvalidStakeMode, p.Mode)
	}
	return nil
}

// String renders the policy for logs and reports
func (p StakePolicy) String() string {
	if p.Mode == StakeModePercent {
		return p.Value.String() + "% of bankroll"
	}
	return "fixed " + p.Value.StringFixed(2)
}
