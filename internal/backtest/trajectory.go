package backtest

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"
)

// Trajectory is the bankroll after each settled bet, starting with the initial bankroll
type Trajectory []decimal.Decimal

// HitZeroOrBelow reports whether any point of the trajectory is at or below zero
func (t Trajectory) HitZeroOrBelow() bool {
	for _, value := range t {
		if !value.IsPositive() {
			return true
		}
	}
	return false
}

// Peak returns the highest bankroll reached
func (t Trajectory) Peak() decimal.Decimal {
	if len(t) == 0 {
		return decimal.Zero
	}
	peak := t[0]
	for _, value := range t[1:] {
		if value.GreaterThan(peak) {
			peak = value
		}
	}
	return peak
}

// MaxDrawdown returns the largest peak-to-trough fall as a fraction of the peak.
// Peaks at or below zero are ignored.
func (t Trajectory) MaxDrawdown() decimal.Decimal {
	maxDrawdown := decimal.Zero
	if len(t) == 0 {
		return maxDrawdown
	}
	peak := t[0]
	for _, value := range t {
		if value.GreaterThan(peak) {
			peak = value
		}
		if !peak.IsPositive() {
			continue
		}
		drawdown := peak.Sub(value).Div(peak)
		if drawdown.GreaterThan(maxDrawdown) {
			maxDrawdown = drawdown
		}
	}
	return maxDrawdown
}

// Floats converts the trajectory for charting and metrics
func (t Trajectory) Floats() []float64 {
	values := make([]float64, len(t))
	for i, value := range t {
		values[i] = value.InexactFloat64()
	}
	return values
}

// ToCSV exports the trajectory as bet,bankroll rows. Bet 0 is the initial bankroll.
func (t Trajectory) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("bet,bankroll\n")
	for i, value := range t {
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(",")
		buf.WriteString(value.StringFixed(2))
		buf.WriteString("\n")
	}
	return buf.String()
}
