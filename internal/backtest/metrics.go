package backtest

import (
	"math"

	"github.com/shopspring/decimal"
)

// Metrics summarises a completed run beyond the core result fields
type Metrics struct {
	TotalBets    int             `json:"total_bets"`
	BetsWon      int             `json:"bets_won"`
	BetsLost     int             `json:"bets_lost"`
	WinRate      float64         `json:"win_rate"`
	ROI          decimal.Decimal `json:"roi"`
	Profit       decimal.Decimal `json:"profit"`
	PeakBankroll decimal.Decimal `json:"peak_bankroll"`
	MaxDrawdown  float64         `json:"max_drawdown"`
	Volatility   float64         `json:"volatility"`
	ProfitPerBet decimal.Decimal `json:"profit_per_bet"`
}

// CalculateMetrics derives win rate, peak, drawdown and volatility from a result
func CalculateMetrics(result Result) Metrics {
	m := Metrics{
		TotalBets:    result.TotalBets,
		BetsWon:      result.BetsWon,
		BetsLost:     result.BetsLost,
		WinRate:      calculateWinRate(result.BetsWon, result.TotalBets),
		ROI:          result.ROI,
		Profit:       result.Profit(),
		PeakBankroll: result.Trajectory.Peak(),
		MaxDrawdown:  result.Trajectory.MaxDrawdown().InexactFloat64(),
		Volatility:   calculateVolatility(result.Trajectory.Floats()),
	}
	if result.TotalBets > 0 {
		m.ProfitPerBet = m.Profit.Div(decimal.NewFromInt(int64(result.TotalBets))).Round(2)
	}
	return m
}

func calculateWinRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total)
}

// calculateVolatility is the standard deviation of per-bet bankroll returns.
// Steps from a non-positive bankroll are skipped.
func calculateVolatility(values []float64) float64 {
	returns := make([]float64, 0, len(values))
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev <= 0 {
			continue
		}
		returns = append(returns, (values[i]-prev)/prev)
	}
	if len(returns) == 0 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		diff := r - mean
		variance += diff * diff
	}
	variance /= float64(len(returns))
	return math.Sqrt(variance)
}
