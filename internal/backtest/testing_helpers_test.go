package backtest

import (
	"github.com/shopspring/decimal"
	"github.com/yourusername/odds-lab/internal/models"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func match(league string, result models.FullTimeResult, home, draw, away string) models.FootballMatch {
	return models.FootballMatch{
		League:   league,
		Result:   result,
		OddsHome: dec(home),
		OddsDraw: dec(draw),
		OddsAway: dec(away),
	}
}

func fixedConfig(market models.Market, bankroll, stake string) BacktestConfig {
	return BacktestConfig{
		Market:          market,
		InitialBankroll: dec(bankroll),
		Stake:           NewFixedStake(dec(stake)),
	}
}

func assertDecimals(expected []string, actual Trajectory) bool {
	if len(expected) != len(actual) {
		return false
	}
	for i := range expected {
		if !dec(expected[i]).Equal(actual[i]) {
			return false
		}
	}
	return true
}
