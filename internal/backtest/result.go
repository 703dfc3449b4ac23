package backtest

import (
	"github.com/shopspring/decimal"
)

// Result is the outcome of one simulated run
type Result struct {
	InitialBankroll decimal.Decimal `json:"initial_bankroll"`
	FinalBankroll   decimal.Decimal `json:"final_bankroll"`
	TotalBets       int             `json:"total_bets"`
	BetsWon         int             `json:"bets_won"`
	BetsLost        int             `json:"bets_lost"`
	ROI             decimal.Decimal `json:"roi"`
	Trajectory      Trajectory      `json:"trajectory"`
}

// Profit returns final minus initial bankroll
func (r Result) Profit() decimal.Decimal {
	return r.FinalBankroll.Sub(r.InitialBankroll)
}

// LeagueSummary is the result of a backtest restricted to one league
type LeagueSummary struct {
	League string `json:"league"`
	Result
	BankrollHitZeroOrBelow bool `json:"bankroll_hit_zero_or_below"`
}
