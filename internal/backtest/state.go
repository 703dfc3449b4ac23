package backtest

import (
	"github.com/shopspring/decimal"
	"github.com/yourusername/odds-lab/internal/models"
)

// BacktestState is the accumulator of a single run. Each run owns its state.
type BacktestState struct {
	CurrentBankroll decimal.Decimal
	BetsWon         int
	BetsLost        int
	Trajectory      Trajectory
}

// NewBacktestState initializes backtest state with room for expectedBets updates
func NewBacktestState(initialBankroll decimal.Decimal, expectedBets int) *BacktestState {
	trajectory := make(Trajectory, 0, expectedBets+1)
	trajectory = append(trajectory, initialBankroll)
	return &BacktestState{
		CurrentBankroll: initialBankroll,
		Trajectory:      trajectory,
	}
}

// Settle applies one bet on market to the bankroll and records the new balance
func (s *BacktestState) Settle(match *models.FootballMatch, market models.Market, stake decimal.Decimal) {
	if market.Settles(match) {
		odds := market.Odds(match)
		s.CurrentBankroll = s.CurrentBankroll.Add(stake.Mul(odds.Sub(decimal.NewFromInt(1))))
		s.BetsWon++
	} else {
		s.CurrentBankroll = s.CurrentBankroll.Sub(stake)
		s.BetsLost++
	}
	s.Trajectory = append(s.Trajectory, s.CurrentBankroll)
}

// TotalBets returns the number of settled bets
func (s *BacktestState) TotalBets() int {
	return s.BetsWon + s.BetsLost
}
