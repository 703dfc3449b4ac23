package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MinOdds is the lowest decimal price a bookmaker can quote
var MinOdds = decimal.NewFromInt(1)

// FullTimeResult is the full-time outcome of a football match
type FullTimeResult string

const (
	ResultHomeWin FullTimeResult = "H"
	ResultDraw    FullTimeResult = "D"
	ResultAwayWin FullTimeResult = "A"
)

// ParseFullTimeResult converts a FTR column value into a FullTimeResult
func ParseFullTimeResult(code string) (FullTimeResult, error) {
	switch FullTimeResult(code) {
	case ResultHomeWin, ResultDraw, ResultAwayWin:
		return FullTimeResult(code), nil
	default:
		return "", ErrInvalidResult
	}
}

// FootballMatch represents one historical football fixture with closing 1X2 odds
type FootballMatch struct {
	League   string          `db:"league" json:"league" validate:"required"`
	Date     time.Time       `db:"match_date" json:"date"`
	HomeTeam string          `db:"home_team" json:"home_team"`
	AwayTeam string          `db:"away_team" json:"away_team"`
	Result   FullTimeResult  `db:"result" json:"result" validate:"required,oneof=H D A"`
	OddsHome decimal.Decimal `db:"odds_home" json:"odds_home"`
	OddsDraw decimal.Decimal `db:"odds_draw" json:"odds_draw"`
	OddsAway decimal.Decimal `db:"odds_away" json:"odds_away"`
}

// Validate checks the invariants the backtest relies on
func (m *FootballMatch) Validate() error {
	if m.League == "" {
		return ErrEmptyLeague
	}
	if _, err := ParseFullTimeResult(string(m.Result)); err != nil {
		return err
	}
	for _, odds := range []decimal.Decimal{m.OddsHome, m.OddsDraw, m.OddsAway} {
		if odds.LessThan(MinOdds) {
			return ErrInvalidOdds
		}
	}
	return nil
}

// TennisMatch represents one historical tennis match with winner and loser prices
type TennisMatch struct {
	Tournament string          `db:"tournament" json:"tournament"`
	Date       time.Time       `db:"match_date" json:"date"`
	Winner     string          `db:"winner" json:"winner"`
	Loser      string          `db:"loser" json:"loser"`
	OddsWinner decimal.Decimal `db:"odds_winner" json:"odds_winner"`
	OddsLoser  decimal.Decimal `db:"odds_loser" json:"odds_loser"`
}

// Validate checks that both prices are valid decimal odds
func (m *TennisMatch) Validate() error {
	if m.OddsWinner.LessThan(MinOdds) || m.OddsLoser.LessThan(MinOdds) {
		return ErrInvalidOdds
	}
	return nil
}
