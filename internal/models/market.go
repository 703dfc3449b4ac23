package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Market is the 1X2 outcome a simulated bettor backs for a whole run
type Market string

const (
	MarketHome Market = "home"
	MarketDraw Market = "draw"
	MarketAway Market = "away"
)

// ParseMarket accepts the config names (home/draw/away) and the 1X2 shorthand
func ParseMarket(value string) (Market, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "home", "1":
		return MarketHome, nil
	case "draw", "x":
		return MarketDraw, nil
	case "away", "2":
		return MarketAway, nil
	default:
		return "", ErrInvalidMarket
	}
}

// IsValid reports whether m is one of the three 1X2 markets
func (m Market) IsValid() bool {
	switch m {
	case MarketHome, MarketDraw, MarketAway:
		return true
	default:
		return false
	}
}

// Label returns the 1X2 shorthand
func (m Market) Label() string {
	switch m {
	case MarketHome:
		return "1"
	case MarketDraw:
		return "X"
	case MarketAway:
		return "2"
	default:
		return "?"
	}
}

// WinningResult returns the full-time result that settles a bet on m as won
func (m Market) WinningResult() FullTimeResult {
	switch m {
	case MarketHome:
		return ResultHomeWin
	case MarketDraw:
		return ResultDraw
	case MarketAway:
		return ResultAwayWin
	default:
		return ""
	}
}

// Odds returns the match price quoted for m
func (m Market) Odds(match *FootballMatch) decimal.Decimal {
	switch m {
	case MarketHome:
		return match.OddsHome
	case MarketDraw:
		return match.OddsDraw
	case MarketAway:
		return match.OddsAway
	default:
		return decimal.Zero
	}
}

// Settles reports whether a bet on m wins for the given match
func (m Market) Settles(match *FootballMatch) bool {
	return match.Result == m.WinningResult()
}
