// Package classifier computes observed win and loss frequencies of tennis
// prices that fall inside an odds band.
package classifier

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/odds-lab/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Band is an inclusive odds range
type Band struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// DefaultBand is the untouched range of the odds inputs, 1.01 to 100.0
var DefaultBand = Band{
	Min: decimal.RequireFromString("1.01"),
	Max: decimal.NewFromInt(100),
}

// NewBand validates and builds a band
func NewBand(min, max decimal.Decimal) (Band, error) {
	b := Band{Min: min, Max: max}
	return b, b.Validate()
}

// Validate checks that the bounds are positive and ordered
func (b Band) Validate() error {
	if !b.Min.IsPositive() || !b.Max.IsPositive() {
		return fmt.Errorf("band bounds must be positive, got %s-%s", b.Min, b.Max)
	}
	if b.Min.GreaterThan(b.Max) {
		return fmt.Errorf("band min %s exceeds max %s", b.Min, b.Max)
	}
	return nil
}

// IsDefault reports whether b equals DefaultBand
func (b Band) IsDefault() bool {
	return b.Min.Equal(DefaultBand.Min) && b.Max.Equal(DefaultBand.Max)
}

// Contains reports whether odds lies in [Min, Max]
func (b Band) Contains(odds decimal.Decimal) bool {
	return odds.GreaterThanOrEqual(b.Min) && odds.LessThanOrEqual(b.Max)
}

// Classification is the record of prices inside a band
type Classification struct {
	Band            Band            `json:"band"`
	TotalMatches    int             `json:"total_matches"`
	WinningMatches  int             `json:"winning_matches"`
	LosingMatches   int             `json:"losing_matches"`
	WinPct          decimal.Decimal `json:"win_pct"`
	LosePct         decimal.Decimal `json:"lose_pct"`
	ImpliedOddsWin  decimal.Decimal `json:"implied_odds_win"`
	ImpliedOddsLoss decimal.Decimal `json:"implied_odds_loss"`
}

// Classify counts winners priced inside the band and losers priced inside the band.
//
// With the default band every row qualifies on both sides, so the total is the
// number of matches and the win/loss counts are reported as 0.
func Classify(matches []models.TennisMatch, band Band) Classification {
	winning, losing := 0, 0
	for _, match := range matches {
		if band.Contains(match.OddsWinner) {
			winning++
		}
		if band.Contains(match.OddsLoser) {
			losing++
		}
	}

	c := Classification{Band: band}
	if band.IsDefault() {
		c.TotalMatches = winning
	} else {
		c.TotalMatches = winning + losing
		c.WinningMatches = winning
		c.LosingMatches = losing
	}

	c.WinPct = percentage(c.WinningMatches, c.TotalMatches)
	c.LosePct = percentage(c.LosingMatches, c.TotalMatches)
	c.ImpliedOddsWin = impliedOdds(c.WinPct)
	c.ImpliedOddsLoss = impliedOdds(c.LosePct)
	return c
}

func percentage(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Div(decimal.NewFromInt(int64(total))).Mul(hundred)
}

func impliedOdds(pct decimal.Decimal) decimal.Decimal {
	if !pct.IsPositive() {
		return decimal.Zero
	}
	return hundred.Div(pct)
}
