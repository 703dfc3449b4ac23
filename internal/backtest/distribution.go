package backtest

import (
	"github.com/shopspring/decimal"
	"github.com/yourusername/odds-lab/internal/models"
)

// Bucket is one equal-width histogram bin, [Lower, Upper) except the last which is closed
type Bucket struct {
	Lower decimal.Decimal `json:"lower"`
	Upper decimal.Decimal `json:"upper"`
	Home  int             `json:"home"`
	Draw  int             `json:"draw"`
	Away  int             `json:"away"`
}

// OddsDistribution counts home, draw and away prices over bins equal-width
// buckets spanning the smallest to largest quoted price
func OddsDistribution(matches []models.FootballMatch, bins int) []Bucket {
	if len(matches) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	lowest, highest := matches[0].OddsHome, matches[0].OddsHome
	for _, match := range matches {
		for _, odds := range []decimal.Decimal{match.OddsHome, match.OddsDraw, match.OddsAway} {
			lowest = decimal.Min(lowest, odds)
			highest = decimal.Max(highest, odds)
		}
	}

	width := highest.Sub(lowest).Div(decimal.NewFromInt(int64(bins)))
	buckets := make([]Bucket, bins)
	for i := range buckets {
		buckets[i].Lower = lowest.Add(width.Mul(decimal.NewFromInt(int64(i))))
		buckets[i].Upper = lowest.Add(width.Mul(decimal.NewFromInt(int64(i + 1))))
	}
	buckets[bins-1].Upper = highest

	index := func(odds decimal.Decimal) int {
		if width.IsZero() {
			return 0
		}
		i := int(odds.Sub(lowest).Div(width).IntPart())
		if i >= bins {
			i = bins - 1
		}
		return i
	}

	for _, match := range matches {
		buckets[index(match.OddsHome)].Home++
		buckets[index(match.OddsDraw)].Draw++
		buckets[index(match.OddsAway)].Away++
	}
	return buckets
}
