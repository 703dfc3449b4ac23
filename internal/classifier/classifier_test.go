package classifier

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/odds-lab/internal/models"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func tennis(winner, loser string) models.TennisMatch {
	return models.TennisMatch{OddsWinner: dec(winner), OddsLoser: dec(loser)}
}

func TestClassifyDefaultBand(t *testing.T) {
	matches := []models.TennisMatch{
		tennis("1.20", "4.50"),
		tennis("1.50", "2.60"),
		tennis("2.10", "1.75"),
		tennis("1.90", "1.90"),
		tennis("3.40", "1.30"),
	}

	c := Classify(matches, DefaultBand)
	assert.Equal(t, 5, c.TotalMatches)
	assert.Equal(t, 0, c.WinningMatches)
	assert.Equal(t, 0, c.LosingMatches)
	assert.True(t, c.WinPct.IsZero())
	assert.True(t, c.LosePct.IsZero())
	assert.True(t, c.ImpliedOddsWin.IsZero())
	assert.True(t, c.ImpliedOddsLoss.IsZero())
}

func TestClassifyDefaultBandCountsWinnersOnly(t *testing.T) {
	// five winner prices and three loser prices inside the band
	matches := []models.TennisMatch{
		tennis("1.20", "4.50"),
		tennis("1.50", "2.60"),
		tennis("2.10", "1.75"),
		tennis("1.90", "101"),
		tennis("3.40", "250"),
	}

	c := Classify(matches, DefaultBand)
	assert.Equal(t, 5, c.TotalMatches)
	assert.Equal(t, 0, c.WinningMatches)
	assert.Equal(t, 0, c.LosingMatches)
}

func TestClassifyCustomBand(t *testing.T) {
	matches := []models.TennisMatch{
		tennis("1.50", "2.60"),
		tennis("1.80", "2.00"),
		tennis("2.00", "1.85"),
		tennis("1.40", "3.10"),
	}
	band, err := NewBand(dec("1.80"), dec("2.00"))
	require.NoError(t, err)

	c := Classify(matches, band)
	// winners 1.80, 2.00 and losers 2.00, 1.85 (bounds inclusive)
	assert.Equal(t, 2, c.WinningMatches)
	assert.Equal(t, 2, c.LosingMatches)
	assert.Equal(t, 4, c.TotalMatches)
	assert.True(t, c.WinPct.Equal(dec("50")))
	assert.True(t, c.LosePct.Equal(dec("50")))
	assert.True(t, c.ImpliedOddsWin.Equal(dec("2")))
	assert.True(t, c.ImpliedOddsLoss.Equal(dec("2")))
}

func TestClassifyOneSided(t *testing.T) {
	matches := []models.TennisMatch{
		tennis("1.10", "7.00"),
		tennis("1.15", "6.00"),
		tennis("1.12", "8.00"),
	}
	band, err := NewBand(dec("1.05"), dec("1.20"))
	require.NoError(t, err)

	c := Classify(matches, band)
	assert.Equal(t, 3, c.TotalMatches)
	assert.True(t, c.WinPct.Equal(dec("100")))
	assert.True(t, c.LosePct.IsZero())
	assert.True(t, c.ImpliedOddsWin.Equal(dec("1")))
	assert.True(t, c.ImpliedOddsLoss.IsZero())
}

func TestClassifyEmpty(t *testing.T) {
	band, err := NewBand(dec("2"), dec("3"))
	require.NoError(t, err)

	c := Classify(nil, band)
	assert.Equal(t, 0, c.TotalMatches)
	assert.True(t, c.WinPct.IsZero())
	assert.True(t, c.ImpliedOddsWin.IsZero())
}

func TestBandValidate(t *testing.T) {
	_, err := NewBand(dec("3"), dec("2"))
	assert.Error(t, err)

	_, err = NewBand(dec("0"), dec("2"))
	assert.Error(t, err)

	band, err := NewBand(dec("1.010"), dec("100.0"))
	require.NoError(t, err)
	assert.True(t, band.IsDefault())
}
