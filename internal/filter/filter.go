// Package filter narrows a football dataset before it is backtested.
package filter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/odds-lab/internal/models"
)

// AllLeagues is the selection sentinel meaning no league restriction
const AllLeagues = "all"

// LeagueSelection is either every league or an explicit set
type LeagueSelection struct {
	all     bool
	leagues map[string]struct{}
}

// SelectAll returns a selection that keeps every league
func SelectAll() LeagueSelection {
	return LeagueSelection{all: true}
}

// SelectLeagues returns a selection for the given leagues. An empty list, or a
// list containing the AllLeagues sentinel, selects every league.
func SelectLeagues(leagues ...string) LeagueSelection {
	if len(leagues) == 0 {
		return SelectAll()
	}
	set := make(map[string]struct{}, len(leagues))
	for _, league := range leagues {
		league = strings.TrimSpace(league)
		if strings.EqualFold(league, AllLeagues) {
			return SelectAll()
		}
		if league != "" {
			set[league] = struct{}{}
		}
	}
	if len(set) == 0 {
		return SelectAll()
	}
	return LeagueSelection{leagues: set}
}

// IsAll reports whether the selection keeps every league
func (s LeagueSelection) IsAll() bool {
	return s.all || len(s.leagues) == 0
}

// Contains reports whether league is selected
func (s LeagueSelection) Contains(league string) bool {
	if s.IsAll() {
		return true
	}
	_, ok := s.leagues[league]
	return ok
}

// Apply returns the selected matches in input order
func (s LeagueSelection) Apply(matches []models.FootballMatch) []models.FootballMatch {
	if s.IsAll() {
		return matches
	}
	filtered := make([]models.FootballMatch, 0, len(matches))
	for _, match := range matches {
		if s.Contains(match.League) {
			filtered = append(filtered, match)
		}
	}
	return filtered
}

// DistinctLeagues lists the leagues of matches in first-appearance order
func DistinctLeagues(matches []models.FootballMatch) []string {
	seen := make(map[string]struct{})
	var leagues []string
	for _, match := range matches {
		if _, ok := seen[match.League]; ok {
			continue
		}
		seen[match.League] = struct{}{}
		leagues = append(leagues, match.League)
	}
	return leagues
}

// Side is the price column an odds filter reads
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// ParseSide converts a config value into a Side
func ParseSide(value string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(value))) {
	case SideHome:
		return SideHome, nil
	case SideAway:
		return SideAway, nil
	default:
		return "", fmt.Errorf("invalid odds filter side %q", value)
	}
}

// Default bounds of the odds range inputs
var (
	DefaultMinOdds = decimal.RequireFromString("1.01")
	DefaultMaxOdds = decimal.NewFromInt(100)
)

// OddsFilter keeps matches whose home or away price lies in [Min, Max]
type OddsFilter struct {
	Side Side            `json:"side" validate:"required,oneof=home away"`
	Min  decimal.Decimal `json:"min"`
	Max  decimal.Decimal `json:"max"`
}

// NewOddsFilter validates and builds an odds filter
func NewOddsFilter(side Side, min, max decimal.Decimal) (OddsFilter, error) {
	f := OddsFilter{Side: side, Min: min, Max: max}
	return f, f.Validate()
}

// Validate checks the side and that 1.0 <= Min <= Max
func (f OddsFilter) Validate() error {
	if f.Side != SideHome && f.Side != SideAway {
		return fmt.Errorf("invalid odds filter side %q", f.Side)
	}
	if f.Min.LessThan(models.MinOdds) {
		return fmt.Errorf("odds filter min must be at least %s: %w", models.MinOdds, models.ErrInvalidOdds)
	}
	if f.Min.GreaterThan(f.Max) {
		return fmt.Errorf("odds filter min %s exceeds max %s", f.Min, f.Max)
	}
	return nil
}

func (f OddsFilter) price(match *models.FootballMatch) decimal.Decimal {
	if f.Side == SideAway {
		return match.OddsAway
	}
	return match.OddsHome
}

// Matches reports whether the match price on the filter side is within bounds
func (f OddsFilter) Matches(match *models.FootballMatch) bool {
	odds := f.price(match)
	return odds.GreaterThanOrEqual(f.Min) && odds.LessThanOrEqual(f.Max)
}

// Apply returns the matching matches in input order
func (f OddsFilter) Apply(matches []models.FootballMatch) []models.FootballMatch {
	filtered := make([]models.FootballMatch, 0, len(matches))
	for i := range matches {
		if f.Matches(&matches[i]) {
			filtered = append(filtered, matches[i])
		}
	}
	return filtered
}

// Midpoint returns (Min + Max) / 2
func (f OddsFilter) Midpoint() decimal.Decimal {
	return f.Min.Add(f.Max).Div(decimal.NewFromInt(2))
}

// Criteria bundles the filters applied before a backtest. Odds is optional.
type Criteria struct {
	Leagues LeagueSelection
	Odds    *OddsFilter
}

// Apply runs the league selection, then the odds filter when set
func (c Criteria) Apply(matches []models.FootballMatch) []models.FootballMatch {
	filtered := c.Leagues.Apply(matches)
	if c.Odds != nil {
		filtered = c.Odds.Apply(filtered)
	}
	return filtered
}
