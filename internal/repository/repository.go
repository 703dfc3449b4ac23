package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/odds-lab/internal/config"
	"github.com/yourusername/odds-lab/internal/database"
	"github.com/yourusername/odds-lab/internal/models"
)

const dateLayout = "2006-01-02"

// New opens the match store of the given kind (config.SourcePostgres or config.SourceSQLite)
func New(ctx context.Context, kind string, cfg *config.Config) (MatchRepository, error) {
	switch kind {
	case config.SourcePostgres:
		db, err := database.Initialize(ctx, &cfg.Database, nil)
		if err != nil {
			return nil, err
		}
		return NewPostgresMatchRepository(db), nil
	case config.SourceSQLite:
		return NewSQLiteMatchRepository(ctx, cfg.Dataset.SQLitePath)
	default:
		return nil, fmt.Errorf("source %q has no match store", kind)
	}
}

func tableFor(sport models.Sport) (string, error) {
	switch sport {
	case models.SportFootball:
		return "football_matches", nil
	case models.SportTennis:
		return "tennis_matches", nil
	default:
		return "", fmt.Errorf("unknown sport %q", sport)
	}
}

// nullableDate maps the zero time to NULL
func nullableDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func parseStoredDate(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Time{}, nil
	}
	// postgres renders DATE::text as YYYY-MM-DD
	return time.Parse(dateLayout, (*s)[:min(len(*s), len(dateLayout))])
}

func parseStoredOdds(values ...string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid stored odds %q: %w", v, err)
		}
		out[i] = d
	}
	return out, nil
}

func validateFootball(matches []models.FootballMatch) error {
	for i := range matches {
		if err := matches[i].Validate(); err != nil {
			return fmt.Errorf("football match %d: %w", i, err)
		}
	}
	return nil
}

func validateTennis(matches []models.TennisMatch) error {
	for i := range matches {
		if err := matches[i].Validate(); err != nil {
			return fmt.Errorf("tennis match %d: %w", i, err)
		}
	}
	return nil
}
