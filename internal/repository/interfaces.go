package repository

import (
	"context"

	"github.com/yourusername/odds-lab/internal/models"
)

// MatchRepository defines the interface for historical match storage.
// List methods return rows in the order they were saved.
type MatchRepository interface {
	SaveFootball(ctx context.Context, matches []models.FootballMatch) (int64, error)
	SaveTennis(ctx context.Context, matches []models.TennisMatch) (int64, error)
	ListFootball(ctx context.Context) ([]models.FootballMatch, error)
	ListFootballByLeague(ctx context.Context, league string) ([]models.FootballMatch, error)
	ListTennis(ctx context.Context) ([]models.TennisMatch, error)
	Leagues(ctx context.Context) ([]string, error)
	Count(ctx context.Context, sport models.Sport) (int64, error)
	Truncate(ctx context.Context, sport models.Sport) (int64, error)
	Close() error
}
