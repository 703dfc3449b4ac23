package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/odds-lab/internal/database"
	"github.com/yourusername/odds-lab/internal/models"
)

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const (
	pgInsertFootball = `
		INSERT INTO football_matches (league, match_date, home_team, away_team, result, odds_home, odds_draw, odds_away)
		VALUES ($1, $2::text::date, $3, $4, $5, $6::text::numeric, $7::text::numeric, $8::text::numeric)
	`
	pgInsertTennis = `
		INSERT INTO tennis_matches (tournament, match_date, winner, loser, odds_winner, odds_loser)
		VALUES ($1, $2::text::date, $3, $4, $5::text::numeric, $6::text::numeric)
	`
	pgSelectFootball = `
		SELECT league, match_date::text, home_team, away_team, result, odds_home::text, odds_draw::text, odds_away::text
		FROM football_matches
	`
)

// SaveFootball appends matches in a single transaction using a pgx batch
func (r *PostgresMatchRepository) SaveFootball(ctx context.Context, matches []models.FootballMatch) (int64, error) {
	if len(matches) == 0 {
		return 0, nil
	}
	if err := validateFootball(matches); err != nil {
		return 0, err
	}

	batch := &pgx.Batch{}
	for _, m := range matches {
		batch.Queue(pgInsertFootball,
			m.League, nullableDate(m.Date), m.HomeTeam, m.AwayTeam, string(m.Result),
			m.OddsHome.String(), m.OddsDraw.String(), m.OddsAway.String(),
		)
	}
	return r.sendBatch(ctx, batch)
}

// SaveTennis appends matches in a single transaction using a pgx batch
func (r *PostgresMatchRepository) SaveTennis(ctx context.Context, matches []models.TennisMatch) (int64, error) {
	if len(matches) == 0 {
		return 0, nil
	}
	if err := validateTennis(matches); err != nil {
		return 0, err
	}

	batch := &pgx.Batch{}
	for _, m := range matches {
		batch.Queue(pgInsertTennis,
			m.Tournament, nullableDate(m.Date), m.Winner, m.Loser,
			m.OddsWinner.String(), m.OddsLoser.String(),
		)
	}
	return r.sendBatch(ctx, batch)
}

func (r *PostgresMatchRepository) sendBatch(ctx context.Context, batch *pgx.Batch) (int64, error) {
	var written int64
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			tag, err := results.Exec()
			if err != nil {
				results.Close()
				return fmt.Errorf("failed to insert row %d: %w", i, err)
			}
			written += tag.RowsAffected()
		}
		return results.Close()
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// ListFootball retrieves every stored football match
func (r *PostgresMatchRepository) ListFootball(ctx context.Context) ([]models.FootballMatch, error) {
	return r.queryFootball(ctx, pgSelectFootball+" ORDER BY seq ASC")
}

// ListFootballByLeague retrieves the stored matches of one league
func (r *PostgresMatchRepository) ListFootballByLeague(ctx context.Context, league string) ([]models.FootballMatch, error) {
	return r.queryFootball(ctx, pgSelectFootball+" WHERE league = $1 ORDER BY seq ASC", league)
}

func (r *PostgresMatchRepository) queryFootball(ctx context.Context, query string, args ...interface{}) ([]models.FootballMatch, error) {
	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query football matches: %w", err)
	}
	defer rows.Close()

	var matches []models.FootballMatch
	for rows.Next() {
		var (
			m                models.FootballMatch
			date             *string
			result           string
			home, draw, away string
		)
		if err := rows.Scan(&m.League, &date, &m.HomeTeam, &m.AwayTeam, &result, &home, &draw, &away); err != nil {
			return nil, fmt.Errorf("failed to scan football match: %w", err)
		}
		if m.Date, err = parseStoredDate(date); err != nil {
			return nil, err
		}
		m.Result = models.FullTimeResult(result)
		odds, err := parseStoredOdds(home, draw, away)
		if err != nil {
			return nil, err
		}
		m.OddsHome, m.OddsDraw, m.OddsAway = odds[0], odds[1], odds[2]
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ListTennis retrieves every stored tennis match
func (r *PostgresMatchRepository) ListTennis(ctx context.Context) ([]models.TennisMatch, error) {
	query := `
		SELECT tournament, match_date::text, winner, loser, odds_winner::text, odds_loser::text
		FROM tennis_matches
		ORDER BY seq ASC
	`
	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tennis matches: %w", err)
	}
	defer rows.Close()

	var matches []models.TennisMatch
	for rows.Next() {
		var (
			m             models.TennisMatch
			date          *string
			winner, loser string
		)
		if err := rows.Scan(&m.Tournament, &date, &m.Winner, &m.Loser, &winner, &loser); err != nil {
			return nil, fmt.Errorf("failed to scan tennis match: %w", err)
		}
		if m.Date, err = parseStoredDate(date); err != nil {
			return nil, err
		}
		odds, err := parseStoredOdds(winner, loser)
		if err != nil {
			return nil, err
		}
		m.OddsWinner, m.OddsLoser = odds[0], odds[1]
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Leagues returns the distinct leagues in order of first appearance
func (r *PostgresMatchRepository) Leagues(ctx context.Context) ([]string, error) {
	query := `
		SELECT league
		FROM football_matches
		GROUP BY league
		ORDER BY MIN(seq) ASC
	`
	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leagues: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// Count returns the number of stored matches for sport
func (r *PostgresMatchRepository) Count(ctx context.Context, sport models.Sport) (int64, error) {
	table, err := tableFor(sport)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.Pool().QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

// Truncate deletes every stored match for sport and returns the number removed
func (r *PostgresMatchRepository) Truncate(ctx context.Context, sport models.Sport) (int64, error) {
	table, err := tableFor(sport)
	if err != nil {
		return 0, err
	}
	tag, err := r.db.Pool().Exec(ctx, "DELETE FROM "+table)
	if err != nil {
		return 0, fmt.Errorf("failed to truncate %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

// Ping verifies database connectivity
func (r *PostgresMatchRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Close closes the connection pool
func (r *PostgresMatchRepository) Close() error {
	r.db.Close()
	return nil
}
