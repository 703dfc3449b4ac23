package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yourusername/odds-lab/internal/models"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS football_matches (
    seq        INTEGER PRIMARY KEY AUTOINCREMENT,
    league     TEXT NOT NULL,
    match_date TEXT,
    home_team  TEXT NOT NULL DEFAULT '',
    away_team  TEXT NOT NULL DEFAULT '',
    result     TEXT NOT NULL CHECK (result IN ('H', 'D', 'A')),
    odds_home  TEXT NOT NULL,
    odds_draw  TEXT NOT NULL,
    odds_away  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_football_matches_league ON football_matches(league, seq);

CREATE TABLE IF NOT EXISTS tennis_matches (
    seq         INTEGER PRIMARY KEY AUTOINCREMENT,
    tournament  TEXT NOT NULL DEFAULT '',
    match_date  TEXT,
    winner      TEXT NOT NULL DEFAULT '',
    loser       TEXT NOT NULL DEFAULT '',
    odds_winner TEXT NOT NULL,
    odds_loser  TEXT NOT NULL
);
`

// SQLiteMatchRepository implements MatchRepository on an embedded SQLite file.
// Odds are stored as text so decimals round-trip exactly.
type SQLiteMatchRepository struct {
	db *sql.DB
}

// NewSQLiteMatchRepository opens (or creates) the database at path and applies the schema.
// ":memory:" gives a private in-memory store.
func NewSQLiteMatchRepository(ctx context.Context, path string) (*SQLiteMatchRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// single writer; also keeps one connection so :memory: is not per-connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteMatchRepository{db: db}, nil
}

// SaveFootball appends matches in a single transaction
func (r *SQLiteMatchRepository) SaveFootball(ctx context.Context, matches []models.FootballMatch) (int64, error) {
	if len(matches) == 0 {
		return 0, nil
	}
	if err := validateFootball(matches); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO football_matches (league, match_date, home_team, away_team, result, odds_home, odds_draw, odds_away)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	return r.insertAll(ctx, query, len(matches), func(i int) []interface{} {
		m := matches[i]
		return []interface{}{
			m.League, nullableDate(m.Date), m.HomeTeam, m.AwayTeam, string(m.Result),
			m.OddsHome.String(), m.OddsDraw.String(), m.OddsAway.String(),
		}
	})
}

// SaveTennis appends matches in a single transaction
func (r *SQLiteMatchRepository) SaveTennis(ctx context.Context, matches []models.TennisMatch) (int64, error) {
	if len(matches) == 0 {
		return 0, nil
	}
	if err := validateTennis(matches); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO tennis_matches (tournament, match_date, winner, loser, odds_winner, odds_loser)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	return r.insertAll(ctx, query, len(matches), func(i int) []interface{} {
		m := matches[i]
		return []interface{}{
			m.Tournament, nullableDate(m.Date), m.Winner, m.Loser,
			m.OddsWinner.String(), m.OddsLoser.String(),
		}
	})
}

func (r *SQLiteMatchRepository) insertAll(ctx context.Context, query string, n int, args func(int) []interface{}) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var written int64
	for i := 0; i < n; i++ {
		res, err := stmt.ExecContext(ctx, args(i)...)
		if err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		written += affected
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return written, nil
}

const sqliteSelectFootball = `
	SELECT league, match_date, home_team, away_team, result, odds_home, odds_draw, odds_away
	FROM football_matches
`

// ListFootball retrieves every stored football match
func (r *SQLiteMatchRepository) ListFootball(ctx context.Context) ([]models.FootballMatch, error) {
	return r.queryFootball(ctx, sqliteSelectFootball+" ORDER BY seq ASC")
}

// ListFootballByLeague retrieves the stored matches of one league
func (r *SQLiteMatchRepository) ListFootballByLeague(ctx context.Context, league string) ([]models.FootballMatch, error) {
	return r.queryFootball(ctx, sqliteSelectFootball+" WHERE league = ? ORDER BY seq ASC", league)
}

func (r *SQLiteMatchRepository) queryFootball(ctx context.Context, query string, args ...interface{}) ([]models.FootballMatch, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query football matches: %w", err)
	}
	defer rows.Close()

	var matches []models.FootballMatch
	for rows.Next() {
		var (
			m                models.FootballMatch
			date             sql.NullString
			result           string
			home, draw, away string
		)
		if err := rows.Scan(&m.League, &date, &m.HomeTeam, &m.AwayTeam, &result, &home, &draw, &away); err != nil {
			return nil, fmt.Errorf("scan football match: %w", err)
		}
		if date.Valid {
			if m.Date, err = parseStoredDate(&date.String); err != nil {
				return nil, err
			}
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
func (r *SQLiteMatchRepository) ListTennis(ctx context.Context) ([]models.TennisMatch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tournament, match_date, winner, loser, odds_winner, odds_loser
		FROM tennis_matches
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tennis matches: %w", err)
	}
	defer rows.Close()

	var matches []models.TennisMatch
	for rows.Next() {
		var (
			m             models.TennisMatch
			date          sql.NullString
			winner, loser string
		)
		if err := rows.Scan(&m.Tournament, &date, &m.Winner, &m.Loser, &winner, &loser); err != nil {
			return nil, fmt.Errorf("scan tennis match: %w", err)
		}
		if date.Valid {
			if m.Date, err = parseStoredDate(&date.String); err != nil {
				return nil, err
			}
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
func (r *SQLiteMatchRepository) Leagues(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT league
		FROM football_matches
		GROUP BY league
		ORDER BY MIN(seq) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query leagues: %w", err)
	}
	defer rows.Close()

	var leagues []string
	for rows.Next() {
		var league string
		if err := rows.Scan(&league); err != nil {
			return nil, err
		}
		leagues = append(leagues, league)
	}
	return leagues, rows.Err()
}

// Count returns the number of stored matches for sport
func (r *SQLiteMatchRepository) Count(ctx context.Context, sport models.Sport) (int64, error) {
	table, err := tableFor(sport)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// Truncate deletes every stored match for sport and returns the number removed
func (r *SQLiteMatchRepository) Truncate(ctx context.Context, sport models.Sport) (int64, error) {
	table, err := tableFor(sport)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM "+table)
	if err != nil {
		return 0, fmt.Errorf("truncate %s: %w", table, err)
	}
	return res.RowsAffected()
}

// Ping verifies the database file is reachable
func (r *SQLiteMatchRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database
func (r *SQLiteMatchRepository) Close() error {
	return r.db.Close()
}
