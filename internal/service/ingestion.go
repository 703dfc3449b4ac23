package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-lab/internal/datasource"
	"github.com/yourusername/odds-lab/internal/logger"
	"github.com/yourusername/odds-lab/internal/models"
)

// MatchWriter is the write side of a match store
type MatchWriter interface {
	SaveFootball(ctx context.Context, matches []models.FootballMatch) (int64, error)
	SaveTennis(ctx context.Context, matches []models.TennisMatch) (int64, error)
	Truncate(ctx context.Context, sport models.Sport) (int64, error)
}

// IngestionService copies datasets from a source into a match store
type IngestionService struct {
	source datasource.DataSource
	store  MatchWriter
	target string
	audit  *logger.AuditLogger
	logger *logrus.Logger
}

// NewIngestionService creates a new ingestion service. target names the store in audit logs.
func NewIngestionService(source datasource.DataSource, store MatchWriter, target string, log *logrus.Logger) *IngestionService {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &IngestionService{
		source: source,
		store:  store,
		target: target,
		audit:  logger.NewAuditLogger(log),
		logger: log,
	}
}

// Import loads one sport from the source and appends it to the store. With
// replace set, existing rows of that sport are deleted first so the stored
// order matches the source.
func (s *IngestionService) Import(ctx context.Context, sport models.Sport, replace bool) (*ImportResult, error) {
	result := &ImportResult{
		ID:        uuid.NewString(),
		Sport:     sport,
		Source:    s.source.Name(),
		StartTime: time.Now(),
		Truncated: replace,
	}

	err := s.importSport(ctx, result, replace)
	result.Duration = time.Since(result.StartTime)
	if err != nil {
		s.audit.LogImportFailure(result.ID, string(sport), s.target, err)
		return result, err
	}

	s.audit.LogImport(result.ID, string(sport), s.target, int(result.Written), 0, result.StartTime)
	s.logger.Info(result.String())
	return result, nil
}

func (s *IngestionService) importSport(ctx context.Context, result *ImportResult, replace bool) error {
	var (
		football []models.FootballMatch
		tennis   []models.TennisMatch
		err      error
	)

	switch result.Sport {
	case models.SportFootball:
		football, err = s.source.LoadFootball(ctx)
		result.Loaded = len(football)
	case models.SportTennis:
		tennis, err = s.source.LoadTennis(ctx)
		result.Loaded = len(tennis)
	default:
		return fmt.Errorf("unknown sport %q", result.Sport)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", result.Sport, err)
	}

	if replace {
		deleted, err := s.store.Truncate(ctx, result.Sport)
		if err != nil {
			return fmt.Errorf("failed to truncate %s: %w", result.Sport, err)
		}
		result.Replaced = deleted
		s.audit.LogTruncate(string(result.Sport), s.target, deleted)
	}

	if result.Sport == models.SportFootball {
		result.Written, err = s.store.SaveFootball(ctx, football)
	} else {
		result.Written, err = s.store.SaveTennis(ctx, tennis)
	}
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", result.Sport, err)
	}
	return nil
}

// ImportAll imports football then tennis, stopping at the first failure
func (s *IngestionService) ImportAll(ctx context.Context, replace bool) ([]*ImportResult, error) {
	var results []*ImportResult
	for _, sport := range []models.Sport{models.SportFootball, models.SportTennis} {
		result, err := s.Import(ctx, sport, replace)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
