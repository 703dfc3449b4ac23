package datasource

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-lab/internal/logger"
	"github.com/yourusername/odds-lab/internal/metrics"
	"github.com/yourusername/odds-lab/internal/models"
)

// MatchReader is the read side of a match store
type MatchReader interface {
	ListFootball(ctx context.Context) ([]models.FootballMatch, error)
	ListTennis(ctx context.Context) ([]models.TennisMatch, error)
}

// RepositorySource serves matches previously imported into a database
type RepositorySource struct {
	name   string
	repo   MatchReader
	logger *logger.DatasetLogger
}

// NewRepositorySource wraps repo; name is used in logs and metrics
func NewRepositorySource(name string, repo MatchReader, log *logrus.Logger) *RepositorySource {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &RepositorySource{name: name, repo: repo, logger: logger.NewDatasetLogger(log)}
}

// Name returns the name of the data source
func (s *RepositorySource) Name() string {
	return s.name
}

// LoadFootball lists stored football matches in import order
func (s *RepositorySource) LoadFootball(ctx context.Context) ([]models.FootballMatch, error) {
	start := time.Now()
	matches, err := s.repo.ListFootball(ctx)
	if err != nil {
		return nil, NewDataSourceError(s.name, ErrCodeServerError, "failed to list football matches", err)
	}
	s.loaded(SportFootball, len(matches), time.Since(start))
	return matches, nil
}

// LoadTennis lists stored tennis matches in import order
func (s *RepositorySource) LoadTennis(ctx context.Context) ([]models.TennisMatch, error) {
	start := time.Now()
	matches, err := s.repo.ListTennis(ctx)
	if err != nil {
		return nil, NewDataSourceError(s.name, ErrCodeServerError, "failed to list tennis matches", err)
	}
	s.loaded(SportTennis, len(matches), time.Since(start))
	return matches, nil
}

func (s *RepositorySource) loaded(sport string, rows int, elapsed time.Duration) {
	metrics.RecordDatasetLoad(s.name, sport, rows, 0, elapsed.Seconds())
	s.logger.LogDatasetLoaded(s.name, sport, rows, 0, float64(elapsed.Microseconds())/1000)
}
