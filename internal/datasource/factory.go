package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-lab/internal/config"
)

// Factory creates DataSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.DatasetConfig
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.DatasetConfig, logger *logrus.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// HTTPClientConfig derives client settings from the dataset configuration
func (f *Factory) HTTPClientConfig() HTTPClientConfig {
	httpCfg := DefaultHTTPClientConfig()
	if f.config.Timeout > 0 {
		httpCfg.Timeout = f.config.Timeout
	}
	if f.config.MaxRetries > 0 {
		httpCfg.MaxRetries = f.config.MaxRetries
	}
	if f.config.RequestsPerSec > 0 {
		httpCfg.RateLimit = f.config.RequestsPerSec
	}
	return httpCfg
}

// Create builds the configured source. Database-backed sources read from
// store, which may be nil for the file and http sources.
func (f *Factory) Create(store MatchReader) (DataSource, error) {
	switch f.config.Source {
	case config.SourceFile:
		return NewFileSource(f.config.FootballPath, f.config.TennisPath, f.logger), nil

	case config.SourceHTTP:
		client := NewRateLimitedHTTPClient(f.HTTPClientConfig(), f.logger)
		return NewHTTPSource(client, f.config.FootballURL, f.config.TennisURL, f.logger), nil

	case config.SourcePostgres, config.SourceSQLite:
		if store == nil {
			return nil, fmt.Errorf("%s source requires a match store", f.config.Source)
		}
		return NewRepositorySource(f.config.Source, store, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown data source: %s", f.config.Source)
	}
}

// CreateCached builds the configured source wrapped in a CachedSource
func (f *Factory) CreateCached(store MatchReader) (*CachedSource, error) {
	source, err := f.Create(store)
	if err != nil {
		return nil, err
	}
	return NewCachedSource(source, f.config.CacheTTL, f.logger), nil
}
