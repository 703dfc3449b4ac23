package datasource

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-lab/internal/logger"
	"github.com/yourusername/odds-lab/internal/metrics"
	"github.com/yourusername/odds-lab/internal/models"
	"golang.org/x/sync/singleflight"
)

const (
	footballKey = "football"
	tennisKey   = "tennis"
)

// ErrCacheEmpty is returned by Ping before any table has been loaded
var ErrCacheEmpty = errors.New("no dataset loaded yet")

// CachedSource keeps the last loaded tables of another source in memory.
// A zero TTL keeps entries until the next Refresh.
type CachedSource struct {
	inner  DataSource
	cache  *cache.Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *logger.DatasetLogger

	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewCachedSource wraps inner with an in-memory cache
func NewCachedSource(inner DataSource, ttl time.Duration, log *logrus.Logger) *CachedSource {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	expiration := ttl
	cleanup := ttl * 2
	if ttl <= 0 {
		expiration = cache.NoExpiration
		cleanup = 0
	}
	return &CachedSource{
		inner:  inner,
		cache:  cache.New(expiration, cleanup),
		ttl:    expiration,
		logger: logger.NewDatasetLogger(log),
	}
}

// Name returns the name of the wrapped source
func (s *CachedSource) Name() string {
	return s.inner.Name()
}

func (s *CachedSource) lookup(key string) (interface{}, bool) {
	value, found := s.cache.Get(key)
	if found {
		s.hitCount.Add(1)
		metrics.RecordCacheHit()
		return value, true
	}
	s.missCount.Add(1)
	metrics.RecordCacheMiss()
	return nil, false
}

// load runs fn once for concurrent misses on the same key and caches the result.
// The shared load is detached from ctx so one caller giving up does not fail
// the others waiting on the same key.
func (s *CachedSource) load(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		value, err := fn(shared)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, value, s.ttl)
		return value, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// LoadFootball returns the cached football table, loading it on a miss.
// Callers must not modify the returned slice.
func (s *CachedSource) LoadFootball(ctx context.Context) ([]models.FootballMatch, error) {
	if value, found := s.lookup(footballKey); found {
		return value.([]models.FootballMatch), nil
	}
	value, err := s.load(ctx, footballKey, func(ctx context.Context) (interface{}, error) {
		return s.inner.LoadFootball(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]models.FootballMatch), nil
}

// LoadTennis returns the cached tennis table, loading it on a miss.
// Callers must not modify the returned slice.
func (s *CachedSource) LoadTennis(ctx context.Context) ([]models.TennisMatch, error) {
	if value, found := s.lookup(tennisKey); found {
		return value.([]models.TennisMatch), nil
	}
	value, err := s.load(ctx, tennisKey, func(ctx context.Context) (interface{}, error) {
		return s.inner.LoadTennis(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]models.TennisMatch), nil
}

// Refresh reloads both tables from the wrapped source. On failure the
// previous entries stay in place.
func (s *CachedSource) Refresh(ctx context.Context) error {
	football, err := s.inner.LoadFootball(ctx)
	if err != nil {
		s.logger.LogCacheRefresh(s.Name(), err)
		return err
	}
	tennis, err := s.inner.LoadTennis(ctx)
	if err != nil {
		s.logger.LogCacheRefresh(s.Name(), err)
		return err
	}

	s.cache.Set(footballKey, football, s.ttl)
	s.cache.Set(tennisKey, tennis, s.ttl)
	s.logger.LogCacheRefresh(s.Name(), nil)
	hits, misses, ratio := s.Stats()
	s.logger.LogCacheStats(s.Name(), s.ItemCount(), hits, misses, ratio)
	return nil
}

// Stats returns cache statistics
func (s *CachedSource) Stats() (hits, misses uint64, ratio float64) {
	hits = s.hitCount.Load()
	misses = s.missCount.Load()
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of cached tables
func (s *CachedSource) ItemCount() int {
	return s.cache.ItemCount()
}

// Ping reports whether at least one table is cached, for readiness checks
func (s *CachedSource) Ping(ctx context.Context) error {
	if s.ItemCount() == 0 {
		return ErrCacheEmpty
	}
	return nil
}
