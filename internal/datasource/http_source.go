package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-lab/internal/models"
)

// HTTPSource downloads CSV tables, e.g. from football-data.co.uk
type HTTPSource struct {
	client      *RateLimitedHTTPClient
	footballURL string
	tennisURL   string
	reader      tableReader
}

// NewHTTPSource creates a source that fetches the given URLs through client
func NewHTTPSource(client *RateLimitedHTTPClient, footballURL, tennisURL string, log *logrus.Logger) *HTTPSource {
	return &HTTPSource{
		client:      client,
		footballURL: footballURL,
		tennisURL:   tennisURL,
		reader:      newTableReader("http", log),
	}
}

// Name returns the name of the data source
func (s *HTTPSource) Name() string {
	return "http"
}

func (s *HTTPSource) fetch(ctx context.Context, url, sport string) (io.ReadCloser, error) {
	if url == "" {
		return nil, NewDataSourceError(s.Name(), ErrCodeNotConfigured, sport+" url is empty", ErrNotConfigured)
	}

	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeNetworkError, "request failed", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, NewDataSourceError(s.Name(), ErrCodeNotFound, url, ErrUnexpectedCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, NewDataSourceError(s.Name(), ErrCodeRateLimitExceeded, url, ErrUnexpectedCode)
	case resp.StatusCode >= 500:
		resp.Body.Close()
		return nil, NewDataSourceError(s.Name(), ErrCodeServerError, fmt.Sprintf("status %d", resp.StatusCode), ErrUnexpectedCode)
	default:
		resp.Body.Close()
		return nil, NewDataSourceError(s.Name(), ErrCodeNetworkError, fmt.Sprintf("status %d", resp.StatusCode), ErrUnexpectedCode)
	}
}

// LoadFootball downloads and parses the football table
func (s *HTTPSource) LoadFootball(ctx context.Context) ([]models.FootballMatch, error) {
	body, err := s.fetch(ctx, s.footballURL, SportFootball)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return s.reader.football(body, s.footballURL)
}

// LoadTennis downloads and parses the tennis table
func (s *HTTPSource) LoadTennis(ctx context.Context) ([]models.TennisMatch, error) {
	body, err := s.fetch(ctx, s.tennisURL, SportTennis)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return s.reader.tennis(body, s.tennisURL)
}
