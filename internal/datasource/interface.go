package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/odds-lab/internal/models"
)

// DataSource loads historical match tables
type DataSource interface {
	// LoadFootball returns football matches in source order
	LoadFootball(ctx context.Context) ([]models.FootballMatch, error)

	// LoadTennis returns tennis matches in source order
	LoadTennis(ctx context.Context) ([]models.TennisMatch, error)

	// Name returns the name of the data source
	Name() string
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "invalid_data")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap returns the underlying error
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
	ErrCodeNotConfigured     = "not_configured"
)

// Sentinel errors wrapped by DataSourceError
var (
	ErrMissingColumn  = errors.New("missing required column")
	ErrNotConfigured  = errors.New("dataset not configured")
	ErrCircuitOpen    = errors.New("circuit breaker open")
	ErrUnexpectedCode = errors.New("unexpected status code")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorCode extracts the DataSourceError code from err, or "" when err is not one
func ErrorCode(err error) string {
	var dsErr DataSourceError
	if errors.As(err, &dsErr) {
		return dsErr.Code
	}
	return ""
}
