package datasource

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-lab/internal/logger"
	"github.com/yourusername/odds-lab/internal/metrics"
	"github.com/yourusername/odds-lab/internal/models"
)

// Sport labels used in logs and metrics
const (
	SportFootball = string(models.SportFootball)
	SportTennis   = string(models.SportTennis)
)

// tableReader runs the CSV parsers and reports what they skipped
type tableReader struct {
	source string
	logger *logger.DatasetLogger
}

func newTableReader(source string, log *logrus.Logger) tableReader {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return tableReader{source: source, logger: logger.NewDatasetLogger(log)}
}

func (t tableReader) football(r io.Reader, origin string) ([]models.FootballMatch, error) {
	start := time.Now()
	matches, report, err := ParseFootballCSV(r)
	if err != nil {
		return nil, NewDataSourceError(t.source, ErrCodeInvalidData, "failed to parse "+origin, err)
	}
	t.report(SportFootball, origin, report, time.Since(start))
	return matches, nil
}

func (t tableReader) tennis(r io.Reader, origin string) ([]models.TennisMatch, error) {
	start := time.Now()
	matches, report, err := ParseTennisCSV(r)
	if err != nil {
		return nil, NewDataSourceError(t.source, ErrCodeInvalidData, "failed to parse "+origin, err)
	}
	t.report(SportTennis, origin, report, time.Since(start))
	return matches, nil
}

func (t tableReader) report(sport, origin string, report ParseReport, elapsed time.Duration) {
	for _, issue := range report.Issues {
		t.logger.LogRowSkipped(origin, issue.Line, issue.Reason)
	}
	metrics.RecordDatasetLoad(t.source, sport, report.Accepted, report.Skipped, elapsed.Seconds())
	t.logger.LogDatasetLoaded(t.source, sport, report.Accepted, report.Skipped, float64(elapsed.Microseconds())/1000)
}
