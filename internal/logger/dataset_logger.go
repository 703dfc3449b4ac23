package logger

import (
	"github.com/sirupsen/logrus"
)

// DatasetLogger provides dedicated logging for dataset loading and caching.
type DatasetLogger struct {
	*logrus.Entry
}

// NewDatasetLogger creates a new dataset logger.
func NewDatasetLogger(baseLogger *logrus.Logger) *DatasetLogger {
	return &DatasetLogger{
		Entry: baseLogger.WithField("component", "dataset"),
	}
}

// LogDatasetLoaded logs a completed load.
func (dl *DatasetLogger) LogDatasetLoaded(source, sport string, rows, skipped int, durationMs float64) {
	dl.WithFields(logrus.Fields{
		"source":      source,
		"sport":       sport,
		"rows":        rows,
		"skipped":     skipped,
		"duration_ms": durationMs,
	}).Info("Dataset loaded")
}

// LogRowSkipped logs a malformed row excluded from the dataset.
func (dl *DatasetLogger) LogRowSkipped(source string, line int, reason string) {
	dl.WithFields(logrus.Fields{
		"source": source,
		"line":   line,
		"reason": reason,
	}).Warn("Dataset row skipped")
}

// LogCacheRefresh logs a cache invalidation and reload.
func (dl *DatasetLogger) LogCacheRefresh(source string, err error) {
	entry := dl.WithField("source", source)
	if err != nil {
		entry.WithError(err).Error("Dataset cache refresh failed")
		return
	}
	entry.Info("Dataset cache refreshed")
}

// LogCacheStats logs cache occupancy and hit counters
func (dl *DatasetLogger) LogCacheStats(source string, items int, hits, misses uint64, ratio float64) {
	dl.WithFields(logrus.Fields{
		"source":    source,
		"items":     items,
		"hits":      hits,
		"misses":    misses,
		"hit_ratio": ratio,
	}).Debug("Dataset cache stats")
}
