package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger records writes to the match store.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogImport logs a completed dataset import.
func (al *AuditLogger) LogImport(importID, sport, target string, rowsWritten, rowsSkipped int, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"import_id":    importID,
		"sport":        sport,
		"target":       target,
		"rows_written": rowsWritten,
		"rows_skipped": rowsSkipped,
		"timestamp":    timestamp.Unix(),
	}).Info("Dataset import recorded")
}

// LogImportFailure logs an import that was rolled back.
func (al *AuditLogger) LogImportFailure(importID, sport, target string, err error) {
	al.WithFields(logrus.Fields{
		"import_id": importID,
		"sport":     sport,
		"target":    target,
	}).WithError(err).Error("Dataset import failed")
}

// LogTruncate logs removal of previously imported rows.
func (al *AuditLogger) LogTruncate(sport, target string, rowsDeleted int64) {
	al.WithFields(logrus.Fields{
		"sport":        sport,
		"target":       target,
		"rows_deleted": rowsDeleted,
	}).Warn("Match store truncated")
}
