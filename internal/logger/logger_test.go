package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLogger(t *testing.T) {
	log := NewLogger("debug", "json")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = NewLogger("not-a-level", "text")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestBacktestLoggerRunStarted(t *testing.T) {
	log, buf := setupTestLogger()
	backtestLogger := NewBacktestLogger(log)

	backtestLogger.LogRunStarted("run-1", "home", "fixed 100.00", "1000", 380)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "backtest", logEntry["component"])
	assert.Equal(t, "run-1", logEntry["run_id"])
	assert.Equal(t, float64(380), logEntry["matches"])
}

func TestBacktestLoggerRunCompleted(t *testing.T) {
	log, buf := setupTestLogger()
	backtestLogger := NewBacktestLogger(log)

	backtestLogger.LogRunCompleted("run-1", "1200", "20", 2, 1, 0.4)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "1200", logEntry["final_bankroll"])
	assert.Equal(t, float64(2), logEntry["bets_won"])
}

func TestBacktestLoggerRunFailed(t *testing.T) {
	log, buf := setupTestLogger()
	backtestLogger := NewBacktestLogger(log)

	backtestLogger.LogRunFailed("run-2", errors.New("boom"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "error", logEntry["level"])
	assert.Equal(t, "boom", logEntry["error"])
}

func TestBacktestLoggerLeagueSummaryBusted(t *testing.T) {
	log, buf := setupTestLogger()
	backtestLogger := NewBacktestLogger(log)

	backtestLogger.LogLeagueSummary("run-1", "SP1", "-100", "-200", 2, true)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, true, logEntry["busted"])
}

func TestBacktestLoggerClassification(t *testing.T) {
	log, buf := setupTestLogger()
	backtestLogger := NewBacktestLogger(log)

	backtestLogger.LogClassification("1.01", "100", true, 5, 0, 0)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, true, logEntry["default_band"])
	assert.Equal(t, float64(5), logEntry["total"])
}

func TestDatasetLogger(t *testing.T) {
	log, buf := setupTestLogger()
	datasetLogger := NewDatasetLogger(log)

	datasetLogger.LogRowSkipped("football.csv", 12, "invalid odds")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "dataset", logEntry["component"])
	assert.Equal(t, float64(12), logEntry["line"])

	buf.Reset()
	datasetLogger.LogCacheRefresh("file", errors.New("unreachable"))
	logEntry = parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "error", logEntry["level"])
}

func TestDatasetLoggerCacheStats(t *testing.T) {
	log, buf := setupTestLogger()
	datasetLogger := NewDatasetLogger(log)

	datasetLogger.LogCacheStats("file", 2, 3, 1, 0.75)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "debug", logEntry["level"])
	assert.Equal(t, float64(2), logEntry["items"])
	assert.Equal(t, float64(3), logEntry["hits"])
	assert.Equal(t, float64(1), logEntry["misses"])
	assert.Equal(t, 0.75, logEntry["hit_ratio"])
}

func TestAuditLoggerImport(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogImport(
		"import-1",
		"football",
		"postgres",
		380,
		2,
		time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC),
	)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "audit", logEntry["component"])
	assert.Equal(t, float64(380), logEntry["rows_written"])
}

func TestAuditLoggerTruncate(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogTruncate("tennis", "sqlite", 120)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "tennis", logEntry["sport"])
}

func BenchmarkBacktestLoggerRunCompleted(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	backtestLogger := NewBacktestLogger(log)

	for i := 0; i < b.N; i++ {
		backtestLogger.LogRunCompleted("run-1", "1200", "20", 2, 1, 0.4)
	}
}
