package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error {
	return p.err
}

type echoRoutes struct{}

func (echoRoutes) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/echo", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("echo"))
	})
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv := NewServer(Config{ServiceName: "odds-lab", Version: "test", Logger: quietLogger()})

	rec := get(t, srv.Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "odds-lab", resp.Service)
	assert.Equal(t, "test", resp.Version)

	assert.Equal(t, http.StatusOK, get(t, srv.Handler(), "/live").Code)
}

func TestReadyEndpoint(t *testing.T) {
	srv := NewServer(Config{
		ServiceName: "odds-lab",
		Logger:      quietLogger(),
		Checks:      map[string]Pinger{"database": fakePinger{}},
	})

	rec := get(t, srv.Handler(), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	srv.SetReady(true)
	assert.True(t, srv.IsReady())
	rec = get(t, srv.Handler(), "/ready")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Checks["database"])
}

func TestReadyEndpointFailingCheck(t *testing.T) {
	srv := NewServer(Config{
		Logger: quietLogger(),
		Checks: map[string]Pinger{"database": fakePinger{err: errors.New("connection refused")}},
	})
	srv.SetReady(true)

	rec := get(t, srv.Handler(), "/ready")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Contains(t, resp.Checks["database"], "connection refused")
}

func TestRoutesAndMetrics(t *testing.T) {
	srv := NewServer(Config{
		Logger:      quietLogger(),
		Routes:      []Registrar{echoRoutes{}},
		MetricsPath: "/metrics",
	})

	rec := get(t, srv.Handler(), "/api/v1/echo")
	assert.Equal(t, "echo", rec.Body.String())

	rec = get(t, srv.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)

	noMetrics := NewServer(Config{Logger: quietLogger()})
	assert.Equal(t, http.StatusNotFound, get(t, noMetrics.Handler(), "/metrics").Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	srv := NewServer(Config{Port: 18099, Logger: quietLogger(), ShutdownTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
