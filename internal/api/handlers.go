// Package api exposes the analyses over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/odds-lab/internal/backtest"
	"github.com/yourusername/odds-lab/internal/classifier"
	"github.com/yourusername/odds-lab/internal/datasource"
	"github.com/yourusername/odds-lab/internal/filter"
	"github.com/yourusername/odds-lab/internal/metrics"
	"github.com/yourusername/odds-lab/internal/models"
	"github.com/yourusername/odds-lab/internal/service"
)

const maxBodyBytes = 1 << 20

// OddsFilterRequest is the optional odds range of a backtest request
type OddsFilterRequest struct {
	Side string          `json:"side" validate:"required,oneof=home away"`
	Min  decimal.Decimal `json:"min"`
	Max  decimal.Decimal `json:"max"`
}

// BacktestRequest is the body of POST /api/v1/football/backtest. Omitted
// fields take the server defaults.
type BacktestRequest struct {
	Market          string             `json:"market" validate:"omitempty,oneof=home draw away 1 x 2 X"`
	InitialBankroll *decimal.Decimal   `json:"initial_bankroll"`
	StakeMode       string             `json:"stake_mode" validate:"omitempty,oneof=fixed percent"`
	StakeValue      *decimal.Decimal   `json:"stake_value"`
	Leagues         []string           `json:"leagues" validate:"omitempty,dive,required"`
	OddsFilter      *OddsFilterRequest `json:"odds_filter" validate:"omitempty"`
	ByLeague        bool               `json:"by_league"`
	HistogramBins   int                `json:"histogram_bins" validate:"gte=0,lte=500"`
}

// ClassifyRequest is the body of POST /api/v1/tennis/classify
type ClassifyRequest struct {
	Min *decimal.Decimal `json:"min"`
	Max *decimal.Decimal `json:"max"`
}

// ErrorResponse is returned with every non-2xx status
type ErrorResponse struct {
	Error string `json:"error"`
}

// LeaguesResponse lists the leagues of the football dataset
type LeaguesResponse struct {
	Leagues []string `json:"leagues"`
}

// Handler serves the analysis endpoints
type Handler struct {
	svc      *service.AnalysisService
	defaults backtest.Defaults
	validate *validator.Validate
	logger   *logrus.Entry
}

// NewHandler creates the API handler. defaults fills omitted backtest fields.
func NewHandler(svc *service.AnalysisService, defaults backtest.Defaults, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Handler{
		svc:      svc,
		defaults: defaults,
		validate: validator.New(),
		logger:   log.WithField("component", "api"),
	}
}

// Register mounts the routes on mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("GET /api/v1/football/leagues", instrument("/api/v1/football/leagues", h.handleLeagues))
	mux.Handle("POST /api/v1/football/backtest", instrument("/api/v1/football/backtest", h.handleBacktest))
	mux.Handle("POST /api/v1/tennis/classify", instrument("/api/v1/tennis/classify", h.handleClassify))
}

func (h *Handler) handleLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.svc.Leagues(r.Context())
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	if leagues == nil {
		leagues = []string{}
	}
	writeJSON(w, http.StatusOK, LeaguesResponse{Leagues: leagues})
}

func (h *Handler) handleBacktest(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	svcReq, err := h.toServiceRequest(req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := h.svc.Backtest(r.Context(), svcReq)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) toServiceRequest(req BacktestRequest) (service.BacktestRequest, error) {
	cfg := h.defaults.Config
	if req.Market != "" {
		market, err := models.ParseMarket(req.Market)
		if err != nil {
			return service.BacktestRequest{}, err
		}
		cfg.Market = market
	}
	if req.InitialBankroll != nil {
		cfg.InitialBankroll = *req.InitialBankroll
	}
	if req.StakeMode != "" || req.StakeValue != nil {
		var mode backtest.StakeMode
		if req.StakeMode != "" {
			parsed, err := backtest.ParseStakeMode(req.StakeMode)
			if err != nil {
				return service.BacktestRequest{}, err
			}
			mode = parsed
		}
		cfg.Stake = h.defaults.WithStake(mode, req.StakeValue)
	}

	criteria := filter.Criteria{Leagues: filter.SelectLeagues(req.Leagues...)}
	if req.OddsFilter != nil {
		side, err := filter.ParseSide(req.OddsFilter.Side)
		if err != nil {
			return service.BacktestRequest{}, err
		}
		odds, err := filter.NewOddsFilter(side, req.OddsFilter.Min, req.OddsFilter.Max)
		if err != nil {
			return service.BacktestRequest{}, err
		}
		criteria.Odds = &odds
	}

	return service.BacktestRequest{
		Config:        cfg,
		Criteria:      criteria,
		ByLeague:      req.ByLeague,
		HistogramBins: req.HistogramBins,
	}, nil
}

func (h *Handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	band := classifier.DefaultBand
	if req.Min != nil {
		band.Min = *req.Min
	}
	if req.Max != nil {
		band.Max = *req.Max
	}
	if err := band.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	c, err := h.svc.Classify(r.Context(), band)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// decodeJSON decodes the body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, models.ErrInvalidMarket),
		errors.Is(err, models.ErrInvalidStakeMode),
		errors.Is(err, models.ErrInvalidOdds),
		errors.Is(err, models.ErrZeroBankroll):
		return http.StatusBadRequest
	}
	switch datasource.ErrorCode(err) {
	case "":
		return http.StatusInternalServerError
	case datasource.ErrCodeNotConfigured, datasource.ErrCodeNotFound:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	entry := h.logger.WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records request count and latency per route
func instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.RecordHTTPRequest(route, strconv.Itoa(rec.status), time.Since(start).Seconds())
	})
}
