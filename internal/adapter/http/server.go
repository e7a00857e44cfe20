package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/weather-forecast-etl/internal/adapter/provider"
	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// ForecastService produces a normalized forecast for a requested location.
type ForecastService interface {
	Forecast(ctx context.Context, loc domain.Location) (domain.NormalizedWeatherData, error)
}

// HistoryStore returns archived snapshots for a location, newest first.
type HistoryStore interface {
	History(ctx context.Context, location string, limit int) ([]domain.NormalizedWeatherData, error)
}

// Server exposes health, readiness, metrics, and forecast HTTP endpoints.
type Server struct {
	httpServer *http.Server
	forecasts  ForecastService
	history    HistoryStore
	logger     *slog.Logger
}

// NewServer creates an HTTP server. The history route is registered only when
// history is non-nil.
func NewServer(addr string, ready sharedobs.ReadinessChecker, forecasts ForecastService, history HistoryStore, logger *slog.Logger) *Server {
	router := mux.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		forecasts: forecasts,
		history:   history,
		logger:    logger,
	}

	router.HandleFunc("/healthz", sharedobs.LivenessHandler()).Methods(http.MethodGet)
	router.HandleFunc("/readyz", sharedobs.ReadinessHandler(ready)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/weather").Subrouter()
	api.HandleFunc("/forecast/{location}", s.handleForecast).Methods(http.MethodGet)
	if history != nil {
		api.HandleFunc("/history/{location}", s.handleHistory).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	loc := domain.Location{Name: mux.Vars(r)["location"]}

	var err error
	if loc.Latitude, err = queryFloat(r, "lat"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid lat")
		return
	}
	if loc.Longitude, err = queryFloat(r, "lon"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid lon")
		return
	}

	data, err := s.forecasts.Forecast(r.Context(), loc)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, provider.ErrLocationNotFound) {
			status = http.StatusNotFound
		}
		s.logger.Warn("forecast request failed",
			"location", loc.Name,
			"status", status,
			"error", err,
		)
		writeError(w, status, err.Error())
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, data)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	location := mux.Vars(r)["location"]

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxHistoryLimit {
			writeError(w, http.StatusBadRequest, "limit must be 1-100")
			return
		}
		limit = n
	}

	snapshots, err := s.history.History(r.Context(), location, limit)
	if err != nil {
		s.logger.Error("history query failed", "location", location, "error", err)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, snapshots)
}

// queryFloat parses an optional float query parameter; absent means zero.
func queryFloat(r *http.Request, key string) (float64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
