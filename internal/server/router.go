package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Health           HealthService
	API              *APIHandlers
	AllowedOrigins   []string
	AllowCredentials bool
}

// NewRouter wires the HTTP routes exposed by the backend API.
func NewRouter(logger *slog.Logger, deps RouterDependencies) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := map[string]any{
			"status": "ok",
		}

		if deps.Health != nil {
			if err := deps.Health.Probe(ctx); err != nil {
				logger.Error("health probe failed", "error", err)
				status = http.StatusServiceUnavailable
				payload["status"] = "degraded"
				payload["error"] = err.Error()
			}
		}

		respondJSON(w, status, payload)
	}).Methods(http.MethodGet)

	if deps.API != nil {
		api := router.PathPrefix("/api").Subrouter()
		api.HandleFunc("/routes", deps.API.handleRoutes).Methods(http.MethodGet)
		api.HandleFunc("/cities", deps.API.handleCities).Methods(http.MethodGet)
		api.HandleFunc("/route", deps.API.handleRoute).Methods(http.MethodGet)
		api.HandleFunc("/round-trip", deps.API.handleRoundTrip).Methods(http.MethodGet)
		api.HandleFunc("/multi-city", deps.API.handleMultiCity).Methods(http.MethodGet)
		api.HandleFunc("/update-flight-data", deps.API.handleUpdateFlightData).Methods(http.MethodPost)
		api.HandleFunc("/reload", deps.API.handleReload).Methods(http.MethodPost)
	}

	handler := http.Handler(loggingMiddleware(logger, router))
	if len(deps.AllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   deps.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: deps.AllowCredentials,
		}).Handler(handler)
	}
	return handler
}

func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// ParseAllowedOrigins splits the comma-separated origin whitelist from the
// environment into the slice the CORS middleware expects.
func ParseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(csv, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
