package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/transparenta/autoeval/internal/catalog"
	"github.com/transparenta/autoeval/internal/events"
	"github.com/transparenta/autoeval/internal/report"
	"github.com/transparenta/autoeval/internal/scoring"
	"github.com/transparenta/autoeval/internal/session"
)

func NewRouter(cat *catalog.Catalog, sessions *session.Manager, scorer *scoring.Scorer, reports *report.Builder, reportDir string, ev events.Client, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	sessionsHandler := NewSessionsHandler(sessions, cat, ev)
	catalogHandler := NewCatalogHandler(cat)
	assessment := NewAssessmentHandler(sessions, cat, scorer, reports, reportDir, ev)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", sessionsHandler.Create)
		r.Get("/sessions/{id}", sessionsHandler.Get)
		r.Delete("/sessions/{id}", sessionsHandler.Delete)

		r.Get("/catalog/items", catalogHandler.Items)
		r.Get("/catalog/categories", catalogHandler.Categories)
		r.Get("/catalog/scenarios", catalogHandler.Scenarios)

		r.Put("/sessions/{id}/items/{key}", assessment.Save)
		r.Get("/sessions/{id}/items/{key}", assessment.Answer)
		r.Get("/sessions/{id}/results", assessment.Results)
		r.Get("/sessions/{id}/findings", assessment.Findings)
		r.Post("/sessions/{id}/report", assessment.Export)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
