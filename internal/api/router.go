package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Menuscore/internal/config"
	"github.com/MikeSquared-Agency/Menuscore/internal/dataset"
)

// maxUploadBytes caps a CSV upload.
const maxUploadBytes = 32 << 20

func NewRouter(svc *dataset.Service, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.RateLimitPerMinute))
	r.Use(chiMiddleware.Timeout(30 * time.Second))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type", ClientIDHeader},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300,
		}))
	}

	menu := NewMenuHandler(svc)
	scores := NewScoresHandler(svc)
	datasets := NewDatasetsHandler(svc, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/restaurants", menu.Restaurants)
		r.Get("/restaurants/{name}/items", menu.Items)
		r.Get("/stats", menu.Stats)

		r.Get("/scores", scores.List)
		r.Get("/scores/{restaurant}", scores.Get)

		r.Get("/datasets/current", datasets.Current)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Post("/datasets", datasets.Create)
		})
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

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
