// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/imagehost/service/internal/config"
	"github.com/imagehost/service/internal/image"
	"github.com/imagehost/service/internal/metrics"
	appMiddleware "github.com/imagehost/service/internal/middleware"
	"github.com/imagehost/service/internal/objects"
	"github.com/imagehost/service/internal/storage"
)

// NewRouter wires handlers over store and returns the root http.Handler.
func NewRouter(cfg *config.Config, store *storage.Client) http.Handler {
	imageSvc := image.NewService(store, cfg.APIPrefix, cfg.ObjectACL)
	imageHandler := image.NewHandler(imageSvc, store, cfg.MaxUploadBytes)
	objectsHandler := objects.NewHandler(store)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedHosts,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Post("/upload-image", imageHandler.Upload)
	r.Get("/image/{name}", imageHandler.Get)
	r.Delete("/image/{name}", imageHandler.Delete)
	r.Get("/objects/list", objectsHandler.List)

	return r
}
