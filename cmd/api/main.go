//	@title			Image Host API
//	@version		1.0
//	@description	Uploads files to object storage and serves or deletes them by generated identifier.
//
//	@host		localhost:8000
//	@BasePath	/

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/imagehost/service/internal/config"
	"github.com/imagehost/service/internal/server"
	"github.com/imagehost/service/internal/storage"

	_ "github.com/imagehost/service/docs/swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	store, err := storage.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.NewRouter(cfg, store),
		// Uploads are buffered and retrievals streamed, so allow slow clients.
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithFields(log.Fields{
			"port":   cfg.Port,
			"env":    cfg.AppEnv,
			"driver": cfg.StorageDriver,
		}).Infof("App is listening on port %s. Started at %s", cfg.Port, time.Now().Format(time.RFC3339))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Info("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Info("server stopped")
}
