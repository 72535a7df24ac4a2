package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery/api"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery/config"
)

// ServerOptions holds http-server-level knobs. Gallery configuration (port,
// database, image store) comes from the config package.
type ServerOptions struct {
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

func main() {
	seed := flag.Bool("seed", false, "populate the repository with demo gallery data")
	flag.Parse()

	var opts ServerOptions
	if err := cleanenv.ReadEnv(&opts); err != nil {
		slog.Error("Failed to read server options", "err", err)
		os.Exit(1)
	}

	serverConfig, err := config.Load(config.WithEnv(""))
	if err != nil {
		slog.Error("Failed to load server configuration", "err", err)
		os.Exit(1)
	}

	svc, err := serverConfig.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "err", err)
		os.Exit(1)
	}

	if *seed {
		if err := simplegallery.Seed(context.Background(), svc); err != nil {
			slog.Error("Failed to seed demo data", "err", err)
			os.Exit(1)
		}
		slog.Info("Seeded demo gallery data")
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: routes(svc, serverConfig, opts.RequestTimeout),
	}

	go func() {
		slog.Info("Simple Gallery Server starting",
			"port", serverConfig.Port,
			"env", serverConfig.Environment,
			"database", serverConfig.DatabaseType,
			"image_store", serverConfig.ImageStore.Type)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

// routes sets up the HTTP routes
func routes(svc simplegallery.Service, serverConfig *config.ServerConfig, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(requestTimeout))

	// CORS for development
	if serverConfig.Environment == "development" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

				if r.Method == "OPTIONS" {
					w.WriteHeader(http.StatusOK)
					return
				}

				next.ServeHTTP(w, r)
			})
		})
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/pages", api.NewPagesHandler(svc).Routes())
		r.Mount("/rows", api.NewRowsHandler(svc).Routes())
		r.Mount("/images", api.NewImagesHandler(svc).Routes())
		r.Mount("/share-links", api.NewShareLinksHandler(svc).Routes())
		r.Mount("/upload", api.NewUploadHandler(svc).Routes())
	})

	return r
}
