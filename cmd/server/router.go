package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/cards-api/internal/api"
	apiMiddleware "github.com/phrazzld/cards-api/internal/api/middleware"
	"github.com/phrazzld/cards-api/internal/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readinessTimeout = 2 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	infoHandler := api.NewInfoHandler(app.config.Build, app.config.Contact)

	r.Route("/api/cards", func(r chi.Router) {
		r.Get("/fetch", cardHandler.FetchCard)
		r.Get("/build-info", infoHandler.BuildInfo)
		r.Get("/go-version", infoHandler.GoVersion)
		r.Get("/contact-info", infoHandler.ContactInfo)

		// Mutating routes
		r.Group(func(r chi.Router) {
			if app.jwtService != nil {
				r.Use(apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate)
			}
			r.Post("/create", cardHandler.CreateCard)
			r.Put("/update", cardHandler.UpdateCard)
			r.Delete("/delete", cardHandler.DeleteCard)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", slog.String("error", err.Error()))
		}
	})
	r.Get("/ready", app.handleReady)
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return r
}

// handleReady reports whether the card store backend is reachable.
func (app *application) handleReady(w http.ResponseWriter, r *http.Request) {
	if pinger, ok := app.cardStore.(store.Pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		if err := pinger.Ping(ctx); err != nil {
			app.logger.Warn("readiness check failed", slog.String("error", err.Error()))
			http.Error(w, "NOT READY", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("READY")); err != nil {
		app.logger.Error("Failed to write readiness response", slog.String("error", err.Error()))
	}
}
