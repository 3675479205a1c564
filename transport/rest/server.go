package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the REST routes.
func NewRouter(logger *slog.Logger, uMatch matchUseCase) http.Handler {
	h := &handlers{
		logger: logger.With("component", "rest"),
		uMatch: uMatch,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)

	r.Route("/mode", func(r chi.Router) {
		r.Get("/", h.getMode)
		r.Put("/", h.setMode)
		r.Post("/toggle", h.toggleMode)
	})

	r.Route("/matches", func(r chi.Router) {
		r.Post("/", h.newMatch)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getMatch)
			r.Delete("/", h.abandonMatch)
			r.Post("/turns", h.makeTurn)
		})
	})

	return r
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, logger *slog.Logger, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown server", "component", "rest", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
