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

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameEngine interface {
	Snapshot() entity.Snapshot
	MakeTurn(cell int) entity.Snapshot
	Reset() entity.Snapshot
	ResetScores() entity.Snapshot
	SetMode(mode entity.Mode) entity.Snapshot
	ToggleMode() entity.Snapshot
}

type Server struct {
	logger *slog.Logger
	engine gameEngine
}

func New(logger *slog.Logger, engine gameEngine) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		engine: engine,
	}
}

// Routes - builds the HTTP router.
func (that *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/ping", pingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/game", that.handleGetGame)
		r.Post("/game/turn", that.handleTurn)
		r.Post("/game/reset", that.handleReset)
		r.Put("/game/mode", that.handleSetMode)
		r.Post("/game/mode/toggle", that.handleToggleMode)
		r.Post("/scores/reset", that.handleResetScores)
	})

	return r
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
