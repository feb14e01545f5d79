package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/service"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
	"github.com/rocketscienceinc/tictactoe/transport/rest"
	"github.com/rocketscienceinc/tictactoe/transport/terminal"
	"github.com/rocketscienceinc/tictactoe/transport/websocket"
)

var ErrUnknownPresentation = errors.New("unknown presentation")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	engine, err := newGameEngine(logger, conf)
	if err != nil {
		return err
	}

	switch conf.Presentation {
	case config.PresentationTerminal:
		return terminal.New(logger, engine).Run(ctx)
	case config.PresentationServer:
		return runServers(ctx, logger, conf, engine)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPresentation, conf.Presentation)
	}
}

func newGameEngine(logger *slog.Logger, conf *config.Config) (*usecase.GameEngine, error) {
	mode, err := entity.ParseMode(conf.Game.Mode)
	if err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return usecase.NewGameEngine(
		logger,
		service.NewBotService(nil),
		usecase.WithMode(mode),
		usecase.WithComputerDelay(conf.Game.ComputerDelay),
	), nil
}

func runServers(ctx context.Context, logger *slog.Logger, conf *config.Config, engine *usecase.GameEngine) error {
	log := logger.With("component", "app")

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, engine).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, engine).Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
