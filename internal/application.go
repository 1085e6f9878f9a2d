package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
	"github.com/rocketscienceinc/tictactoe-engine/transport/websocket"
)

const persistTimeout = 5 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	playerTypes, err := conf.Match.PlayerTypes()
	if err != nil {
		return fmt.Errorf("invalid match config: %w", err)
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	matchRepo := repository.NewMatchRepository(redisStorage.Connection)
	resultRepo := repository.NewResultRepository(redisStorage.Connection)

	seed := conf.Match.SeedOrNow(time.Now())
	manager := usecase.NewMatchManager(logger, matchRepo, resultRepo, usecase.MatchOptions{
		PlayerTypes: playerTypes,
		Rounds:      conf.Match.Rounds,
		BotDelay:    conf.Match.BotDelay,
		Seed:        seed,
	})

	log.Info("Match created", "match_id", manager.ID(), "players", conf.Match.Players, "seed", seed)

	// periodic snapshots, the match also persists itself when it ends
	scheduler := cron.New()
	if _, err = scheduler.AddFunc(conf.Match.SnapshotSchedule, func() {
		persistCtx, persistCancel := context.WithTimeout(ctx, persistTimeout)
		defer persistCancel()

		if persistErr := manager.Persist(persistCtx); persistErr != nil {
			log.Error("could not persist match snapshot", "error", persistErr)
		}
	}); err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", conf.Match.SnapshotSchedule, err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	// run match loop
	matchErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting match loop", "interval", conf.Match.TickInterval)
		if matchErr := manager.Run(ctx, conf.Match.TickInterval); matchErr != nil {
			log.Error("Match loop error", "error", matchErr)
			matchErrCh <- matchErr

			return
		}

		log.Info("Match loop stopped", "game_over", manager.IsGameOver())
	}()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, manager)); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, manager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-matchErrCh:
		return fmt.Errorf("match loop error: %w", err)
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")

		persistCtx, persistCancel := context.WithTimeout(context.Background(), persistTimeout)
		defer persistCancel()

		if err = manager.Persist(persistCtx); err != nil {
			log.Error("could not persist final match snapshot", "error", err)
		}

		return nil
	}
}
