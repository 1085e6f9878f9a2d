package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

type matchService interface {
	Snapshot() entity.Match
	Subscribe() (<-chan entity.Match, func())
	Submit(playerIdx int, action entity.Action) error
}

type handlerFunc func(ctx context.Context, conn *websocket.Conn, message *Message) error

// Server streams match snapshots to every connected client and accepts player actions.
type Server struct {
	logger *slog.Logger
	match  matchService

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, match matchService) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		match:  match,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionMatchState] = server.handleMatchState
	server.handlers[actionMatchAction] = server.handleMatchAction

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWebSocket)

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped with error: %w", err)
		}

		return nil
	}
}

func (that *Server) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWebSocket", "remote", r.RemoteAddr)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept connection", "error", err)
		return
	}
	defer conn.CloseNow()

	log.Info("WebSocket connection established")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	updates, unsubscribe := that.match.Subscribe()
	defer unsubscribe()

	go func() {
		defer cancel()
		that.readMessages(ctx, conn)
	}()

	if err = that.sendMatch(ctx, conn, that.match.Snapshot()); err != nil {
		log.Error("failed to send initial snapshot", "error", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("WebSocket connection closed")
			return
		case match, ok := <-updates:
			if !ok {
				log.Warn("client too slow, dropping")
				_ = conn.Close(websocket.StatusPolicyViolation, "client too slow")

				return
			}

			if err = that.sendMatch(ctx, conn, match); err != nil {
				log.Error("failed to send snapshot", "error", err)
				return
			}
		}
	}
}

// readMessages - processes messages from the client until the connection goes away.
func (that *Server) readMessages(ctx context.Context, conn *websocket.Conn) {
	log := that.logger.With("method", "readMessages")

	for {
		var message Message
		if err := wsjson.Read(ctx, conn, &message); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && ctx.Err() == nil {
				log.Debug("stopped reading", "error", err)
			}

			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			that.sendError(ctx, conn, message.Action, ErrUnknownMessage)
			continue
		}

		if err := handler(ctx, conn, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) send(ctx context.Context, conn *websocket.Conn, message *Message) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := wsjson.Write(ctx, conn, message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendMatch(ctx context.Context, conn *websocket.Conn, match entity.Match) error {
	return that.sendPayload(ctx, conn, actionMatchState, ResponsePayload{Match: newMatchView(match)})
}

func (that *Server) sendPayload(ctx context.Context, conn *websocket.Conn, action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return that.send(ctx, conn, &Message{Action: action, Payload: body})
}

func (that *Server) sendError(ctx context.Context, conn *websocket.Conn, action string, err error) {
	if sendErr := that.sendPayload(ctx, conn, action, ResponsePayload{Error: err.Error()}); sendErr != nil {
		that.logger.Error("failed to send error response", "method", "sendError", "error", sendErr)
	}
}
