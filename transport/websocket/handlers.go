package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coder/websocket"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/transport/payload"
)

const (
	actionMatchState  = "match:state"
	actionMatchAction = "match:action"
)

var ErrUnknownMessage = errors.New("unknown message action")

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ResponsePayload struct {
	Match    *payload.Match `json:"match,omitempty"`
	Accepted bool           `json:"accepted,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func newMatchView(match entity.Match) *payload.Match {
	view := payload.NewMatch(match)

	return &view
}

func (that *Server) handleMatchState(ctx context.Context, conn *websocket.Conn, _ *Message) error {
	return that.sendMatch(ctx, conn, that.match.Snapshot())
}

func (that *Server) handleMatchAction(ctx context.Context, conn *websocket.Conn, message *Message) error {
	log := that.logger.With("method", "handleMatchAction")

	var req payload.Action
	if err := json.Unmarshal(message.Payload, &req); err != nil {
		that.sendError(ctx, conn, message.Action, fmt.Errorf("failed to unmarshal payload: %w", err))
		return nil
	}

	action, err := req.ToEntity()
	if err != nil {
		that.sendError(ctx, conn, message.Action, err)
		return nil
	}

	if err = that.match.Submit(req.Player, action); err != nil {
		log.Debug("action rejected", "player", req.Player, "action", action.String(), "error", err)
		that.sendError(ctx, conn, message.Action, err)

		return nil
	}

	return that.sendPayload(ctx, conn, message.Action, ResponsePayload{Accepted: true})
}
