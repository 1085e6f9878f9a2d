package payload

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingCell   = errors.New("cell is required")
)

// Match is the public view of a match.
type Match struct {
	ID        string           `json:"id"`
	State     entity.State     `json:"state"`
	Turn      *entity.PlayerID `json:"turn,omitempty"`
	GameOver  bool             `json:"game_over"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewMatch(match entity.Match) Match {
	view := Match{
		ID:        match.ID,
		State:     match.State,
		GameOver:  match.State.IsGameOver(),
		UpdatedAt: match.UpdatedAt,
	}

	if match.State.Phase == entity.PhaseInround {
		turn := match.State.Turn()
		view.Turn = &turn
	}

	return view
}

// Action is a player intent as sent by clients.
type Action struct {
	Player int          `json:"player"`
	Action string       `json:"action"`
	Cell   *entity.Cell `json:"cell,omitempty"`
}

// ToEntity does not range-check the cell, that is left to the match.
func (that *Action) ToEntity() (entity.Action, error) {
	switch entity.ActionKind(strings.ToLower(that.Action)) {
	case entity.ActionReady:
		return entity.Ready(), nil
	case entity.ActionSurrender:
		return entity.Surrender(), nil
	case entity.ActionOccupy:
		if that.Cell == nil {
			return entity.Action{}, ErrMissingCell
		}

		return entity.Action{Kind: entity.ActionOccupy, Cell: *that.Cell}, nil
	default:
		return entity.Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, that.Action)
	}
}
