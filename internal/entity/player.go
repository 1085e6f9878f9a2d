package entity

import (
	"errors"
	"fmt"
	"strings"
)

// PlayerCount is the fixed number of seats in a match.
const PlayerCount = 2

const (
	TypeLocalHuman PlayerType = "local-human"
	TypeLocalAI    PlayerType = "local-ai"
	TypeRemote     PlayerType = "remote"
)

var ErrUnknownPlayerType = errors.New("unknown player type")

// PlayerID is the seat index of a player, always in [0, PlayerCount).
type PlayerID int

// NewPlayerID panics when idx is not a valid seat.
func NewPlayerID(idx int) PlayerID {
	if idx < 0 || idx >= PlayerCount {
		panic(fmt.Sprintf("player id %d out of range [0, %d)", idx, PlayerCount))
	}

	return PlayerID(idx)
}

func (that PlayerID) Index() int {
	return int(that)
}

// Other returns the opponent seat.
func (that PlayerID) Other() PlayerID {
	return NewPlayerID(PlayerCount - 1 - int(that))
}

func (that PlayerID) Mark() string {
	if that == 0 {
		return PlayerX
	}

	return PlayerO
}

type PlayerType string

// ParsePlayerType accepts the canonical names plus the short config aliases.
func ParsePlayerType(value string) (PlayerType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "human", string(TypeLocalHuman):
		return TypeLocalHuman, nil
	case "ai", "bot", string(TypeLocalAI):
		return TypeLocalAI, nil
	case string(TypeRemote):
		return TypeRemote, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlayerType, value)
	}
}

type Player struct {
	ID   PlayerID   `json:"id"`
	Type PlayerType `json:"type"`
	Wins int        `json:"wins"`
}

func NewPlayer(id PlayerID, playerType PlayerType) Player {
	return Player{
		ID:   id,
		Type: playerType,
	}
}

func (that *Player) Mark() string {
	return that.ID.Mark()
}

func (that *Player) IsBot() bool {
	return that.Type == TypeLocalAI
}

func (that *Player) IsHuman() bool {
	return that.Type == TypeLocalHuman
}
