package entity

import (
	"encoding/json"
	"fmt"
)

const DefaultRounds = 5

const (
	PhaseBeginning Phase = "beginning"
	PhaseInround   Phase = "inround"
	PhaseOutround  Phase = "outround"
)

type Phase string

// IsLobby reports whether the phase waits for players to get ready.
func (that Phase) IsLobby() bool {
	return that == PhaseBeginning || that == PhaseOutround
}

// PlayerSet is a set of seats, encoded in JSON as an ascending list of ids.
type PlayerSet struct {
	members [PlayerCount]bool
}

func AllPlayers() PlayerSet {
	var set PlayerSet
	for i := range PlayerCount {
		set.members[i] = true
	}

	return set
}

func (that *PlayerSet) Add(id PlayerID) {
	that.members[id] = true
}

func (that *PlayerSet) Remove(id PlayerID) {
	that.members[id] = false
}

func (that PlayerSet) Contains(id PlayerID) bool {
	return that.members[id]
}

func (that PlayerSet) Len() int {
	count := 0
	for _, member := range that.members {
		if member {
			count++
		}
	}

	return count
}

func (that PlayerSet) IsEmpty() bool {
	return that.Len() == 0
}

func (that PlayerSet) IDs() []PlayerID {
	ids := make([]PlayerID, 0, PlayerCount)
	for i, member := range that.members {
		if member {
			ids = append(ids, PlayerID(i))
		}
	}

	return ids
}

func (that PlayerSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.IDs())
}

func (that *PlayerSet) UnmarshalJSON(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("failed to unmarshal player set: %w", err)
	}

	*that = PlayerSet{}
	for _, id := range ids {
		if id < 0 || id >= PlayerCount {
			return fmt.Errorf("player id %d out of range", id)
		}

		that.members[id] = true
	}

	return nil
}

// State is the whole match snapshot. Only the game logic mutates it.
type State struct {
	Board         Board               `json:"board"`
	Players       [PlayerCount]Player `json:"players"`
	Phase         Phase               `json:"phase"`
	Rounds        int                 `json:"rounds"`
	Round         int                 `json:"round"`
	Step          int                 `json:"step"`
	RequiredReady PlayerSet           `json:"required_ready"`
	WinLine       *Line               `json:"win_line,omitempty"`
}

// NewState panics when a player sits at the wrong index or rounds is not positive.
func NewState(players [PlayerCount]Player, rounds int) State {
	for i, player := range players {
		if player.ID.Index() != i {
			panic(fmt.Sprintf("player at index %d has id %d", i, player.ID))
		}
	}

	if rounds <= 0 {
		panic(fmt.Sprintf("rounds must be positive, got %d", rounds))
	}

	return State{
		Players:       players,
		Phase:         PhaseBeginning,
		Rounds:        rounds,
		RequiredReady: AllPlayers(),
	}
}

// Turn alternates every step, and the opening seat alternates every round.
func (that *State) Turn() PlayerID {
	return PlayerID((that.Step + that.Round) % len(that.Players))
}

func (that *State) IsGameOver() bool {
	return that.Round == that.Rounds-1 && that.Phase == PhaseOutround
}

func (that *State) Player(id PlayerID) *Player {
	return &that.Players[id]
}

func (that *State) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, 0, len(that.Players))
	for _, player := range that.Players {
		ids = append(ids, player.ID)
	}

	return ids
}

// Leader returns the player with the most round wins, false on a tie.
func (that *State) Leader() (PlayerID, bool) {
	leader, best, count := PlayerID(0), -1, 0
	for _, player := range that.Players {
		switch {
		case player.Wins > best:
			leader, best, count = player.ID, player.Wins, 1
		case player.Wins == best:
			count++
		}
	}

	return leader, count == 1
}

// Clone returns a copy that shares nothing with the receiver.
func (that *State) Clone() State {
	clone := *that
	if that.WinLine != nil {
		line := *that.WinLine
		clone.WinLine = &line
	}

	return clone
}

func (that *State) Equal(other *State) bool {
	if (that.WinLine == nil) != (other.WinLine == nil) {
		return false
	}

	if that.WinLine != nil && *that.WinLine != *other.WinLine {
		return false
	}

	return that.Board == other.Board &&
		that.Players == other.Players &&
		that.Phase == other.Phase &&
		that.Rounds == other.Rounds &&
		that.Round == other.Round &&
		that.Step == other.Step &&
		that.RequiredReady == other.RequiredReady
}
