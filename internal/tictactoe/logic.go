package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Logic is the transition function of a match. Every contract violation panics:
// by the time an action reaches Logic it must already be legal.
type Logic struct {
	queues [entity.PlayerCount]ActionQueue
}

// NewLogic panics unless queues[i] belongs to player i.
func NewLogic(queues [entity.PlayerCount]ActionQueue) *Logic {
	for i, queue := range queues {
		if queue == nil {
			panic(fmt.Sprintf("action queue %d is nil", i))
		}

		if queue.PlayerID().Index() != i {
			panic(fmt.Sprintf("action queue at index %d belongs to player %d", i, queue.PlayerID()))
		}
	}

	return &Logic{
		queues: queues,
	}
}

// Advance drains the queued actions that apply to the current phase.
func (that *Logic) Advance(state *entity.State) {
	switch state.Phase {
	case entity.PhaseBeginning, entity.PhaseOutround:
		that.advanceLobby(state)
	case entity.PhaseInround:
		that.advanceRound(state)
	default:
		panic(fmt.Sprintf("unknown phase %q", state.Phase))
	}
}

// advanceLobby takes at most one action from every player that still has to get ready.
func (that *Logic) advanceLobby(state *entity.State) {
	for _, playerID := range state.PlayerIDs() {
		if !state.RequiredReady.Contains(playerID) {
			continue
		}

		action, ok := that.queues[playerID].Pop()
		if !ok {
			continue
		}

		if state.IsGameOver() {
			panic(fmt.Sprintf("the game ended too soon: player %d sent %s", playerID, action))
		}

		if action.Kind != entity.ActionReady {
			panic(fmt.Sprintf("unexpected action %s from player %d in phase %s", action, playerID, state.Phase))
		}

		ready(state, playerID)
	}
}

// advanceRound applies the actions of the player to move until the turn passes.
func (that *Logic) advanceRound(state *entity.State) {
	playerID := state.Turn()

	for {
		action, ok := that.queues[playerID].Pop()
		if !ok {
			return
		}

		if state.IsGameOver() {
			panic(fmt.Sprintf("the game ended too soon: player %d sent %s", playerID, action))
		}

		switch action.Kind {
		case entity.ActionSurrender:
			surrender(state)
		case entity.ActionOccupy:
			occupy(state, action.Cell)
		default:
			panic(fmt.Sprintf("unexpected action %s from player %d in phase %s", action, playerID, state.Phase))
		}

		if state.Turn() != playerID || state.Phase != entity.PhaseInround {
			return
		}
	}
}

func ready(state *entity.State, playerID entity.PlayerID) {
	state.RequiredReady.Remove(playerID)
	if state.RequiredReady.IsEmpty() {
		startRound(state)
	}
}

func surrender(state *entity.State) {
	state.Player(state.Turn().Other()).Wins++
	endRound(state)
}

func occupy(state *entity.State, cell entity.Cell) {
	if !cell.Valid() {
		panic(fmt.Sprintf("cell %s out of range", cell))
	}

	state.Board.Set(cell, state.Turn())

	if line, ok := CheckWin(&state.Board, cell); ok {
		state.Player(state.Turn()).Wins++
		state.WinLine = &line
		endRound(state)

		return
	}

	// draw
	if state.Step == state.Board.Size()*state.Board.Size()-1 {
		endRound(state)

		return
	}

	state.Step++
}

func startRound(state *entity.State) {
	switch state.Phase {
	case entity.PhaseBeginning:
	case entity.PhaseOutround:
		state.Step = 0
		state.Round++
		state.Board.Clear()
		state.WinLine = nil
	default:
		panic(fmt.Sprintf("cannot start a round from phase %s", state.Phase))
	}

	state.Phase = entity.PhaseInround
}

func endRound(state *entity.State) {
	state.Phase = entity.PhaseOutround
	if !state.IsGameOver() {
		state.RequiredReady = entity.AllPlayers()
	}
}

// CheckWin returns the first complete line through the last occupied cell, checking
// the row, the column and then whichever diagonals pass through the cell.
func CheckWin(board *entity.Board, cell entity.Cell) (entity.Line, bool) {
	owner, ok := board.Get(cell)
	if !ok {
		return entity.Line{}, false
	}

	candidates := []entity.Line{entity.Horizontal(cell.Y), entity.Vertical(cell.X)}
	if diagonal := entity.Diagonal1(); diagonal.Contains(cell) {
		candidates = append(candidates, diagonal)
	}

	if diagonal := entity.Diagonal2(); diagonal.Contains(cell) {
		candidates = append(candidates, diagonal)
	}

	for _, line := range candidates {
		if isOwnedBy(board, line, owner) {
			return line, true
		}
	}

	return entity.Line{}, false
}

func isOwnedBy(board *entity.Board, line entity.Line, owner entity.PlayerID) bool {
	for _, cell := range line.Cells() {
		if id, ok := board.Get(cell); !ok || id != owner {
			return false
		}
	}

	return true
}
