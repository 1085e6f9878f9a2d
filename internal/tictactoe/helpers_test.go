package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/require"
)

// scriptedQueue replays a fixed script; a nil entry is a tick on which the player sent nothing.
type scriptedQueue struct {
	playerID entity.PlayerID
	actions  []*entity.Action
}

func newScriptedQueue(playerID entity.PlayerID, actions ...*entity.Action) *scriptedQueue {
	return &scriptedQueue{
		playerID: playerID,
		actions:  actions,
	}
}

func (that *scriptedQueue) PlayerID() entity.PlayerID {
	return that.playerID
}

func (that *scriptedQueue) Pop() (entity.Action, bool) {
	if len(that.actions) == 0 {
		return entity.Action{}, false
	}

	action := that.actions[0]
	that.actions = that.actions[1:]
	if action == nil {
		return entity.Action{}, false
	}

	return *action, true
}

func some(action entity.Action) *entity.Action {
	return &action
}

func occupyAt(x, y int) entity.Action {
	return entity.Occupy(entity.NewCell(x, y))
}

// boardOf builds a board column by column: columns[x][y] is '0', '1' or '.'.
func boardOf(t *testing.T, columns ...string) entity.Board {
	t.Helper()
	require.Len(t, columns, entity.BoardSize)

	var board entity.Board
	for x, column := range columns {
		require.Len(t, column, entity.BoardSize)

		for y, mark := range column {
			switch mark {
			case '0':
				board.Set(entity.NewCell(x, y), 0)
			case '1':
				board.Set(entity.NewCell(x, y), 1)
			case '.':
			default:
				t.Fatalf("unknown mark %q", mark)
			}
		}
	}

	return board
}

func twoHumans() [entity.PlayerCount]entity.Player {
	return [entity.PlayerCount]entity.Player{
		entity.NewPlayer(0, entity.TypeLocalHuman),
		entity.NewPlayer(1, entity.TypeLocalHuman),
	}
}

// stateWithBoard is an in-round state of the default match length.
func stateWithBoard(board entity.Board) entity.State {
	state := entity.NewState(twoHumans(), entity.DefaultRounds)
	state.Board = board
	state.Phase = entity.PhaseInround
	state.RequiredReady = entity.PlayerSet{}

	return state
}

func newLogic(p0, p1 ActionQueue) *Logic {
	return NewLogic([entity.PlayerCount]ActionQueue{p0, p1})
}
