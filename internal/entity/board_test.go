package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_SetAndGet(t *testing.T) {
	t.Run("Empty board has no occupants", func(t *testing.T) {
		// Given: a zero board
		var board Board

		// When: reading every cell
		// Then: none of them is occupied
		for x := range BoardSize {
			for y := range BoardSize {
				_, ok := board.Get(NewCell(x, y))
				assert.False(t, ok)
			}
		}
		assert.Len(t, board.EmptyCells(), BoardSize*BoardSize)
	})

	t.Run("Set stores the player", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: player 1 takes (2, 0)
		board.Set(NewCell(2, 0), 1)

		// Then: the cell belongs to player 1
		owner, ok := board.Get(NewCell(2, 0))
		require.True(t, ok)
		assert.Equal(t, PlayerID(1), owner)
		assert.NotContains(t, board.EmptyCells(), NewCell(2, 0))
	})

	t.Run("Set panics on an occupied cell", func(t *testing.T) {
		// Given: a board with (1, 1) taken
		var board Board
		board.Set(NewCell(1, 1), 0)

		// When: taking it again
		// Then: it panics
		assert.Panics(t, func() { board.Set(NewCell(1, 1), 1) })
	})

	t.Run("Clear empties the board", func(t *testing.T) {
		// Given: a board with a few marks
		var board Board
		board.Set(NewCell(0, 0), 0)
		board.Set(NewCell(2, 2), 1)

		// When: clearing it
		board.Clear()

		// Then: every cell is empty again
		assert.Equal(t, Board{}, board)
	})
}

func TestNewCell(t *testing.T) {
	t.Run("Accepts cells inside the board", func(t *testing.T) {
		assert.Equal(t, Cell{X: 2, Y: 1}, NewCell(2, 1))
	})

	t.Run("Panics outside the board", func(t *testing.T) {
		assert.Panics(t, func() { NewCell(3, 0) })
		assert.Panics(t, func() { NewCell(0, -1) })
		assert.False(t, Cell{X: 0, Y: 3}.Valid())
	})
}

func TestBoard_EmptyCellsOrder(t *testing.T) {
	// Given: a board where only (0, 1) is taken
	var board Board
	board.Set(NewCell(0, 1), 0)

	// When: listing empty cells
	cells := board.EmptyCells()

	// Then: they are walked column by column
	require.Len(t, cells, 8)
	assert.Equal(t, []Cell{{0, 0}, {0, 2}, {1, 0}}, cells[:3])
}

func TestBoard_JSON(t *testing.T) {
	t.Run("Marks are row-major", func(t *testing.T) {
		// Given: X at (2, 0) and O at (0, 1)
		var board Board
		board.Set(NewCell(2, 0), 0)
		board.Set(NewCell(0, 1), 1)

		// When: marshaling
		data, err := json.Marshal(board)

		// Then: the marks land at y*3+x
		require.NoError(t, err)
		assert.JSONEq(t, `["","","X","O","","","","",""]`, string(data))
	})

	t.Run("Unmarshal restores the board", func(t *testing.T) {
		// Given: a serialized board
		data := []byte(`["X","","","","O","","","","X"]`)

		// When: unmarshaling
		var board Board
		err := json.Unmarshal(data, &board)

		// Then: owners are restored
		require.NoError(t, err)
		owner, ok := board.Get(NewCell(1, 1))
		require.True(t, ok)
		assert.Equal(t, PlayerID(1), owner)
		owner, ok = board.Get(NewCell(2, 2))
		require.True(t, ok)
		assert.Equal(t, PlayerID(0), owner)
	})

	t.Run("Unknown marks are rejected", func(t *testing.T) {
		var board Board
		err := json.Unmarshal([]byte(`["Z","","","","","","","",""]`), &board)

		assert.ErrorIs(t, err, ErrUnknownMark)
	})
}
