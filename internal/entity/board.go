package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const BoardSize = 3

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

var ErrUnknownMark = errors.New("unknown board mark")

type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewCell panics when the coordinates fall outside the board.
func NewCell(x, y int) Cell {
	cell := Cell{X: x, Y: y}
	if !cell.Valid() {
		panic(fmt.Sprintf("cell (%d, %d) out of range [0, %d)", x, y, BoardSize))
	}

	return cell
}

func (that Cell) Valid() bool {
	return that.X >= 0 && that.X < BoardSize && that.Y >= 0 && that.Y < BoardSize
}

func (that Cell) String() string {
	return fmt.Sprintf("(%d, %d)", that.X, that.Y)
}

// Board is indexed as cells[x][y]. Zero value is an empty board.
type Board struct {
	cells [BoardSize][BoardSize]occupant
}

// occupant is zero for an empty cell, otherwise PlayerID+1.
type occupant int8

func (that *Board) Size() int {
	return BoardSize
}

func (that *Board) Get(cell Cell) (PlayerID, bool) {
	value := that.cells[cell.X][cell.Y]
	if value == 0 {
		return 0, false
	}

	return PlayerID(value - 1), true
}

// Set panics if the cell is already taken.
func (that *Board) Set(cell Cell, id PlayerID) {
	if owner, ok := that.Get(cell); ok {
		panic(fmt.Sprintf("cell %s already occupied by player %d", cell, owner))
	}

	that.cells[cell.X][cell.Y] = occupant(id + 1)
}

func (that *Board) Clear() {
	that.cells = [BoardSize][BoardSize]occupant{}
}

// EmptyCells walks the board column by column.
func (that *Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, BoardSize*BoardSize)
	for x := range BoardSize {
		for y := range BoardSize {
			if that.cells[x][y] == 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}

	return cells
}

// Marks renders the board row-major, index y*BoardSize+x.
func (that *Board) Marks() [BoardSize * BoardSize]string {
	var marks [BoardSize * BoardSize]string
	for x := range BoardSize {
		for y := range BoardSize {
			if id, ok := that.Get(Cell{X: x, Y: y}); ok {
				marks[y*BoardSize+x] = id.Mark()
			}
		}
	}

	return marks
}

// BoardFromMarks is the inverse of Marks.
func BoardFromMarks(marks [BoardSize * BoardSize]string) (Board, error) {
	var board Board
	for i, mark := range marks {
		cell := Cell{X: i % BoardSize, Y: i / BoardSize}

		switch mark {
		case EmptyCell:
		case PlayerX:
			board.Set(cell, 0)
		case PlayerO:
			board.Set(cell, 1)
		default:
			return Board{}, fmt.Errorf("%w: %q at %s", ErrUnknownMark, mark, cell)
		}
	}

	return board, nil
}

func (that Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Marks())
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var marks [BoardSize * BoardSize]string
	if err := json.Unmarshal(data, &marks); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	board, err := BoardFromMarks(marks)
	if err != nil {
		return err
	}

	*that = board

	return nil
}
