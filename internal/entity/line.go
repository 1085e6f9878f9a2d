package entity

import "fmt"

const (
	LineHorizontal LineKind = "horizontal"
	LineVertical   LineKind = "vertical"
	LineDiagonal1  LineKind = "diagonal1"
	LineDiagonal2  LineKind = "diagonal2"
)

type LineKind string

// Line is a row, a column or one of the two diagonals. Index is only meaningful
// for rows (y) and columns (x).
type Line struct {
	Kind  LineKind `json:"kind"`
	Index int      `json:"index"`
}

func Horizontal(y int) Line {
	return Line{Kind: LineHorizontal, Index: y}
}

func Vertical(x int) Line {
	return Line{Kind: LineVertical, Index: x}
}

// Diagonal1 runs from (0, 0) to (size-1, size-1).
func Diagonal1() Line {
	return Line{Kind: LineDiagonal1}
}

// Diagonal2 runs from (0, size-1) to (size-1, 0).
func Diagonal2() Line {
	return Line{Kind: LineDiagonal2}
}

func (that Line) Contains(cell Cell) bool {
	switch that.Kind {
	case LineHorizontal:
		return cell.Y == that.Index
	case LineVertical:
		return cell.X == that.Index
	case LineDiagonal1:
		return cell.X == cell.Y
	case LineDiagonal2:
		return cell.Y == BoardSize-1-cell.X
	default:
		return false
	}
}

func (that Line) Cells() [BoardSize]Cell {
	var cells [BoardSize]Cell
	for i := range BoardSize {
		switch that.Kind {
		case LineHorizontal:
			cells[i] = Cell{X: i, Y: that.Index}
		case LineVertical:
			cells[i] = Cell{X: that.Index, Y: i}
		case LineDiagonal1:
			cells[i] = Cell{X: i, Y: i}
		case LineDiagonal2:
			cells[i] = Cell{X: i, Y: BoardSize - 1 - i}
		}
	}

	return cells
}

func (that Line) String() string {
	switch that.Kind {
	case LineHorizontal, LineVertical:
		return fmt.Sprintf("%s(%d)", that.Kind, that.Index)
	default:
		return string(that.Kind)
	}
}
