package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine_Contains(t *testing.T) {
	tests := []struct {
		name string
		line Line
		cell Cell
		want bool
	}{
		{"horizontal 0 contains (1, 0)", Horizontal(0), NewCell(1, 0), true},
		{"horizontal 0 skips (0, 1)", Horizontal(0), NewCell(0, 1), false},
		{"horizontal 2 contains (0, 2)", Horizontal(2), NewCell(0, 2), true},
		{"horizontal 2 skips (2, 0)", Horizontal(2), NewCell(2, 0), false},
		{"vertical 0 contains (0, 1)", Vertical(0), NewCell(0, 1), true},
		{"vertical 0 skips (1, 0)", Vertical(0), NewCell(1, 0), false},
		{"vertical 2 contains (2, 0)", Vertical(2), NewCell(2, 0), true},
		{"vertical 2 skips (0, 2)", Vertical(2), NewCell(0, 2), false},
		{"diagonal1 contains (1, 1)", Diagonal1(), NewCell(1, 1), true},
		{"diagonal1 skips (2, 0)", Diagonal1(), NewCell(2, 0), false},
		{"diagonal2 contains (2, 0)", Diagonal2(), NewCell(2, 0), true},
		{"diagonal2 contains (1, 1)", Diagonal2(), NewCell(1, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.line.Contains(tt.cell))
		})
	}
}

func TestLine_Cells(t *testing.T) {
	t.Run("Every cell of a line is contained by it", func(t *testing.T) {
		// Given: all eight lines
		lines := []Line{Horizontal(0), Horizontal(1), Horizontal(2), Vertical(0), Vertical(1), Vertical(2), Diagonal1(), Diagonal2()}

		for _, line := range lines {
			// When: listing its cells
			// Then: Contains agrees with Cells
			for _, cell := range line.Cells() {
				assert.True(t, line.Contains(cell), "%s should contain %s", line, cell)
			}
		}
	})

	t.Run("Diagonal2 runs against the main diagonal", func(t *testing.T) {
		assert.Equal(t, [BoardSize]Cell{{0, 2}, {1, 1}, {2, 0}}, Diagonal2().Cells())
	})
}
