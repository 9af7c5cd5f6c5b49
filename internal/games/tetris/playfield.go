package tetris

import (
	"slices"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Playfield is the grid of settled cells. A cell holds core.ColorDefault
// when empty, otherwise the color of the piece that locked there.
type Playfield struct {
	width, height int
	cells         [][]core.Color
}

// NewPlayfield creates an empty width x height playfield.
func NewPlayfield(width, height int) *Playfield {
	f := &Playfield{width: width, height: height}
	f.cells = make([][]core.Color, height)
	for row := range f.cells {
		f.cells[row] = make([]core.Color, width)
	}
	return f
}

// Width returns the number of columns.
func (f *Playfield) Width() int { return f.width }

// Height returns the number of rows.
func (f *Playfield) Height() int { return f.height }

// At returns the color at (col, row), or ColorDefault out of bounds.
func (f *Playfield) At(col, row int) core.Color {
	if col < 0 || col >= f.width || row < 0 || row >= f.height {
		return core.ColorDefault
	}
	return f.cells[row][col]
}

// IsValid reports whether every cell is inside the side walls, above the floor,
// and not on a settled cell. Cells above the top edge are always accepted.
func (f *Playfield) IsValid(cells []Cell) bool {
	for _, c := range cells {
		if c.Col < 0 || c.Col >= f.width || c.Row >= f.height {
			return false
		}
		if c.Row >= 0 && !f.cells[c.Row][c.Col].IsEmpty() {
			return false
		}
	}
	return true
}

// Lock marks every cell with color. Placement must already be validated.
// Cells above the top edge are dropped.
func (f *Playfield) Lock(cells []Cell, color core.Color) {
	for _, c := range cells {
		if c.Row < 0 || c.Row >= f.height || c.Col < 0 || c.Col >= f.width {
			continue
		}
		f.cells[c.Row][c.Col] = color
	}
}

// FullRows returns the indices of rows with no empty cell, ascending.
func (f *Playfield) FullRows() []int {
	var rows []int
	for row, line := range f.cells {
		if !slices.ContainsFunc(line, core.Color.IsEmpty) {
			rows = append(rows, row)
		}
	}
	return rows
}

// ClearRows removes the given rows and inserts as many empty rows at the top.
// Rows are processed ascending so earlier removals never shift a later index.
func (f *Playfield) ClearRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	sorted := slices.Clone(rows)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	for _, row := range sorted {
		if row < 0 || row >= f.height {
			continue
		}
		removed := f.cells[row]
		copy(f.cells[1:row+1], f.cells[:row])
		clear(removed)
		f.cells[0] = removed
	}
}

// Rows returns a deep copy of the grid, indexed [row][col].
func (f *Playfield) Rows() [][]core.Color {
	out := make([][]core.Color, f.height)
	for row, line := range f.cells {
		out[row] = slices.Clone(line)
	}
	return out
}

// Reset empties every cell.
func (f *Playfield) Reset() {
	for _, line := range f.cells {
		clear(line)
	}
}
