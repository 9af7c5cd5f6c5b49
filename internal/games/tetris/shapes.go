// Package tetris implements the falling-block game: a pure game-state engine
// (shape catalog, piece, playfield, queue, engine) plus the registry adapter
// that schedules gravity and renders into a core.Screen.
package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ShapeID identifies one of the fixed piece archetypes.
type ShapeID int

const (
	ShapeS ShapeID = iota
	ShapeZ
	ShapeI
	ShapeO
	ShapeL
	ShapeJ
	ShapeT
)

// ShapeCount is the number of shapes in the catalog.
const ShapeCount = 7

// Cell is a (column, row) coordinate. Rows grow downward.
type Cell struct {
	Col, Row int
}

// Frame is one rotational orientation of a shape: an occupancy grid
// stored as the list of occupied cells relative to the frame's top-left corner.
type Frame struct {
	width, height int
	cells         []Cell
}

// Width returns the number of columns in the frame's bounding grid.
func (f Frame) Width() int { return f.width }

// Height returns the number of rows in the frame's bounding grid.
func (f Frame) Height() int { return f.height }

// Cells returns a copy of the occupied cells in row-major order.
func (f Frame) Cells() []Cell {
	out := make([]Cell, len(f.cells))
	copy(out, f.cells)
	return out
}

// Occupied reports whether the frame marks (col, row).
func (f Frame) Occupied(col, row int) bool {
	for _, c := range f.cells {
		if c.Col == col && c.Row == row {
			return true
		}
	}
	return false
}

// Bottom returns the bottom-most occupied row within the frame.
func (f Frame) Bottom() int {
	bottom := -1
	for _, c := range f.cells {
		bottom = max(bottom, c.Row)
	}
	return bottom
}

// Top returns the top-most occupied row within the frame.
func (f Frame) Top() int {
	top := f.height
	for _, c := range f.cells {
		top = min(top, c.Row)
	}
	return top
}

type shapeDef struct {
	name   string
	color  core.Color
	frames []Frame
}

// catalog is built once at program start and never mutated.
var catalog = [ShapeCount]shapeDef{
	ShapeS: {
		name:  "S",
		color: core.ColorGreen,
		frames: mustFrames(
			[]string{
				".....",
				".....",
				"..##.",
				".##..",
				".....",
			},
			[]string{
				".....",
				"..#..",
				"..##.",
				"...#.",
				".....",
			},
		),
	},
	ShapeZ: {
		name:  "Z",
		color: core.ColorRed,
		frames: mustFrames(
			[]string{
				".....",
				".....",
				".##..",
				"..##.",
				".....",
			},
			[]string{
				".....",
				"..#..",
				".##..",
				".#...",
				".....",
			},
		),
	},
	ShapeI: {
		name:  "I",
		color: core.ColorCyan,
		frames: mustFrames(
			[]string{
				"..#..",
				"..#..",
				"..#..",
				"..#..",
				".....",
			},
			[]string{
				"####.",
				".....",
				".....",
				".....",
				".....",
			},
		),
	},
	ShapeO: {
		name:  "O",
		color: core.ColorYellow,
		frames: mustFrames(
			[]string{
				".....",
				".....",
				".##..",
				".##..",
				".....",
			},
		),
	},
	ShapeL: {
		name:  "L",
		color: core.ColorOrange,
		frames: mustFrames(
			[]string{
				".....",
				".#...",
				".###.",
				".....",
				".....",
			},
			[]string{
				".....",
				"..##.",
				"..#..",
				"..#..",
				".....",
			},
			[]string{
				".....",
				".....",
				".###.",
				"...#.",
				".....",
			},
			[]string{
				".....",
				"..#..",
				"..#..",
				".##..",
				".....",
			},
		),
	},
	ShapeJ: {
		name:  "J",
		color: core.ColorBlue,
		frames: mustFrames(
			[]string{
				".....",
				"...#.",
				".###.",
				".....",
				".....",
			},
			[]string{
				".....",
				"..#..",
				"..#..",
				"..##.",
				".....",
			},
			[]string{
				".....",
				".....",
				".###.",
				".#...",
				".....",
			},
			[]string{
				".....",
				".##..",
				"..#..",
				"..#..",
				".....",
			},
		),
	},
	ShapeT: {
		name:  "T",
		color: core.ColorMagenta,
		frames: mustFrames(
			[]string{
				".....",
				"..#..",
				".###.",
				".....",
				".....",
			},
			[]string{
				".....",
				"..#..",
				"..##.",
				"..#..",
				".....",
			},
			[]string{
				".....",
				".....",
				".###.",
				"..#..",
				".....",
			},
			[]string{
				".....",
				"..#..",
				".##..",
				"..#..",
				".....",
			},
		),
	},
}

// mustFrames parses frame layouts where '#' marks an occupied cell.
// It panics on malformed layouts since the catalog is fixed at build time.
func mustFrames(layouts ...[]string) []Frame {
	if len(layouts) == 0 {
		panic("tetris: shape without frames")
	}
	frames := make([]Frame, 0, len(layouts))
	for i, layout := range layouts {
		f, err := parseFrame(layout)
		if err != nil {
			panic(fmt.Sprintf("tetris: frame %d: %v", i, err))
		}
		if i > 0 && (f.width != frames[0].width || f.height != frames[0].height) {
			panic(fmt.Sprintf("tetris: frame %d is %dx%d, expected %dx%d",
				i, f.width, f.height, frames[0].width, frames[0].height))
		}
		frames = append(frames, f)
	}
	return frames
}

func parseFrame(layout []string) (Frame, error) {
	f := Frame{height: len(layout)}
	for row, line := range layout {
		if row == 0 {
			f.width = len(line)
		} else if len(line) != f.width {
			return Frame{}, fmt.Errorf("row %d has width %d, expected %d", row, len(line), f.width)
		}
		for col, ch := range line {
			switch ch {
			case '#':
				f.cells = append(f.cells, Cell{Col: col, Row: row})
			case '.':
			default:
				return Frame{}, fmt.Errorf("unexpected %q at (%d, %d)", ch, col, row)
			}
		}
	}
	if len(f.cells) == 0 {
		return Frame{}, fmt.Errorf("frame has no occupied cells")
	}
	return f, nil
}

// Shapes returns every shape in catalog order.
func Shapes() []ShapeID {
	ids := make([]ShapeID, ShapeCount)
	for i := range ids {
		ids[i] = ShapeID(i)
	}
	return ids
}

// FrameAt returns the occupancy frame for a shape at a rotation index.
// The rotation index must already be reduced modulo FrameCount.
func FrameAt(id ShapeID, rotation int) Frame {
	return catalog[id].frames[rotation]
}

// Valid reports whether the id names a catalog shape.
func (id ShapeID) Valid() bool {
	return id >= 0 && int(id) < ShapeCount
}

// FrameCount returns the number of rotation frames of the shape.
func (id ShapeID) FrameCount() int {
	return len(catalog[id].frames)
}

// Color returns the fixed color of the shape.
func (id ShapeID) Color() core.Color {
	return catalog[id].color
}

func (id ShapeID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ShapeID(%d)", int(id))
	}
	return catalog[id].name
}
