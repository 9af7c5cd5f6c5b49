package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Piece is a positioned, rotated instance of a shape.
// It is a plain value: copying a Piece yields an independent piece.
type Piece struct {
	shape    ShapeID
	X, Y     int
	rotation int
}

// NewPiece creates a piece of the given shape at origin (x, y), rotation 0.
func NewPiece(shape ShapeID, x, y int) Piece {
	return Piece{shape: shape, X: x, Y: y}
}

// Shape returns the shape of the piece.
func (p Piece) Shape() ShapeID { return p.shape }

// Rotation returns the current rotation index.
func (p Piece) Rotation() int { return p.rotation }

// Color returns the color derived from the piece's shape.
func (p Piece) Color() core.Color { return p.shape.Color() }

// Frame returns the occupancy frame at the current rotation.
func (p Piece) Frame() Frame { return FrameAt(p.shape, p.rotation) }

// Translate moves the origin without any validity check.
func (p *Piece) Translate(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Rotate advances the rotation index without any validity check.
func (p *Piece) Rotate() {
	p.rotation = p.normalize(p.rotation + 1)
}

// SetRotation restores a previously observed rotation index.
func (p *Piece) SetRotation(rotation int) {
	p.rotation = p.normalize(rotation)
}

// Cells returns the absolute cells the piece occupies.
func (p Piece) Cells() []Cell {
	return p.Probe(p.rotation, 0, 0)
}

// Probe returns the absolute cells the piece would occupy at a hypothetical
// rotation and offset. The piece itself is not modified.
func (p Piece) Probe(rotation, dx, dy int) []Cell {
	frame := FrameAt(p.shape, p.normalize(rotation))
	cells := frame.Cells()
	for i := range cells {
		cells[i].Col += p.X + dx
		cells[i].Row += p.Y + dy
	}
	return cells
}

func (p Piece) normalize(rotation int) int {
	n := p.shape.FrameCount()
	rotation %= n
	if rotation < 0 {
		rotation += n
	}
	return rotation
}
