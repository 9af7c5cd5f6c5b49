package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// RandomSource picks shapes for the queue. *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Queue generates pieces uniformly at random (with replacement) and keeps
// a fixed-size look-ahead buffer of the pieces that will spawn next.
type Queue struct {
	src       RandomSource
	width     int
	lookahead int
	pending   []Piece
}

// NewQueue creates a queue for a playfield of the given width and fills
// the look-ahead buffer. A lookahead of 0 generates pieces on demand.
func NewQueue(src RandomSource, lookahead, width int) *Queue {
	q := &Queue{
		src:       src,
		width:     width,
		lookahead: max(lookahead, 0),
	}
	q.pending = make([]Piece, 0, q.lookahead)
	for range q.lookahead {
		q.pending = append(q.pending, q.Next())
	}
	return q
}

// Next returns a freshly spawned piece with a random shape.
// It does not touch the look-ahead buffer.
func (q *Queue) Next() Piece {
	return SpawnPiece(ShapeID(q.src.Intn(ShapeCount)), q.width)
}

// SpawnPiece places a shape at the spawn origin of a playfield:
// horizontally centered on its frame, top row 0, rotation 0.
func SpawnPiece(shape ShapeID, fieldWidth int) Piece {
	frame := FrameAt(shape, 0)
	return NewPiece(shape, fieldWidth/2-frame.Width()/2, 0)
}

// Peek returns copies of the first count upcoming pieces without consuming them.
func (q *Queue) Peek(count int) []Piece {
	count = core.Clamp(count, 0, len(q.pending))
	out := make([]Piece, count)
	copy(out, q.pending[:count])
	return out
}

// Advance pops the front of the buffer, tops it up with a fresh piece,
// and returns the popped piece.
func (q *Queue) Advance() Piece {
	if q.lookahead == 0 {
		return q.Next()
	}
	front := q.pending[0]
	copy(q.pending, q.pending[1:])
	q.pending[len(q.pending)-1] = q.Next()
	return front
}

// Len returns the number of buffered pieces. It always equals the look-ahead.
func (q *Queue) Len() int { return len(q.pending) }

// Lookahead returns the configured look-ahead size.
func (q *Queue) Lookahead() int { return q.lookahead }
