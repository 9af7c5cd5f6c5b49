package tetris

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays a fixed sequence of values, cycling when exhausted.
type scriptedSource struct {
	values []int
	pos    int
}

func script(values ...ShapeID) *scriptedSource {
	s := &scriptedSource{}
	for _, v := range values {
		s.values = append(s.values, int(v))
	}
	return s
}

func (s *scriptedSource) Intn(n int) int {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}

func shapesOf(pieces []Piece) []ShapeID {
	ids := make([]ShapeID, len(pieces))
	for i, p := range pieces {
		ids[i] = p.Shape()
	}
	return ids
}

func TestQueueLookahead(t *testing.T) {
	q := NewQueue(script(ShapeS, ShapeZ, ShapeI, ShapeO, ShapeL), 3, 10)
	require.Equal(t, 3, q.Len())
	assert.Equal(t, []ShapeID{ShapeS, ShapeZ, ShapeI}, shapesOf(q.Peek(3)))

	p := q.Advance()
	assert.Equal(t, ShapeS, p.Shape())
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []ShapeID{ShapeZ, ShapeI, ShapeO}, shapesOf(q.Peek(3)))

	p = q.Advance()
	assert.Equal(t, ShapeZ, p.Shape())
	assert.Equal(t, []ShapeID{ShapeI, ShapeO, ShapeL}, shapesOf(q.Peek(3)))
}

func TestQueuePeekClamps(t *testing.T) {
	q := NewQueue(script(ShapeT), 3, 10)
	assert.Len(t, q.Peek(10), 3)
	assert.Empty(t, q.Peek(-1))
	assert.Len(t, q.Peek(1), 1)

	peeked := q.Peek(1)
	peeked[0].Translate(5, 5)
	assert.Equal(t, 0, q.Peek(1)[0].Y, "peek must not expose the buffer")
}

func TestQueueOnDemand(t *testing.T) {
	src := script(ShapeJ, ShapeL)
	q := NewQueue(src, 0, 10)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Peek(3))
	assert.Equal(t, 0, src.pos, "no pieces are generated up front")

	assert.Equal(t, ShapeJ, q.Advance().Shape())
	assert.Equal(t, ShapeL, q.Advance().Shape())
	assert.Equal(t, 0, q.Len())
}

func TestSpawnPosition(t *testing.T) {
	for _, id := range Shapes() {
		p := SpawnPiece(id, 10)
		assert.Equal(t, 10/2-5/2, p.X, "%s", id)
		assert.Equal(t, 0, p.Y, "%s", id)
		assert.Equal(t, 0, p.Rotation(), "%s", id)
	}

	p := SpawnPiece(ShapeO, 7)
	assert.Equal(t, 1, p.X)
}

func TestQueueRandomShapesInCatalog(t *testing.T) {
	q := NewQueue(rand.New(rand.NewSource(7)), 3, 10)
	seen := make(map[ShapeID]bool)
	for range 500 {
		p := q.Advance()
		require.True(t, p.Shape().Valid())
		seen[p.Shape()] = true
		require.Equal(t, 3, q.Len())
	}
	assert.Len(t, seen, ShapeCount, "every shape should appear in 500 draws")
}
