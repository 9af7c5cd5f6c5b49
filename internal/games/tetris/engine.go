package tetris

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// State is the session state of an engine.
type State int

const (
	StateRunning State = iota
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Default playfield dimensions.
const (
	DefaultWidth     = 10
	DefaultHeight    = 20
	DefaultLookahead = 3
)

// Stats are observational counters of an engine session.
type Stats struct {
	PiecesLocked int
	RowsCleared  int
	Ticks        uint64
	Spawns       map[ShapeID]int
}

// EndedHandler observes the transition to StateGameOver.
type EndedHandler interface {
	OnEnded(stats Stats)
}

// EndedHandlerFunc adapts a function to EndedHandler.
type EndedHandlerFunc func(stats Stats)

// OnEnded calls f(stats).
func (f EndedHandlerFunc) OnEnded(stats Stats) { f(stats) }

// Option configures an Engine.
type Option func(*Engine)

// WithSize sets the playfield dimensions.
func WithSize(width, height int) Option {
	return func(e *Engine) {
		e.width = width
		e.height = height
	}
}

// WithLookahead sets the number of upcoming pieces kept in the queue.
func WithLookahead(n int) Option {
	return func(e *Engine) {
		e.lookahead = n
	}
}

// WithEndedHandler registers the session-ended observer.
func WithEndedHandler(h EndedHandler) Option {
	return func(e *Engine) {
		e.onEnded = h
	}
}

// Engine orchestrates the playfield, the active piece and the queue.
// It is not safe for concurrent mutation; read-only accessors may be
// called freely between commands.
type Engine struct {
	width, height int
	lookahead     int

	field  *Playfield
	queue  *Queue
	active Piece
	state  State

	onEnded EndedHandler

	piecesLocked int
	rowsCleared  int
	ticks        uint64
	spawns       *intmap.Map[ShapeID, int]
}

// NewEngine creates a running engine with its first piece already spawned.
// If the first spawn does not fit, the engine starts in StateGameOver.
func NewEngine(src RandomSource, opts ...Option) *Engine {
	e := &Engine{
		width:     DefaultWidth,
		height:    DefaultHeight,
		lookahead: DefaultLookahead,
		spawns:    intmap.New[ShapeID, int](ShapeCount),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.field = NewPlayfield(e.width, e.height)
	e.queue = NewQueue(src, e.lookahead, e.width)
	e.spawn()
	return e
}

// spawn takes the next piece from the queue. A spawn that collides ends the session
// and is never placed.
func (e *Engine) spawn() {
	e.active = e.queue.Advance()
	count, _ := e.spawns.Get(e.active.Shape())
	e.spawns.Put(e.active.Shape(), count+1)

	if !e.field.IsValid(e.active.Cells()) {
		e.end()
	}
}

func (e *Engine) end() {
	if e.state == StateGameOver {
		return
	}
	e.state = StateGameOver
	if e.onEnded != nil {
		e.onEnded.OnEnded(e.Stats())
	}
}

// shift commits a translation of the active piece if the result is valid.
func (e *Engine) shift(dx, dy int) bool {
	if e.state == StateGameOver {
		return false
	}
	if !e.field.IsValid(e.active.Probe(e.active.Rotation(), dx, dy)) {
		return false
	}
	e.active.Translate(dx, dy)
	return true
}

// MoveLeft moves the active piece one column left if possible.
func (e *Engine) MoveLeft() bool { return e.shift(-1, 0) }

// MoveRight moves the active piece one column right if possible.
func (e *Engine) MoveRight() bool { return e.shift(1, 0) }

// SoftDrop moves the active piece one row down if possible. It never locks.
func (e *Engine) SoftDrop() bool { return e.shift(0, 1) }

// Rotate advances the active piece's rotation, reverting if the result collides.
// There is no wall kick.
func (e *Engine) Rotate() bool {
	if e.state == StateGameOver {
		return false
	}
	prev := e.active.Rotation()
	e.active.Rotate()
	if !e.field.IsValid(e.active.Cells()) {
		e.active.SetRotation(prev)
		return false
	}
	return e.active.Rotation() != prev
}

// HardDrop moves the active piece to its landing position and locks it
// in the same call.
func (e *Engine) HardDrop() bool {
	if e.state == StateGameOver {
		return false
	}
	e.active.Translate(0, e.LandingOffset())
	e.land()
	return true
}

// Tick applies one gravity step. A piece that cannot fall is locked,
// full rows are cleared and the next piece spawns.
func (e *Engine) Tick() bool {
	if e.state == StateGameOver {
		return false
	}
	e.ticks++
	if e.field.IsValid(e.active.Probe(e.active.Rotation(), 0, 1)) {
		e.active.Translate(0, 1)
		return true
	}
	e.land()
	return true
}

func (e *Engine) land() {
	e.field.Lock(e.active.Cells(), e.active.Color())
	e.piecesLocked++

	if full := e.field.FullRows(); len(full) > 0 {
		e.field.ClearRows(full)
		e.rowsCleared += len(full)
	}
	e.spawn()
}

// LandingOffset returns how many rows the active piece can fall before it
// rests on the stack or the floor. It does not mutate state.
func (e *Engine) LandingOffset() int {
	offset := 0
	for e.field.IsValid(e.active.Probe(e.active.Rotation(), 0, offset+1)) {
		offset++
	}
	return offset
}

// State returns the session state.
func (e *Engine) State() State { return e.state }

// GameOver reports whether the session has ended.
func (e *Engine) GameOver() bool { return e.state == StateGameOver }

// Width returns the playfield width.
func (e *Engine) Width() int { return e.width }

// Height returns the playfield height.
func (e *Engine) Height() int { return e.height }

// CellAt returns the settled color at (col, row).
func (e *Engine) CellAt(col, row int) core.Color { return e.field.At(col, row) }

// Grid returns a deep copy of the settled cells, indexed [row][col].
func (e *Engine) Grid() [][]core.Color { return e.field.Rows() }

// FullRows returns the currently full rows. Outside of a landing this is
// always empty since landings clear them immediately.
func (e *Engine) FullRows() []int { return e.field.FullRows() }

// Active returns a copy of the active piece.
func (e *Engine) Active() Piece { return e.active }

// ActiveCells returns the absolute cells of the active piece.
func (e *Engine) ActiveCells() []Cell { return e.active.Cells() }

// Preview returns up to n upcoming pieces, next-to-spawn first.
func (e *Engine) Preview(n int) []Piece { return e.queue.Peek(n) }

// Lookahead returns the queue's look-ahead size.
func (e *Engine) Lookahead() int { return e.queue.Lookahead() }

// Stats returns a copy of the session counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		PiecesLocked: e.piecesLocked,
		RowsCleared:  e.rowsCleared,
		Ticks:        e.ticks,
		Spawns:       make(map[ShapeID]int, e.spawns.Len()),
	}
	e.spawns.ForEach(func(id ShapeID, n int) bool {
		s.Spawns[id] = n
		return true
	})
	return s
}
