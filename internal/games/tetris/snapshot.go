package tetris

import "strings"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	Variant      string
	State        State
	Paused       bool
	PiecesLocked int
	RowsCleared  int
	EngineTicks  uint64
	Active       Piece
	Landing      int
	Preview      []ShapeID
	Grid         string // one line per row; '.' empty, otherwise the color's first letter
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	stats := g.engine.Stats()

	preview := g.engine.Preview(g.engine.Lookahead())
	ids := make([]ShapeID, len(preview))
	for i, p := range preview {
		ids[i] = p.Shape()
	}

	return Snapshot{
		Tick:         g.tick,
		Variant:      g.ID(),
		State:        g.engine.State(),
		Paused:       g.paused,
		PiecesLocked: stats.PiecesLocked,
		RowsCleared:  stats.RowsCleared,
		EngineTicks:  stats.Ticks,
		Active:       g.engine.Active(),
		Landing:      g.engine.LandingOffset(),
		Preview:      ids,
		Grid:         gridString(g.engine),
	}
}

func gridString(e *Engine) string {
	var b strings.Builder
	for row := range e.Height() {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := range e.Width() {
			c := e.CellAt(col, row)
			if c.IsEmpty() {
				b.WriteByte('.')
				continue
			}
			b.WriteByte(c.String()[0])
		}
	}
	return b.String()
}
