package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Layout constants in screen characters.
const (
	cellW      = 2  // each playfield cell is two characters wide
	hudHeight  = 1  // status line above the well
	panelGap   = 2  // space between well and side panel
	panelWidth = 14 // side panel: preview and counters
	previewRow = 5  // rows reserved per preview piece
)

const (
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '.'
)

// requiredSize returns the minimum screen size for the current board.
func (g *Game) requiredSize() (int, int) {
	w := g.cfg.Board.Width*cellW + 2 + panelGap + panelWidth
	h := g.cfg.Board.Height + 2 + hudHeight
	return w, h
}

// wellRect returns the outline of the well, centered on the screen.
func (g *Game) wellRect() core.Rect {
	reqW, _ := g.requiredSize()
	x := max((g.screenW-reqW)/2, 0)
	return core.NewRect(x, hudHeight, g.engine.Width()*cellW+2, g.engine.Height()+2)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		reqW, reqH := g.requiredSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", reqW, reqH))
		return
	}

	well := g.wellRect()
	dst.DrawBox(well)
	g.renderField(dst, well)
	if !g.engine.GameOver() {
		g.renderActive(dst, well)
	}
	g.renderPanel(dst, well)

	switch {
	case g.engine.GameOver():
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	stats := g.engine.Stats()
	hud := fmt.Sprintf(" %s  Pieces: %d  Rows: %d", g.Title(), stats.PiecesLocked, stats.RowsCleared)
	dst.DrawText(0, 0, hud)
}

// drawBlock draws one playfield cell at (col, row) relative to the well interior.
func drawBlock(dst *core.Screen, well core.Rect, col, row int, r rune, c core.Color) {
	x := well.X + 1 + col*cellW
	y := well.Y + 1 + row
	for i := range cellW {
		dst.SetColored(x+i, y, r, c)
	}
}

func (g *Game) renderField(dst *core.Screen, well core.Rect) {
	for row := range g.engine.Height() {
		for col := range g.engine.Width() {
			c := g.engine.CellAt(col, row)
			if c.IsEmpty() {
				dst.Set(well.X+1+col*cellW+1, well.Y+1+row, emptyRune)
				continue
			}
			drawBlock(dst, well, col, row, blockRune, c)
		}
	}
}

func (g *Game) renderActive(dst *core.Screen, well core.Rect) {
	active := g.engine.Active()

	if offset := g.engine.LandingOffset(); offset > 0 {
		for _, cell := range active.Probe(active.Rotation(), 0, offset) {
			if cell.Row >= 0 {
				drawBlock(dst, well, cell.Col, cell.Row, ghostRune, core.ColorGray)
			}
		}
	}

	for _, cell := range active.Cells() {
		if cell.Row >= 0 {
			drawBlock(dst, well, cell.Col, cell.Row, blockRune, active.Color())
		}
	}
}

// renderPanel draws the look-ahead column and session counters beside the well.
func (g *Game) renderPanel(dst *core.Screen, well core.Rect) {
	x := well.Right() + panelGap
	y := well.Y

	if n := g.engine.Lookahead(); n > 0 {
		dst.DrawTextColored(x, y, "Next", core.ColorBrightWhite)
		y++
		for _, p := range g.engine.Preview(n) {
			renderPreview(dst, x, y, p)
			y += previewRow
		}
		dst.DrawHLine(x, y-1, panelWidth-2, '-')
	}

	stats := g.engine.Stats()
	dst.DrawText(x, y, fmt.Sprintf("Pieces %d", stats.PiecesLocked))
	dst.DrawText(x, y+1, fmt.Sprintf("Rows   %d", stats.RowsCleared))
}

// renderPreview draws a piece's frame trimmed to its occupied rows and columns.
func renderPreview(dst *core.Screen, x, y int, p Piece) {
	frame := p.Frame()
	cells := frame.Cells()
	minCol := frame.Width()
	for _, c := range cells {
		minCol = min(minCol, c.Col)
	}
	top := frame.Top()
	for _, c := range cells {
		px := x + (c.Col-minCol)*cellW
		py := y + c.Row - top
		for i := range cellW {
			dst.SetColored(px+i, py, blockRune, p.Color())
		}
	}
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	box := dst.Bounds().Centered(boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
