package tetris

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func newTestGame(seed int64) *Game {
	g := New().WithConfig(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	})
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := newTestGame(12345)
	g2 := newTestGame(12345)

	inputs := map[int][]core.Action{
		10:  {core.ActionLeft},
		20:  {core.ActionRotate},
		40:  {core.ActionDrop},
		50:  {core.ActionRight, core.ActionRight},
		70:  {core.ActionDown},
		90:  {core.ActionDrop},
		130: {core.ActionRotate, core.ActionLeft},
	}

	for i := range 300 {
		step(g1, inputs[i]...)
		step(g2, inputs[i]...)
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()
	if !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("Snapshot mismatch:\n%+v\nvs\n%+v", snap1, snap2)
	}
	if snap1.PiecesLocked < 2 {
		t.Errorf("PiecesLocked = %d, expected at least 2 hard drops", snap1.PiecesLocked)
	}
}

func TestGravityTiming(t *testing.T) {
	g := newTestGame(1)
	startY := g.Engine().Active().Y

	// normal_rate 2 at 60 ticks/s: one engine tick every 30 steps.
	for i := 1; i < 30; i++ {
		step(g)
		if y := g.Engine().Active().Y; y != startY {
			t.Fatalf("step %d: Y = %d, expected %d", i, y, startY)
		}
	}
	step(g)
	if y := g.Engine().Active().Y; y != startY+1 {
		t.Errorf("Y after 30 steps = %d, expected %d", y, startY+1)
	}
}

func TestSoftDropAcceleratesGravity(t *testing.T) {
	g := newTestGame(1)
	startY := g.Engine().Active().Y

	step(g, core.ActionDown)
	if y := g.Engine().Active().Y; y != startY+1 {
		t.Fatalf("Y after soft drop = %d, expected %d", y, startY+1)
	}

	// 2+8 per step: the accumulator reaches 60 after six steps in total.
	for range 5 {
		step(g)
	}
	if y := g.Engine().Active().Y; y != startY+2 {
		t.Errorf("Y after accelerated gravity = %d, expected %d", y, startY+2)
	}
}

func TestHardDropStep(t *testing.T) {
	g := newTestGame(5)
	for range 10 {
		step(g)
	}

	res := step(g, core.ActionDrop)
	if res.State.Pieces != 1 {
		t.Errorf("Pieces = %d, expected 1", res.State.Pieces)
	}
	if g.gravityAcc != 0 {
		t.Errorf("gravityAcc = %d, expected 0 after hard drop", g.gravityAcc)
	}
	if y := g.Engine().Active().Y; y != 0 {
		t.Errorf("new piece Y = %d, expected 0", y)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(2)
	res := step(g, core.ActionPause)
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}

	before := g.Engine().Active()
	for range 120 {
		step(g, core.ActionLeft)
	}
	if g.Engine().Active() != before {
		t.Error("piece moved while paused")
	}

	res = step(g, core.ActionPause)
	if res.State.Paused {
		t.Error("expected unpaused state")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(42)

	endedCount := 0
	for range 200 {
		res := step(g, core.ActionDrop)
		if res.Ended {
			endedCount++
		}
	}
	if endedCount != 1 {
		t.Fatalf("Ended reported %d times, expected 1", endedCount)
	}
	if !g.State().GameOver {
		t.Fatal("expected game over after stacking hard drops")
	}

	// Restart is ignored while running and honored after game over.
	res := step(g, core.ActionRestart)
	if res.State.GameOver {
		t.Error("expected a running game after restart")
	}
	if res.State.Pieces != 0 || res.State.Rows != 0 {
		t.Errorf("State after restart = %+v, expected zero counters", res.State)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New().WithConfig(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 30, ScreenH: 10, TickRate: 60})

	for range 120 {
		step(g)
	}
	if y := g.Engine().Active().Y; y != 0 {
		t.Errorf("Y = %d, expected simulation to wait for a larger window", y)
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small overlay")
	}

	g.Resize(80, 24)
	step(g)
	screen = core.NewScreen(80, 24)
	g.Render(screen)
	if strings.Contains(screen.String(), "Window too small") {
		t.Error("overlay should disappear after resize")
	}
}

func TestRenderPreviewColumn(t *testing.T) {
	g := newTestGame(9)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Next") {
		t.Error("standard variant should render the look-ahead column")
	}

	classic := NewClassic().WithConfig(config.DefaultTetrisConfig())
	classic.Reset(core.RuntimeConfig{Seed: 9, ScreenW: 80, ScreenH: 24, TickRate: 60})
	screen.Clear()
	classic.Render(screen)
	if strings.Contains(screen.String(), "Next") {
		t.Error("classic variant should not render a preview")
	}
	if classic.Engine().Lookahead() != 0 {
		t.Errorf("classic Lookahead() = %d, expected 0", classic.Engine().Lookahead())
	}
}

func TestRenderActivePieceColored(t *testing.T) {
	g := newTestGame(3)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	well := g.wellRect()
	active := g.Engine().Active()
	for _, c := range active.Cells() {
		if c.Row < 0 {
			continue
		}
		cell := screen.GetCell(well.X+1+c.Col*cellW, well.Y+1+c.Row)
		if cell.Rune != blockRune || cell.Color != active.Color() {
			t.Errorf("cell (%d, %d) = %+v, expected colored block", c.Col, c.Row, cell)
		}
	}
}

func TestRegisteredVariants(t *testing.T) {
	for _, id := range []string{"tetris", "tetris_classic"} {
		if !registry.Exists(id) {
			t.Errorf("variant %q not registered", id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestSessionReport(t *testing.T) {
	g := newTestGame(77)
	step(g, core.ActionDrop)

	kv := g.SessionReport()
	if len(kv)%2 != 0 {
		t.Fatalf("SessionReport() has odd length %d", len(kv))
	}
	fields := make(map[string]any)
	for i := 0; i < len(kv); i += 2 {
		fields[kv[i].(string)] = kv[i+1]
	}
	if fields["variant"] != "tetris" {
		t.Errorf("variant = %v, expected tetris", fields["variant"])
	}
	if fields["seed"] != int64(77) {
		t.Errorf("seed = %v, expected 77", fields["seed"])
	}
	if fields["pieces"] != 1 {
		t.Errorf("pieces = %v, expected 1", fields["pieces"])
	}
}
