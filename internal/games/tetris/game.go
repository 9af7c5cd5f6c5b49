package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Variant identifies a registered game configuration.
type Variant string

const (
	VariantStandard Variant = "tetris"
	VariantClassic  Variant = "tetris_classic"
)

const defaultTickRate = 60

// Game adapts the engine to registry.Game. It maps actions to engine
// commands and schedules engine ticks in simulation ticks.
type Game struct {
	variant Variant
	cfg     config.TetrisConfig
	hasCfg  bool

	seed     int64
	rng      *rand.Rand
	engine   *Engine
	tick     uint64
	tickRate int

	gravityAcc    int
	softDropTicks int

	paused    bool
	justEnded bool

	screenW  int
	screenH  int
	tooSmall bool
}

var configPath string

// SetConfigPath sets the config file used by games created afterwards.
// An empty path uses the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// New creates the standard variant with a look-ahead preview.
func New() *Game {
	return &Game{variant: VariantStandard}
}

// NewClassic creates the variant without a preview; pieces are generated on demand.
func NewClassic() *Game {
	return &Game{variant: VariantClassic}
}

// WithConfig sets an explicit configuration, bypassing file loading.
func (g *Game) WithConfig(cfg config.TetrisConfig) *Game {
	g.cfg = cfg
	g.hasCfg = true
	return g
}

func init() {
	registry.Register(string(VariantStandard), func() registry.Game {
		return New()
	})
	registry.Register(string(VariantClassic), func() registry.Game {
		return NewClassic()
	})
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "Tetris (Classic, no preview)"
	}
	return "Tetris"
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.hasCfg {
		loaded, err := config.LoadTetris(configPath)
		if err != nil {
			loaded = config.DefaultTetrisConfig()
		}
		g.cfg = loaded
		g.hasCfg = true
	}

	lookahead := g.cfg.Queue.Lookahead
	if g.variant == VariantClassic {
		lookahead = 0
	}

	g.seed = cfg.Seed
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = defaultTickRate
	}
	g.tick = 0
	g.gravityAcc = 0
	g.softDropTicks = 0
	g.paused = false
	g.justEnded = false

	g.engine = NewEngine(g.rng,
		WithSize(g.cfg.Board.Width, g.cfg.Board.Height),
		WithLookahead(lookahead),
		WithEndedHandler(EndedHandlerFunc(g.onEnded)),
	)
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(screenW, screenH int) {
	g.screenW = screenW
	g.screenH = screenH
	w, h := g.requiredSize()
	g.tooSmall = screenW < w || screenH < h
}

func (g *Game) onEnded(Stats) {
	g.justEnded = true
}

// Step advances the game by one simulation tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.engine.GameOver() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.engine.GameOver() {
		g.paused = !g.paused
	}

	if !g.engine.GameOver() && !g.paused && !g.tooSmall {
		if g.applyInput(input) {
			// A hard drop locks immediately; gravity restarts for the new piece.
			g.gravityAcc = 0
		} else {
			g.applyGravity()
		}
	}

	ended := g.justEnded
	g.justEnded = false
	return core.StepResult{State: g.State(), Ended: ended}
}

// applyInput forwards actions to the engine and reports whether a hard drop happened.
func (g *Game) applyInput(input core.InputFrame) bool {
	if input.Has(core.ActionLeft) {
		g.engine.MoveLeft()
	}
	if input.Has(core.ActionRight) {
		g.engine.MoveRight()
	}
	if input.Has(core.ActionRotate) {
		g.engine.Rotate()
	}
	if input.Has(core.ActionDown) {
		g.engine.SoftDrop()
		g.softDropTicks = g.cfg.Gravity.SoftDropHoldTicks
	}
	if input.Has(core.ActionDrop) {
		g.engine.HardDrop()
		g.softDropTicks = 0
		return true
	}
	return false
}

// applyGravity accumulates the current rate and fires one engine tick
// per tickRate accumulated.
func (g *Game) applyGravity() {
	rate := g.cfg.Gravity.NormalRate
	if g.softDropTicks > 0 {
		rate = g.cfg.SoftDropRate()
		g.softDropTicks--
	}

	g.gravityAcc += rate
	for g.gravityAcc >= g.tickRate && !g.engine.GameOver() {
		g.gravityAcc -= g.tickRate
		g.engine.Tick()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	stats := g.engine.Stats()
	return core.GameState{
		Pieces:   stats.PiecesLocked,
		Rows:     stats.RowsCleared,
		Ticks:    stats.Ticks,
		GameOver: g.engine.GameOver(),
		Paused:   g.paused,
	}
}

// Engine exposes the underlying engine for read-only inspection.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Seed returns the seed of the current session.
func (g *Game) Seed() int64 {
	return g.seed
}

// SessionReport describes the session as key/value pairs for structured logging.
func (g *Game) SessionReport() []any {
	stats := g.engine.Stats()
	kv := []any{
		"variant", g.ID(),
		"seed", g.seed,
		"pieces", stats.PiecesLocked,
		"rows", stats.RowsCleared,
		"ticks", stats.Ticks,
	}
	for _, id := range Shapes() {
		kv = append(kv, "spawns_"+id.String(), stats.Spawns[id])
	}
	return kv
}
