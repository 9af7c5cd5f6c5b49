package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// GameModel is the Bubble Tea model that runs one game variant.
// It is used directly by `tetris play` and embedded in SSH sessions.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	player     string
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	started    time.Time
	allowBack  bool
	quitting   bool
	backToMenu bool
}

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithStore records finished sessions in the given history store.
func WithStore(store *storage.Store) GameOption {
	return func(m *GameModel) { m.store = store }
}

// WithLogger sets the logger used for session events.
func WithLogger(logger *log.Logger) GameOption {
	return func(m *GameModel) { m.logger = logger }
}

// WithPlayer sets the player name stored with each session.
func WithPlayer(player string) GameOption {
	return func(m *GameModel) { m.player = player }
}

// WithBackToMenu lets esc/b leave the game while paused or after game over.
func WithBackToMenu() GameOption {
	return func(m *GameModel) { m.allowBack = true }
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		started:    time.Now(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}

	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Actions accumulate until the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if _, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("could not save screenshot", "error", err)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.allowBack && m.inputFrame.Has(core.ActionBack) &&
		(m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
	}

	return m, nil
}

// handleResize adapts the screen buffer. Games that can resize in place keep
// their session; others are restarted.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.started = time.Now()
	}
	return m, nil
}

// handleTick runs one simulation step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Ended {
		m.recordSession()
	}
	if wasOver && !m.gameState.GameOver {
		m.started = time.Now()
		m.logger.Info("session restarted", "game", m.game.ID(), "player", m.player)
	}

	return m, tickCmd(m.config.TickRate)
}

// recordSession logs the finished session and stores it in the history.
// Storage failures are logged and otherwise ignored.
func (m *GameModel) recordSession() {
	sess := storage.Session{
		Variant:      m.game.ID(),
		Player:       m.player,
		Seed:         m.config.Seed,
		PiecesLocked: m.gameState.Pieces,
		RowsCleared:  m.gameState.Rows,
		Ticks:        m.gameState.Ticks,
		Duration:     time.Since(m.started).Round(time.Millisecond),
	}
	if s, ok := m.game.(registry.Seeded); ok {
		sess.Seed = s.Seed()
	}

	kv := []any{"player", m.player, "duration", sess.Duration}
	if r, ok := m.game.(registry.SessionReporter); ok {
		kv = append(kv, r.SessionReport()...)
	} else {
		kv = append(kv, "game", sess.Variant, "pieces", sess.PiecesLocked, "rows", sess.RowsCleared)
	}
	m.logger.Info("session ended", kv...)

	if m.store == nil {
		return
	}
	saved, err := m.store.SaveSession(sess)
	if err != nil {
		m.logger.Warn("could not record session", "error", err)
		return
	}
	m.logger.Debug("session recorded", "id", saved.SessionID)
}

// saveScreenshot writes the current screen as plain text under ~/.tetris/screenshots.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state observed on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ...GameOption) error {
	model := NewGameModel(game, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
