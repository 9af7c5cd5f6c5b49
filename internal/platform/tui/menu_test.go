package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris" // register variants
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected MenuModel", next)
	}
	return mm
}

func TestMenuListsVariants(t *testing.T) {
	m := NewMenuModel(testConfig())
	view := m.View()
	for _, title := range []string{"Tetris", "Tetris (Classic, no preview)"} {
		if !strings.Contains(view, title) {
			t.Errorf("menu view is missing %q", title)
		}
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(testConfig())
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Selected() == nil {
		t.Fatal("expected a selection")
	}
	if m.Selected().GameID != "tetris_classic" {
		t.Errorf("Selected() = %q, expected tetris_classic", m.Selected().GameID)
	}
}

func TestMenuHistoryAndQuit(t *testing.T) {
	m := updateMenu(t, NewMenuModel(testConfig()), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsHistory() {
		t.Error("tab should open history")
	}

	m = updateMenu(t, NewMenuModel(testConfig()), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := updateMenu(t, NewMenuModel(testConfig()), tea.WindowSizeMsg{Width: 120, Height: 40})
	cfg := m.Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %dx%d, expected 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abc", 3, "abc"},
		{"toolong", 4, "toolong"},
	}
	for _, tc := range tests {
		if got := centerText(tc.text, tc.width); got != tc.want {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tc.text, tc.width, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{59 * time.Second, "0:59"},
		{95*time.Second + 400*time.Millisecond, "1:35"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tc := range tests {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, 100, 30)
	if !strings.Contains(m.View(), "History is unavailable.") {
		t.Error("expected unavailable message")
	}
}

func TestHistoryShowsSessions(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.SaveSession(storage.Session{
		Variant:      "tetris_classic",
		Player:       "alice",
		PiecesLocked: 12,
		Duration:     time.Minute,
	}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	m := NewHistoryModel(store, 100, 30)
	if !strings.Contains(m.View(), "No sessions recorded yet.") {
		t.Error("first variant has no history yet")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	view := m.View()
	if !strings.Contains(view, "alice") {
		t.Errorf("expected alice in history view:\n%s", view)
	}
	if !strings.Contains(view, "Sessions 1") {
		t.Errorf("expected variant totals in history view:\n%s", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(HistoryModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "bob", nil)

	send := func(msg tea.Msg) {
		t.Helper()
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}

	send(tea.WindowSizeMsg{Width: 80, Height: 24})
	send(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected game", m.screen)
	}

	// Back is only honored while paused or after game over.
	send(tea.KeyMsg{Type: tea.KeyEsc})
	send(TickMsg{})
	if m.screen != screenGame {
		t.Fatal("esc while running should keep the game")
	}

	send(runeKey('p'))
	send(TickMsg{})
	send(tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu", m.screen)
	}

	send(tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenHistory {
		t.Fatalf("screen = %v, expected history", m.screen)
	}
	send(runeKey('b'))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu after history", m.screen)
	}

	send(runeKey('q'))
	if !m.quitting || m.View() != "" {
		t.Error("q should end the session")
	}
}
