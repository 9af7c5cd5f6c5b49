package registry

import (
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type fakeGame struct{ id string }

func (g fakeGame) ID() string                           { return g.id }
func (g fakeGame) Title() string                        { return "Fake " + g.id }
func (g fakeGame) Reset(core.RuntimeConfig)             {}
func (g fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g fakeGame) Render(*core.Screen)                  {}
func (g fakeGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_fake_b", func() Game { return fakeGame{id: "zz_fake_b"} })
	Register("zz_fake_a", func() Game { return fakeGame{id: "zz_fake_a"} })

	if !Exists("zz_fake_a") {
		t.Fatal("zz_fake_a should exist")
	}
	if Exists("zz_missing") {
		t.Error("zz_missing should not exist")
	}

	g, err := Create("zz_fake_b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_fake_b" {
		t.Errorf("ID() = %q, expected zz_fake_b", g.ID())
	}

	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create() of unknown game should fail")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "zz_fake_a" && info.Title != "Fake zz_fake_a" {
			t.Errorf("Title = %q, expected Fake zz_fake_a", info.Title)
		}
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_fake_dup", func() Game { return fakeGame{id: "zz_fake_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("zz_fake_dup", func() Game { return fakeGame{id: "zz_fake_dup"} })
}
