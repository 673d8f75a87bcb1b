package registry

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

type stubGame struct {
	id    string
	w, h  int
	state core.GameState
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(cfg core.RuntimeConfig)         { g.w, g.h = cfg.ScreenW, cfg.ScreenH }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{State: g.state} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return g.state }
func (g *stubGame) Resize(w, h int)                      { g.w, g.h = w, h }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	tests := []struct {
		id      string
		wantErr bool
	}{
		{"stub_a", false},
		{"stub_b", false},
		{"missing", true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			g, err := Create(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create(%q) err = %v", tt.id, err)
			}
			if err == nil && g.ID() != tt.id {
				t.Errorf("ID = %q, expected %q", g.ID(), tt.id)
			}
			if Exists(tt.id) == tt.wantErr {
				t.Errorf("Exists(%q) = %v", tt.id, !tt.wantErr)
			}
		})
	}

	if Title("stub_a") != "Stub stub_a" {
		t.Errorf("Title = %q", Title("stub_a"))
	}
	if Title("missing") != "missing" {
		t.Errorf("Title for unknown id = %q", Title("missing"))
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}

func TestResizer(t *testing.T) {
	var g Game = &stubGame{id: "stub_resize"}
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 5})

	r, ok := g.(Resizer)
	if !ok {
		t.Fatal("stub should implement Resizer")
	}
	r.Resize(80, 24)
	if s := g.(*stubGame); s.w != 80 || s.h != 24 {
		t.Errorf("size = %dx%d, expected 80x24", s.w, s.h)
	}
}
