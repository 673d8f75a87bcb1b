package platformer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

func newTestGame(t *testing.T, g *Game, w, h int) *Game {
	t.Helper()
	g.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: 60, Seed: 42})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func release(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Release(a)
	}
	return in
}

func TestGameIdentity(t *testing.T) {
	tests := []struct {
		game  *Game
		id    string
		title string
	}{
		{New(), "platformer", "Robo Runner"},
		{NewEndless(), "platformer_endless", "Robo Runner (Endless)"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if tt.game.ID() != tt.id {
				t.Errorf("ID = %q, expected %q", tt.game.ID(), tt.id)
			}
			if tt.game.Title() != tt.title {
				t.Errorf("Title = %q, expected %q", tt.game.Title(), tt.title)
			}
			if !registry.Exists(tt.id) {
				t.Errorf("%q is not registered", tt.id)
			}
		})
	}
}

func TestGameStartsOnFirstLevel(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	st := g.State()
	if st.Level != 1 || st.Score != 0 || st.Paused {
		t.Errorf("initial state = %+v", st)
	}
	if g.Controller().MapName() != "Level_01" {
		t.Errorf("MapName = %q, expected Level_01", g.Controller().MapName())
	}
	if g.Controller().ItemsLeft() == 0 {
		t.Error("first level should have items")
	}
}

func TestGameStartLevelSetting(t *testing.T) {
	SetStartLevel(2)
	t.Cleanup(func() { SetStartLevel(1) })

	g := newTestGame(t, New(), 80, 24)
	if g.State().Level != 2 {
		t.Errorf("Level = %d, expected 2", g.State().Level)
	}

	// Restart goes back to the configured start level
	for i := 0; i < 10; i++ {
		g.Step(press(core.ActionRight))
	}
	g.Step(press(core.ActionRestart))
	if g.State().Level != 2 {
		t.Errorf("Level after restart = %d, expected 2", g.State().Level)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	for i := 0; i < 20; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Step(press(core.ActionRight))

	res := g.Step(press(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("game should be paused")
	}
	before := g.Snapshot()

	for i := 0; i < 5; i++ {
		g.Step(press(core.ActionRight, core.ActionJump))
	}
	after := g.Snapshot()
	if before.PlayerX != after.PlayerX || before.PlayerY != after.PlayerY || before.Tick != after.Tick {
		t.Errorf("paused game moved: %+v -> %+v", before, after)
	}

	// Releases still land while paused
	g.Step(release(core.ActionRight))
	if vx, _ := g.Controller().Player().Vel(); vx != 0 {
		t.Errorf("vx = %v, expected 0 after release during pause", vx)
	}

	res = g.Step(press(core.ActionPause))
	if res.State.Paused {
		t.Error("game should be resumed")
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	for i := 0; i < 30; i++ {
		g.Step(press(core.ActionRight))
	}
	g.Step(press(core.ActionPause))
	g.Step(press(core.ActionRestart))

	snap := g.Snapshot()
	if snap.Tick != 0 || snap.Paused || snap.Score != 0 {
		t.Errorf("after restart: %+v", snap)
	}
	if snap.PlayerX != 64 || snap.PlayerY != 128 {
		t.Errorf("player at (%v, %v), expected the spawn point", snap.PlayerX, snap.PlayerY)
	}
}

func TestGameFullscreenRequest(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	res := g.Step(press(core.ActionFullscreen))
	if !res.ToggleFullscreen {
		t.Error("fullscreen press should request a toggle")
	}
	if !g.Controller().Fullscreen() {
		t.Error("controller should track the fullscreen request")
	}
	if res = g.Step(core.NewInputFrame()); res.ToggleFullscreen {
		t.Error("toggle requested without a key press")
	}
}

func TestGameJumpCue(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	for i := 0; i < 60 && !g.Controller().CanJump(); i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.Controller().CanJump() {
		t.Fatal("player never landed")
	}

	res := g.Step(press(core.ActionJump))
	if len(res.Sounds) != 1 || res.Sounds[0] != core.SoundJump {
		t.Errorf("sounds = %v, expected one jump cue", res.Sounds)
	}
}

func TestGameScreenTooSmall(t *testing.T) {
	g := newTestGame(t, New(), 20, 8)
	before := g.Snapshot()
	g.Step(press(core.ActionRight))
	if g.Snapshot().Tick != before.Tick {
		t.Error("game should not advance on a tiny screen")
	}

	scr := core.NewScreen(20, 8)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Screen too small") {
		t.Errorf("render = %q", scr.String())
	}

	g.Resize(80, 24)
	g.Step(press(core.ActionRight))
	if g.Snapshot().Tick != before.Tick+1 {
		t.Error("game should advance after growing the screen")
	}
}

func TestGameReleaseWhileScreenTooSmall(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	g.Step(press(core.ActionRight))
	if vx, _ := g.Controller().Player().Vel(); vx == 0 {
		t.Fatal("player should be walking")
	}

	g.Resize(20, 8)
	g.Step(release(core.ActionRight))
	g.Resize(80, 24)
	g.Step(core.NewInputFrame())
	if vx, _ := g.Controller().Player().Vel(); vx != 0 {
		t.Errorf("vx = %v, expected 0 after a release on a tiny screen", vx)
	}
}

func TestGameRenderHUD(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	expected := fmt.Sprintf("Score: 0. %d more left to pickup.", g.Controller().ItemsLeft())
	if row := scr.Row(0); !strings.Contains(row, expected) || !strings.Contains(row, "Level 1") {
		t.Errorf("HUD row = %q", row)
	}
	if row := scr.Row(1); !strings.Contains(row, controlsHint) {
		t.Errorf("hint row = %q", row)
	}
	if !strings.Contains(scr.String(), "[o]") {
		t.Error("player art not drawn")
	}

	g.Step(press(core.ActionPause))
	scr.Clear()
	g.Render(scr)
	if !strings.Contains(scr.String(), "PAUSED") {
		t.Error("pause box not drawn")
	}
}

// script is a fixed input sequence used by the determinism tests.
func script(tick int) core.InputFrame {
	switch {
	case tick%90 == 10:
		return press(core.ActionJump)
	case tick%120 == 0:
		return press(core.ActionRight)
	case tick%120 == 100:
		return release(core.ActionRight)
	case tick%200 == 150:
		return press(core.ActionLeft)
	case tick%200 == 170:
		return release(core.ActionLeft)
	}
	return core.NewInputFrame()
}

func TestGameDeterminism(t *testing.T) {
	modes := []struct {
		name string
		make func() *Game
	}{
		{"campaign", New},
		{"endless", NewEndless},
	}
	for _, mode := range modes {
		t.Run(mode.name, func(t *testing.T) {
			a := newTestGame(t, mode.make(), 80, 24)
			b := newTestGame(t, mode.make(), 80, 24)

			for tick := 0; tick < 600; tick++ {
				a.Step(script(tick))
				b.Step(script(tick))

				sa, sb := a.Snapshot(), b.Snapshot()
				if sa.Hash() != sb.Hash() {
					t.Fatalf("tick %d: hashes differ\n%+v\n%+v", tick, sa, sb)
				}
			}
		})
	}
}

func TestSnapshotHashSensitive(t *testing.T) {
	g := newTestGame(t, New(), 80, 24)
	base := g.Snapshot()

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"score", func(s *Snapshot) { s.Score++ }},
		{"player x", func(s *Snapshot) { s.PlayerX += 1 }},
		{"camera", func(s *Snapshot) { s.CameraY += 1 }},
		{"paused", func(s *Snapshot) { s.Paused = !s.Paused }},
		{"items", func(s *Snapshot) { s.ItemData = s.ItemData[:len(s.ItemData)-2] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := base
			snap.ItemData = append([]float64(nil), base.ItemData...)
			tt.mutate(&snap)
			if snap.Hash() == base.Hash() {
				t.Error("hash did not change")
			}
		})
	}
}

func TestGameStartAt(t *testing.T) {
	g := New()
	g.StartAt(3)
	newTestGame(t, g, 80, 24)
	if g.State().Level != 3 {
		t.Errorf("Level = %d, expected 3", g.State().Level)
	}

	e := NewEndless()
	e.StartAt(3)
	newTestGame(t, e, 80, 24)
	if e.State().Level != 1 {
		t.Errorf("endless Level = %d, expected 1", e.State().Level)
	}
}
