package platformer

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// mapSpec describes a handcrafted test level.
type mapSpec struct {
	floor   []int // Columns with ground on row 0
	items   [][2]int
	hazards [][2]int
	width   int
}

func flat(width int) []int {
	cols := make([]int, width)
	for i := range cols {
		cols[i] = i
	}
	return cols
}

func (s mapSpec) build(name string) *engine.TileMap {
	m := &engine.TileMap{Name: name, Width: s.width, Height: 8, TileSize: 64}
	var ground, items, hazards []engine.Tile
	for _, c := range s.floor {
		ground = append(ground, engine.Tile{Col: c, Row: 0, Look: engine.Appearance{Glyph: '#'}})
	}
	for _, it := range s.items {
		items = append(items, engine.Tile{Col: it[0], Row: it[1], Scale: 0.5, Look: engine.Appearance{Glyph: 'o', Single: true}})
	}
	for _, hz := range s.hazards {
		hazards = append(hazards, engine.Tile{Col: hz[0], Row: hz[1], Look: engine.Appearance{Glyph: '^'}})
	}
	m.Layers = []engine.MapLayer{
		{Name: engine.LayerBackground},
		{Name: engine.LayerPlatforms, Tiles: ground},
		{Name: engine.LayerDeathBox, Tiles: hazards},
		{Name: engine.LayerItems, Tiles: items},
		{Name: engine.LayerForeground},
	}
	return m
}

// fakeSource serves handcrafted maps and fails for the rest.
type fakeSource struct {
	maps  map[int]mapSpec
	errs  map[int]error
	calls []int
}

func (f *fakeSource) Level(n int) (*engine.TileMap, error) {
	f.calls = append(f.calls, n)
	if err, ok := f.errs[n]; ok {
		return nil, err
	}
	spec, ok := f.maps[n]
	if !ok {
		return nil, fmt.Errorf("fake: level %d: %w", n, fs.ErrNotExist)
	}
	return spec.build(fmt.Sprintf("Level_%02d", n)), nil
}

// fakeFallback produces a flat map and records requests.
type fakeFallback struct {
	calls []int
}

func (f *fakeFallback) Generate(n int) *engine.TileMap {
	f.calls = append(f.calls, n)
	return mapSpec{floor: flat(30), width: 30}.build(fmt.Sprintf("Generated_%02d", n))
}

func newTestController(t *testing.T, maps map[int]mapSpec) (*Controller, *fakeSource, *fakeFallback) {
	t.Helper()
	src := &fakeSource{maps: maps}
	fb := &fakeFallback{}
	c := NewController(config.DefaultPlatformerConfig(), src, fb, nil)
	c.ResizeViewport(800, 400)
	c.Start(1)
	return c, src, fb
}

// settle ticks until the player stands on the ground.
func settle(t *testing.T, c *Controller) {
	t.Helper()
	for i := 0; i < 60; i++ {
		c.OnTick(0)
		if c.CanJump() {
			c.DrainSounds()
			return
		}
	}
	t.Fatal("player never landed")
}

func TestCameraClamp(t *testing.T) {
	c, _, _ := newTestController(t, map[int]mapSpec{1: {floor: flat(40), width: 40}})
	end := c.State().EndOfMap
	cam := c.Camera()

	tests := []struct {
		name     string
		px, py   float64
		expected float64
	}{
		{"left edge", 64, 128, 0},
		{"middle", 1500, 300, 1500 - 400},
		{"right edge", 2500, 300, end - 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.Player().SetPos(tt.px, tt.py)
			c.Player().SetVel(0, 0)
			c.OnTick(0)

			if cam.X != tt.expected {
				t.Errorf("camera X = %v, expected %v", cam.X, tt.expected)
			}
			if cam.X < 0 || cam.X > end-cam.ViewportW {
				t.Errorf("camera X = %v outside [0, %v]", cam.X, end-cam.ViewportW)
			}
			if cam.Y < 0 {
				t.Errorf("camera Y = %v, expected >= 0", cam.Y)
			}
		})
	}

	// High above the map the camera follows vertically
	c.Player().SetPos(1500, 1000)
	c.OnTick(0)
	_, py := c.Player().Pos()
	if cam.Y != py-200 {
		t.Errorf("camera Y = %v, expected %v", cam.Y, py-200)
	}
}

func TestCameraNarrowMapPinsLeft(t *testing.T) {
	c, _, _ := newTestController(t, map[int]mapSpec{1: {floor: flat(5), width: 5}})
	c.OnTick(0)
	if c.Camera().X != 0 {
		t.Errorf("camera X = %v, expected 0 for a map narrower than the viewport", c.Camera().X)
	}
}

func TestItemCountedOnce(t *testing.T) {
	c, _, _ := newTestController(t, map[int]mapSpec{1: {
		floor: flat(20),
		items: [][2]int{{3, 1}, {5, 1}},
		width: 20,
	}})
	settle(t, c)

	if c.ItemsLeft() != 2 {
		t.Fatalf("ItemsLeft = %d, expected 2", c.ItemsLeft())
	}

	c.OnInputPress(core.ActionRight)
	var cues []core.Sound
	prev := 0
	for i := 0; i < 80; i++ {
		c.OnTick(0)
		cues = append(cues, c.DrainSounds()...)
		score := c.State().Score
		if score < prev {
			t.Fatalf("score decreased from %d to %d", prev, score)
		}
		prev = score
	}

	if c.State().Score != 2 {
		t.Errorf("score = %d, expected 2", c.State().Score)
	}
	if c.ItemsLeft() != 0 {
		t.Errorf("ItemsLeft = %d, expected 0", c.ItemsLeft())
	}
	expected := []core.Sound{core.SoundCollect, core.SoundCollect}
	if !slices.Equal(cues, expected) {
		t.Errorf("cues = %v, expected %v", cues, expected)
	}
}

func TestHazardRespawn(t *testing.T) {
	c, _, _ := newTestController(t, map[int]mapSpec{1: {
		floor:   flat(20),
		hazards: [][2]int{{6, 1}},
		width:   20,
	}})
	settle(t, c)
	c.OnInputPress(core.ActionRight)

	for i := 0; i < 100 && c.Deaths() == 0; i++ {
		c.OnTick(0)
	}
	if c.Deaths() != 1 {
		t.Fatalf("Deaths = %d, expected 1", c.Deaths())
	}

	x, y := c.Player().Pos()
	if x != 64 || y != 128 {
		t.Errorf("respawn at (%v, %v), expected (64, 128)", x, y)
	}
	vx, vy := c.Player().Vel()
	if vx != 0 || vy != 0 {
		t.Errorf("velocity after hazard = (%v, %v), expected (0, 0)", vx, vy)
	}
	if cues := c.DrainSounds(); !slices.Equal(cues, []core.Sound{core.SoundGameOver}) {
		t.Errorf("cues = %v, expected one game over cue", cues)
	}
}

func TestFallRespawnKeepsVelocity(t *testing.T) {
	c, _, _ := newTestController(t, map[int]mapSpec{1: {
		floor: []int{0, 1, 2},
		items: [][2]int{{2, 1}},
		width: 20,
	}})
	settle(t, c)
	c.OnInputPress(core.ActionRight)

	respawned := false
	for i := 0; i < 200; i++ {
		c.OnTick(0)
		if x, y := c.Player().Pos(); i > 5 && x == 64 && y == 128 {
			respawned = true
			break
		}
	}
	if !respawned {
		t.Fatal("player never respawned after falling")
	}

	vx, vy := c.Player().Vel()
	if vx != 5 {
		t.Errorf("vx = %v, falling keeps horizontal velocity", vx)
	}
	if vy >= 0 {
		t.Errorf("vy = %v, falling keeps vertical velocity", vy)
	}
	if c.State().Score != 1 {
		t.Errorf("score = %d, falling keeps the score", c.State().Score)
	}
	for _, cue := range c.DrainSounds() {
		if cue == core.SoundGameOver {
			t.Error("falling should not play the game over cue")
		}
	}
	if c.Deaths() != 0 {
		t.Errorf("Deaths = %d, falling is not a death", c.Deaths())
	}
}

func TestLevelTransitionCarriesScore(t *testing.T) {
	c, _, _ := newTestController(t, map[int]mapSpec{
		1: {floor: flat(4), items: [][2]int{{2, 1}}, width: 4},
		2: {floor: flat(10), items: [][2]int{{5, 1}, {7, 1}}, width: 10},
	})
	settle(t, c)
	c.OnInputPress(core.ActionRight)

	for i := 0; i < 100 && c.State().Level == 1; i++ {
		c.OnTick(0)
	}

	st := c.State()
	if st.Level != 2 {
		t.Fatalf("Level = %d, expected 2", st.Level)
	}
	if st.Score != 1 {
		t.Errorf("score = %d, expected the level 1 score to carry over", st.Score)
	}
	if !st.ResetScore {
		t.Error("ResetScore should be restored after the transition")
	}
	if st.EndOfMap != 640 {
		t.Errorf("EndOfMap = %v, expected 640", st.EndOfMap)
	}
	if x, y := c.Player().Pos(); x != 64 || y != 128 {
		t.Errorf("player at (%v, %v), expected the spawn point", x, y)
	}
	if c.ItemsLeft() != 2 {
		t.Errorf("ItemsLeft = %d, expected 2 on the new level", c.ItemsLeft())
	}

	// A fresh run starts from zero
	c.Start(1)
	if c.State().Score != 0 || c.State().Level != 1 {
		t.Errorf("after Start: %+v", c.State())
	}
}

func TestJumpGating(t *testing.T) {
	c, _, _ := newTestController(t, map[int]mapSpec{1: {floor: flat(10), width: 10}})

	// Spawn point is in the air
	c.OnInputPress(core.ActionJump)
	if _, vy := c.Player().Vel(); vy != 0 {
		t.Errorf("airborne jump changed vy to %v", vy)
	}
	if cues := c.DrainSounds(); len(cues) != 0 {
		t.Errorf("airborne jump played %v", cues)
	}

	settle(t, c)
	c.OnInputPress(core.ActionJump)
	if _, vy := c.Player().Vel(); vy != 20 {
		t.Errorf("vy = %v, expected 20", vy)
	}
	if cues := c.DrainSounds(); !slices.Equal(cues, []core.Sound{core.SoundJump}) {
		t.Errorf("cues = %v, expected exactly one jump cue", cues)
	}

	c.OnTick(0)
	c.OnInputPress(core.ActionJump)
	if cues := c.DrainSounds(); len(cues) != 0 {
		t.Errorf("mid-air jump played %v", cues)
	}
}

func TestWalkAndRelease(t *testing.T) {
	c, _, _ := newTestController(t, map[int]mapSpec{1: {floor: flat(10), width: 10}})
	settle(t, c)

	c.OnInputPress(core.ActionLeft)
	if vx, _ := c.Player().Vel(); vx != -5 {
		t.Errorf("vx = %v, expected -5", vx)
	}
	c.OnInputPress(core.ActionRight)
	if vx, _ := c.Player().Vel(); vx != 5 {
		t.Errorf("vx = %v, expected 5", vx)
	}
	c.OnInputRelease(core.ActionRight)
	if vx, _ := c.Player().Vel(); vx != 0 {
		t.Errorf("vx = %v, expected 0 after release", vx)
	}
	c.OnInputRelease(core.ActionJump)
	if _, vy := c.Player().Vel(); vy != 0 {
		t.Errorf("releasing jump changed vy to %v", vy)
	}
}

func TestFullscreenToggle(t *testing.T) {
	c, _, _ := newTestController(t, map[int]mapSpec{1: {floor: flat(10), width: 10}})
	c.OnInputPress(core.ActionFullscreen)
	if !c.Fullscreen() {
		t.Error("fullscreen should be on")
	}
	c.OnInputPress(core.ActionFullscreen)
	if c.Fullscreen() {
		t.Error("fullscreen should be off")
	}
}

func TestSetupLevelIdempotent(t *testing.T) {
	c, _, _ := newTestController(t, map[int]mapSpec{1: {
		floor: flat(12),
		items: [][2]int{{4, 1}, {6, 1}},
		width: 12,
	}})

	c.SetupLevel(1)
	first := c.State()
	firstScene := c.Scene()
	firstLayers := firstScene.Layers()
	firstItems := c.ItemsLeft()

	c.SetupLevel(1)
	if c.State() != first {
		t.Errorf("state = %+v, expected %+v", c.State(), first)
	}
	if c.Scene() == firstScene {
		t.Error("SetupLevel should build a fresh scene")
	}
	if !slices.Equal(c.Scene().Layers(), firstLayers) {
		t.Errorf("layers = %v, expected %v", c.Scene().Layers(), firstLayers)
	}
	if c.ItemsLeft() != firstItems {
		t.Errorf("ItemsLeft = %d, expected %d", c.ItemsLeft(), firstItems)
	}
	if x, y := c.Player().Pos(); x != 64 || y != 128 {
		t.Errorf("player at (%v, %v), expected the spawn point", x, y)
	}

	expected := []string{
		engine.LayerBackground, engine.LayerPlatforms, engine.LayerDeathBox,
		engine.LayerItems, engine.LayerPlayer, engine.LayerForeground,
	}
	if !slices.Equal(firstLayers, expected) {
		t.Errorf("layers = %v, expected the player below the foreground", firstLayers)
	}
}

func TestSetupLevelClampsToFirstLevel(t *testing.T) {
	c, src, _ := newTestController(t, map[int]mapSpec{1: {floor: flat(12), width: 12}})
	src.calls = nil

	for _, n := range []int{0, -3} {
		c.SetupLevel(n)
		if c.State().Level != 1 {
			t.Errorf("SetupLevel(%d): Level = %d, expected 1", n, c.State().Level)
		}
		if c.MapName() != "Level_01" {
			t.Errorf("SetupLevel(%d): map = %q, expected Level_01", n, c.MapName())
		}
	}
	if !slices.Equal(src.calls, []int{1, 1}) {
		t.Errorf("source calls = %v, expected [1 1]", src.calls)
	}
}

func TestMissingAndBrokenLevelsFallBack(t *testing.T) {
	src := &fakeSource{
		maps: map[int]mapSpec{1: {floor: flat(4), width: 4}},
		errs: map[int]error{3: errors.New("yaml unmarshal: bad")},
	}
	fb := &fakeFallback{}
	c := NewController(config.DefaultPlatformerConfig(), src, fb, nil)
	c.ResizeViewport(800, 400)

	c.Start(1)
	if len(fb.calls) != 0 {
		t.Errorf("fallback used for an existing level: %v", fb.calls)
	}

	c.SetupLevel(2)
	c.SetupLevel(3)
	if !slices.Equal(fb.calls, []int{2, 3}) {
		t.Errorf("fallback calls = %v, expected [2 3]", fb.calls)
	}
	if c.MapName() != "Generated_03" {
		t.Errorf("MapName = %q", c.MapName())
	}
	if c.State().Level != 3 {
		t.Errorf("Level = %d, expected 3", c.State().Level)
	}
}
