package engine

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func testMap() *TileMap {
	m := &TileMap{Name: "Level_01", Width: 4, Height: 3, TileSize: 64}
	m.Layers = []MapLayer{
		{Name: LayerPlatforms, Tiles: []Tile{
			{Col: 0, Row: 0, Look: Appearance{Glyph: '#'}},
			{Col: 1, Row: 0, Look: Appearance{Glyph: '#'}},
			{Col: 2, Row: 0, Look: Appearance{Glyph: '#'}},
			{Col: 3, Row: 0, Look: Appearance{Glyph: '#'}},
		}},
		{Name: LayerItems, Tiles: []Tile{
			{Col: 2, Row: 1, Scale: 0.5, Look: Appearance{Glyph: 'o', Single: true}},
		}},
		{Name: LayerForeground},
	}
	return m
}

func TestSceneFromTileMap(t *testing.T) {
	m := testMap()
	s := SceneFromTileMap(m, map[string]LayerOptions{
		LayerPlatforms: {SpatialHash: true},
		LayerItems:     {SpatialHash: true},
		LayerDeathBox:  {SpatialHash: true},
	})

	if s.Count(LayerPlatforms) != 4 || s.Count(LayerItems) != 1 {
		t.Fatalf("counts = %d/%d, expected 4/1", s.Count(LayerPlatforms), s.Count(LayerItems))
	}
	if !s.HasLayer(LayerDeathBox) {
		t.Error("layer named in options should exist even when the map lacks it")
	}
	if m.PixelWidth() != 256 {
		t.Errorf("PixelWidth = %v, expected 256", m.PixelWidth())
	}

	item := s.Sprites(LayerItems)[0]
	expected := core.RectF{X: 144, Y: 80, W: 32, H: 32}
	if item.Bounds() != expected {
		t.Errorf("item bounds = %+v, expected %+v", item.Bounds(), expected)
	}
}

func TestDrawProjectsTiles(t *testing.T) {
	s := SceneFromTileMap(testMap(), map[string]LayerOptions{LayerPlatforms: {SpatialHash: true}})
	scr := core.NewScreen(16, 6)
	p := Projection{CellW: 16, CellH: 32, Top: 0, Rows: 6, Cols: 16}
	cam := NewCamera(p.ViewportSize())

	Draw(scr, s, cam, p)

	// Floor covers the two bottom rows across the map width
	for _, row := range []int{4, 5} {
		if got := scr.Row(row); got != strings.Repeat("#", 16) {
			t.Errorf("row %d = %q, expected floor", row, got)
		}
	}
	// Item is a single glyph inside tile (2, 1)
	if got := strings.Count(scr.String(), "o"); got != 1 {
		t.Errorf("item glyphs = %d, expected 1", got)
	}
	if scr.Get(9, 2) != 'o' {
		t.Errorf("item not drawn at (9, 2):\n%s", scr.String())
	}
}

func TestDrawFollowsCamera(t *testing.T) {
	s := SceneFromTileMap(testMap(), nil)
	scr := core.NewScreen(8, 6)
	p := Projection{CellW: 16, CellH: 32, Rows: 6, Cols: 8}
	cam := NewCamera(p.ViewportSize())
	cam.MoveTo(192, 0)

	Draw(scr, s, cam, p)

	// Only the last tile (x 192..256) is visible: 4 columns
	if got := scr.Row(5); got != "####    " {
		t.Errorf("row 5 = %q, expected %q", got, "####    ")
	}
}
