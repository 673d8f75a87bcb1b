package engine

import (
	"maps"
	"slices"
)

// TileMap is a level geometry description: named layers of tile placements.
type TileMap struct {
	Name     string
	Width    int     // Columns
	Height   int     // Rows
	TileSize float64 // World units per tile edge
	Layers   []MapLayer
}

// MapLayer is a named set of tiles drawn together.
type MapLayer struct {
	Name  string
	Tiles []Tile
}

// Tile is one placement. Row 0 is the bottom row of the map.
type Tile struct {
	Col, Row int
	Scale    float64 // Hit box edge as a fraction of the tile, 0 means 1
	Look     Appearance
}

// LayerOptions configures a layer when building a scene from a map.
type LayerOptions struct {
	SpatialHash bool
}

// PixelWidth returns the map width in world units.
func (m *TileMap) PixelWidth() float64 {
	return float64(m.Width) * m.TileSize
}

// PixelHeight returns the map height in world units.
func (m *TileMap) PixelHeight() float64 {
	return float64(m.Height) * m.TileSize
}

// Layer returns the layer with the given name, or nil.
func (m *TileMap) Layer(name string) *MapLayer {
	for i := range m.Layers {
		if m.Layers[i].Name == name {
			return &m.Layers[i]
		}
	}
	return nil
}

// TileCenter returns the world coordinates of a tile's centre.
func (m *TileMap) TileCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * m.TileSize, (float64(row) + 0.5) * m.TileSize
}

// SceneFromTileMap builds a scene with one layer per map layer, in map order.
// Layers named in opts but absent from the map are still created empty.
func SceneFromTileMap(m *TileMap, opts map[string]LayerOptions) *Scene {
	// Leave headroom above the map for jumps.
	scene := NewScene(m.PixelWidth(), m.PixelHeight()+4*m.TileSize, m.TileSize)

	for _, l := range m.Layers {
		scene.AddLayer(l.Name, opts[l.Name].SpatialHash)
		for _, t := range l.Tiles {
			scale := t.Scale
			if scale <= 0 {
				scale = 1
			}
			cx, cy := m.TileCenter(t.Col, t.Row)
			edge := m.TileSize * scale
			scene.AddSprite(l.Name, cx, cy, edge, edge, t.Look)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(opts)) {
		scene.AddLayer(name, opts[name].SpatialHash)
	}
	return scene
}

// Count returns the number of tiles in a layer.
func (m *TileMap) Count(layer string) int {
	if l := m.Layer(layer); l != nil {
		return len(l.Tiles)
	}
	return 0
}
