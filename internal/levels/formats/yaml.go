// Package formats provides level file format parsers.
package formats

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Layer names understood by the game.
const (
	LayerBackground = "Background"
	LayerPlatforms  = "Platforms"
	LayerDeathBox   = "Death Box"
	LayerItems      = "Items"
	LayerForeground = "Foreground"
)

// LayerOrder is the draw order of the standard layers, bottom first.
var LayerOrder = []string{LayerBackground, LayerPlatforms, LayerDeathBox, LayerItems, LayerForeground}

// YAMLLevel represents the YAML structure for a level file.
// Rows are listed top first; each character is one tile.
type YAMLLevel struct {
	Name     string              `yaml:"name"`
	TileSize float64             `yaml:"tile_size,omitempty"`
	Legend   map[string]YAMLTile `yaml:"legend,omitempty"`
	Rows     []string            `yaml:"rows"`
	Metadata map[string]string   `yaml:"metadata,omitempty"`
}

// YAMLTile describes what a legend character places.
type YAMLTile struct {
	Layer  string  `yaml:"layer"`
	Glyph  string  `yaml:"glyph"`
	Color  string  `yaml:"color"`
	Single bool    `yaml:"single,omitempty"`
	Scale  float64 `yaml:"scale,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	Name     string
	Width    int
	Height   int
	TileSize float64
	Layers   []Layer
	Metadata map[string]string
}

// Layer is a named list of tiles.
type Layer struct {
	Name  string
	Tiles []Tile
}

// Tile is one placement. Row 0 is the bottom row.
type Tile struct {
	Col, Row int
	Glyph    rune
	Color    core.Color
	Single   bool
	Scale    float64
}

// DefaultLegend returns the legend used when a file does not override a character.
func DefaultLegend() map[string]YAMLTile {
	return map[string]YAMLTile{
		"#": {Layer: LayerPlatforms, Glyph: "█", Color: "brown"},
		"=": {Layer: LayerPlatforms, Glyph: "▀", Color: "gray"},
		"B": {Layer: LayerPlatforms, Glyph: "▓", Color: "barn_red"},
		"o": {Layer: LayerItems, Glyph: "●", Color: "bright_yellow", Single: true, Scale: 0.5},
		"^": {Layer: LayerDeathBox, Glyph: "▲", Color: "bright_red"},
		"~": {Layer: LayerBackground, Glyph: "░", Color: "sky"},
		"*": {Layer: LayerForeground, Glyph: "♣", Color: "green", Single: true},
	}
}

// emptyCell reports whether a character leaves the tile empty.
func emptyCell(r rune) bool {
	return r == '.' || r == ' '
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl.ToLevel()
}

// ToLevel resolves the legend and converts rows into layered tiles.
func (yl YAMLLevel) ToLevel() (Level, error) {
	if len(yl.Rows) == 0 {
		return Level{}, fmt.Errorf("level %q has no rows", yl.Name)
	}

	legend := DefaultLegend()
	for k, v := range yl.Legend {
		if utf8.RuneCountInString(k) != 1 {
			return Level{}, fmt.Errorf("legend key %q must be a single character", k)
		}
		legend[k] = v
	}

	level := Level{
		Name:     yl.Name,
		Height:   len(yl.Rows),
		TileSize: yl.TileSize,
		Metadata: yl.Metadata,
	}

	layers := make(map[string]*Layer)
	var extra []string
	for _, name := range LayerOrder {
		layers[name] = &Layer{Name: name}
	}

	for i, line := range yl.Rows {
		row := len(yl.Rows) - 1 - i
		col := 0
		for _, r := range strings.TrimRight(line, " ") {
			if !emptyCell(r) {
				spec, ok := legend[string(r)]
				if !ok {
					return Level{}, fmt.Errorf("row %d col %d: unknown tile %q", i+1, col+1, r)
				}
				tile, err := spec.tile(col, row)
				if err != nil {
					return Level{}, fmt.Errorf("row %d col %d: %w", i+1, col+1, err)
				}
				l, ok := layers[spec.Layer]
				if !ok {
					l = &Layer{Name: spec.Layer}
					layers[spec.Layer] = l
					extra = append(extra, spec.Layer)
				}
				l.Tiles = append(l.Tiles, tile)
			}
			col++
		}
		level.Width = max(level.Width, col)
	}

	for _, name := range append(LayerOrder[:len(LayerOrder):len(LayerOrder)], extra...) {
		level.Layers = append(level.Layers, *layers[name])
	}
	return level, nil
}

func (t YAMLTile) tile(col, row int) (Tile, error) {
	if t.Layer == "" {
		return Tile{}, fmt.Errorf("legend entry has no layer")
	}
	glyph, size := utf8.DecodeRuneInString(t.Glyph)
	if size == 0 {
		glyph = '#'
	}
	color, ok := core.ParseColor(t.Color)
	if !ok {
		return Tile{}, fmt.Errorf("unknown color %q", t.Color)
	}
	if t.Scale < 0 || t.Scale > 1 {
		return Tile{}, fmt.Errorf("scale %v out of range (0, 1]", t.Scale)
	}
	return Tile{Col: col, Row: row, Glyph: glyph, Color: color, Single: t.Single, Scale: t.Scale}, nil
}

// Layer returns the named layer or nil.
func (l *Level) Layer(name string) *Layer {
	for i := range l.Layers {
		if l.Layers[i].Name == name {
			return &l.Layers[i]
		}
	}
	return nil
}

// Count returns the number of tiles in a layer.
func (l *Level) Count(name string) int {
	if layer := l.Layer(name); layer != nil {
		return len(layer.Tiles)
	}
	return 0
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
