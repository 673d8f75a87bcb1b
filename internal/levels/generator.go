package levels

import (
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/levels/formats"
)

// Generator parameters.
const (
	genHeight      = 12 // Map rows
	genSafeCols    = 4  // Flat ground at both ends of the map
	genBaseHazard  = 0.15
	genBaseItem    = 0.45
	genBaseGap     = 1
	genLedgeChance = 0.35
)

// Appearance of generated tiles.
var (
	lookGround = engine.Appearance{Glyph: '█', Color: core.ColorBrown}
	lookLedge  = engine.Appearance{Glyph: '▀', Color: core.ColorGray}
	lookItem   = engine.Appearance{Glyph: '●', Color: core.ColorBrightYellow, Single: true}
	lookHazard = engine.Appearance{Glyph: '▲', Color: core.ColorBrightRed}
	lookCloud  = engine.Appearance{Glyph: '░', Color: core.ColorSky}
	lookGrass  = engine.Appearance{Glyph: '♣', Color: core.ColorGreen, Single: true}
)

// Generator builds deterministic level layouts for levels without a file.
type Generator struct {
	difficulty *config.DifficultyManager
	seed       int64
	tileSize   float64
}

// NewGenerator creates a generator. The same seed and level number always
// produce the same map.
func NewGenerator(difficulty *config.DifficultyManager, seed int64, tileSize float64) *Generator {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &Generator{difficulty: difficulty, seed: seed, tileSize: tileSize}
}

// Level implements the level source interface; generation never fails.
func (g *Generator) Level(n int) (*engine.TileMap, error) {
	return g.Generate(n), nil
}

// String describes the source.
func (g *Generator) String() string {
	return "generated"
}

type genLayers struct {
	tiles map[string][]engine.Tile
}

func (l *genLayers) add(layer string, col, row int, look engine.Appearance, scale float64) {
	l.tiles[layer] = append(l.tiles[layer], engine.Tile{Col: col, Row: row, Scale: scale, Look: look})
}

// Generate builds level n.
func (g *Generator) Generate(n int) *engine.TileMap {
	n = max(n, 1)
	rng := rand.New(rand.NewSource(g.seed*1_000_003 + int64(n)))

	hazard := g.difficulty.HazardChance(genBaseHazard, n, 0)
	item := g.difficulty.ItemChance(genBaseItem, n, 0)
	maxGap := g.difficulty.GapWidth(genBaseGap, n, 0)

	width := 40 + 4*min(n, 10)
	layers := &genLayers{tiles: make(map[string][]engine.Tile)}
	items := 0

	ground := 1
	col := 0
	for col < width {
		// Segment of solid ground
		seg := 3 + rng.Intn(5)
		if col < genSafeCols || col+seg > width-genSafeCols {
			seg = min(max(seg, genSafeCols), width-col)
		}
		hazardCol := -1
		if col >= genSafeCols && seg >= 5 && rng.Float64() < hazard {
			hazardCol = col + 2 + rng.Intn(seg-4)
		}
		// Raised ledge to hop over, with a reward on top
		ledge := -1
		if col >= genSafeCols && seg >= 4 && hazardCol < 0 && rng.Float64() < genLedgeChance {
			ledge = col + 1
			for c := ledge; c < ledge+3 && c < col+seg; c++ {
				layers.add(formats.LayerPlatforms, c, ground, lookLedge, 0)
			}
			layers.add(formats.LayerItems, ledge+1, ground+1, lookItem, 0.5)
			items++
		}

		for c := col; c < col+seg; c++ {
			for r := 0; r < ground; r++ {
				layers.add(formats.LayerPlatforms, c, r, lookGround, 0)
			}
			switch {
			case ledge >= 0 && c >= ledge && c < ledge+3:
			case c == hazardCol:
				layers.add(formats.LayerDeathBox, c, ground, lookHazard, 0)
			case c >= genSafeCols && rng.Float64() < item:
				layers.add(formats.LayerItems, c, ground, lookItem, 0.5)
				items++
			case rng.Intn(6) == 0:
				layers.add(formats.LayerForeground, c, ground, lookGrass, 0)
			}
		}
		col += seg

		if col >= width-genSafeCols {
			continue
		}
		// Pit, then a step up or down
		if rng.Intn(3) > 0 {
			col += min(1+rng.Intn(maxGap), width-genSafeCols-col)
		}
		ground = core.Clamp(ground+rng.Intn(3)-1, 1, 3)
	}

	if items == 0 {
		layers.add(formats.LayerItems, genSafeCols-1, 1, lookItem, 0.5)
	}

	for i := 0; i < width/8; i++ {
		layers.add(formats.LayerBackground, rng.Intn(width), genHeight-1-rng.Intn(3), lookCloud, 0)
	}

	m := &engine.TileMap{
		Name:     MapName(n),
		Width:    width,
		Height:   genHeight,
		TileSize: g.tileSize,
	}
	for _, name := range formats.LayerOrder {
		m.Layers = append(m.Layers, engine.MapLayer{Name: name, Tiles: layers.tiles[name]})
	}
	return m
}
