// Package platformer implements Robo Runner, a side-scrolling platformer:
// walk and jump across tile maps, pick up items, avoid death boxes and
// leave each map on the right to reach the next level.
package platformer

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// HUD layout
const (
	hudRows    = 2
	minScreenW = 40
	minScreenH = 12
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Level files first, generated layouts after
	ModeEndless                  // Generated layouts only
)

// Settings applied by the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       = 1
	levelsDir        string
	logger           *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetStartLevel sets the first level of a campaign run.
func SetStartLevel(level int) {
	startLevel = max(level, 1)
}

// SetLevelsDir makes campaign runs read level files from dir instead of
// the built-in levels.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game adapts the Controller to the registry.Game interface.
type Game struct {
	mode    GameMode
	runtime core.RuntimeConfig
	cfg     config.PlatformerConfig
	ctrl    *Controller

	start          int // Overrides the package start level when > 0
	proj           engine.Projection
	paused         bool
	tick           uint64
	screenTooSmall bool
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a game that only plays generated levels.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "platformer_endless"
	}
	return "platformer"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Robo Runner (Endless)"
	}
	return "Robo Runner"
}

// Reset loads configuration and starts a fresh run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("using default config", "err", err)
		}
		cfg = config.DefaultPlatformerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPlatformerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	difficulty := config.NewDifficultyManager(cfg.Difficulty)
	var (
		source LevelSource
		seed   int64
	)
	switch {
	case g.mode == ModeEndless:
		seed = runtime.Seed
	case levelsDir != "":
		source = levels.NewDirLoader(levelsDir)
	default:
		source = levels.Embedded()
	}
	gen := levels.NewGenerator(difficulty, seed, cfg.Map.TileSize)
	if source == nil {
		source = gen
	}

	g.ctrl = NewController(cfg, source, gen, logger)
	g.layout()
	g.paused = false
	g.tick = 0
	g.ctrl.Start(g.firstLevel())
}

// StartAt makes campaign runs of this game begin at level.
// It takes effect on the next Reset or restart.
func (g *Game) StartAt(level int) {
	g.start = max(level, 1)
}

func (g *Game) firstLevel() int {
	switch {
	case g.mode == ModeEndless:
		return 1
	case g.start > 0:
		return g.start
	}
	return startLevel
}

// layout derives the viewport from the screen size.
func (g *Game) layout() {
	w, h := g.runtime.ScreenW, g.runtime.ScreenH
	g.screenTooSmall = w < minScreenW || h < minScreenH
	g.proj = engine.Projection{
		CellW: g.cfg.Render.CellWidth,
		CellH: g.cfg.Render.CellHeight,
		Top:   hudRows,
		Rows:  max(h-hudRows, 1),
		Cols:  max(w, 1),
	}
	g.ctrl.ResizeViewport(g.proj.ViewportSize())
}

// Resize adapts the viewport to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.layout()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight} {
		if in.WasReleased(a) {
			g.ctrl.OnInputRelease(a)
		}
	}
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.paused = false
		g.tick = 0
		g.ctrl.Start(g.firstLevel())
		return core.StepResult{State: g.State()}
	}

	var result core.StepResult
	if in.Has(core.ActionFullscreen) {
		g.ctrl.OnInputPress(core.ActionFullscreen)
		result.ToggleFullscreen = true
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		result.State = g.State()
		return result
	}
	for _, a := range []core.Action{core.ActionJump, core.ActionLeft, core.ActionRight} {
		if in.Has(a) {
			g.ctrl.OnInputPress(a)
		}
	}

	g.ctrl.OnTick(g.tickDuration())
	g.tick++

	result.Sounds = g.ctrl.DrainSounds()
	result.State = g.State()
	return result
}

func (g *Game) tickDuration() time.Duration {
	if g.runtime.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(g.runtime.TickRate)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{}
	}
	st := g.ctrl.State()
	return core.GameState{
		Score:  st.Score,
		Level:  st.Level,
		Deaths: g.ctrl.Deaths(),
		Paused: g.paused,
	}
}

// Controller exposes the underlying controller.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

func init() {
	registry.Register("platformer", func() registry.Game {
		return New()
	})
	registry.Register("platformer_endless", func() registry.Game {
		return NewEndless()
	})
}
