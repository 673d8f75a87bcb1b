package platformer

import (
	"errors"
	"io"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// LevelSource supplies level geometry by level number.
type LevelSource interface {
	Level(n int) (*engine.TileMap, error)
}

// Fallback builds a layout for levels the source cannot supply.
type Fallback interface {
	Generate(n int) *engine.TileMap
}

// GameState is the mutable per-run state owned by the controller.
type GameState struct {
	Score      int
	Level      int
	ResetScore bool    // Cleared to carry the score into the next SetupLevel
	EndOfMap   float64 // Right edge of the map in world units
}

// layerOptions lists the layers that need a spatial hash.
var layerOptions = map[string]engine.LayerOptions{
	engine.LayerPlatforms: {SpatialHash: true},
	engine.LayerItems:     {SpatialHash: true},
	engine.LayerDeathBox:  {SpatialHash: true},
}

var playerLook = engine.Appearance{
	Color: core.ColorBrightCyan,
	Art: []string{
		"[o]",
		"/█\\",
		"/ \\",
	},
}

// Controller applies the per-tick platformer rules on top of the engine:
// item pickup, hazard and fall respawn, level transitions and camera follow.
type Controller struct {
	cfg      config.PlatformerConfig
	source   LevelSource
	fallback Fallback
	logger   *log.Logger

	state   GameState
	mapName string
	scene   *engine.Scene
	player  engine.Sprite
	physics *engine.Physics
	camera  *engine.Camera

	sounds     []core.Sound
	fullscreen bool
	deaths     int
}

// NewController creates a controller. A nil logger discards log output.
func NewController(cfg config.PlatformerConfig, source LevelSource, fallback Fallback, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		cfg:      cfg,
		source:   source,
		fallback: fallback,
		logger:   logger,
		state:    GameState{Level: 1, ResetScore: true},
		camera:   engine.NewCamera(0, 0),
	}
}

// Start begins a fresh run at the given level with a zero score.
func (c *Controller) Start(level int) {
	c.state.ResetScore = true
	c.deaths = 0
	c.sounds = c.sounds[:0]
	c.SetupLevel(max(level, 1))
}

// SetupLevel loads level n and rebuilds the scene, physics and camera.
// The score is reset unless the previous transition suppressed it.
func (c *Controller) SetupLevel(n int) {
	n = max(n, 1)
	m := c.loadMap(n)

	scene := engine.SceneFromTileMap(m, layerOptions)
	scene.AddLayerBefore(engine.LayerPlayer, engine.LayerForeground, true)

	p := c.cfg.Player
	c.player = scene.AddSprite(engine.LayerPlayer, p.StartX, p.StartY, p.Width, p.Height, playerLook)
	c.physics = engine.NewPhysics(scene, c.player, c.cfg.Physics.Gravity, engine.LayerPlatforms, m.TileSize)
	c.scene = scene
	c.mapName = m.Name
	c.camera.Reset()

	c.state.Level = n
	c.state.EndOfMap = m.PixelWidth()
	if c.state.ResetScore {
		c.state.Score = 0
	}
	c.state.ResetScore = true

	c.logger.Debug("level ready", "level", n, "map", m.Name,
		"items", scene.Count(engine.LayerItems), "end", c.state.EndOfMap)
}

func (c *Controller) loadMap(n int) *engine.TileMap {
	if c.source != nil {
		m, err := c.source.Level(n)
		if err == nil {
			return m
		}
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("no level file, generating layout", "level", n)
		} else {
			c.logger.Warn("level file unusable, generating layout", "level", n, "err", err)
		}
	}
	return c.fallback.Generate(n)
}

// OnTick advances the game by one fixed step.
func (c *Controller) OnTick(time.Duration) {
	c.physics.Update()
	c.centerCameraToPlayer()

	for _, item := range c.scene.Colliding(c.player, engine.LayerItems) {
		c.scene.Remove(item)
		c.sounds = append(c.sounds, core.SoundCollect)
		c.state.Score++
	}

	start := c.cfg.Player
	if _, y := c.player.Pos(); y < c.cfg.Map.FallThreshold {
		c.player.SetPos(start.StartX, start.StartY)
	}

	if len(c.scene.Colliding(c.player, engine.LayerDeathBox)) > 0 {
		c.player.SetVel(0, 0)
		c.player.SetPos(start.StartX, start.StartY)
		c.sounds = append(c.sounds, core.SoundGameOver)
		c.deaths++
		c.logger.Debug("hit death box", "level", c.state.Level, "deaths", c.deaths)
	}

	if x, _ := c.player.Pos(); x >= c.state.EndOfMap {
		c.state.Level++
		c.state.ResetScore = false
		c.logger.Info("level complete", "next", c.state.Level, "score", c.state.Score)
		c.SetupLevel(c.state.Level)
	}
}

// OnInputPress applies a key press.
func (c *Controller) OnInputPress(a core.Action) {
	switch a {
	case core.ActionFullscreen:
		c.fullscreen = !c.fullscreen
		c.centerCameraToPlayer()
	case core.ActionJump:
		if c.physics.CanJump() {
			c.player.SetVelY(c.cfg.Physics.JumpSpeed)
			c.sounds = append(c.sounds, core.SoundJump)
		}
	case core.ActionLeft:
		c.player.SetVelX(-c.cfg.Physics.PlayerSpeed)
	case core.ActionRight:
		c.player.SetVelX(c.cfg.Physics.PlayerSpeed)
	}
}

// OnInputRelease applies a key release.
func (c *Controller) OnInputRelease(a core.Action) {
	if a == core.ActionLeft || a == core.ActionRight {
		c.player.SetVelX(0)
	}
}

// centerCameraToPlayer centres the viewport on the player, clamped to the map.
func (c *Controller) centerCameraToPlayer() {
	px, py := c.player.Pos()
	x := core.ClampF(px-c.camera.ViewportW/2, 0, c.state.EndOfMap-c.camera.ViewportW)
	y := max(py-c.camera.ViewportH/2, 0)
	c.camera.MoveTo(x, y)
}

// ResizeViewport changes the camera size and re-centres it.
func (c *Controller) ResizeViewport(w, h float64) {
	c.camera.Resize(w, h)
	if c.scene != nil {
		c.centerCameraToPlayer()
	}
}

// DrainSounds returns and clears the cues queued since the last call.
func (c *Controller) DrainSounds() []core.Sound {
	if len(c.sounds) == 0 {
		return nil
	}
	out := make([]core.Sound, len(c.sounds))
	copy(out, c.sounds)
	c.sounds = c.sounds[:0]
	return out
}

// State returns a copy of the game state.
func (c *Controller) State() GameState { return c.state }

// Fullscreen reports whether fullscreen presentation is requested.
func (c *Controller) Fullscreen() bool { return c.fullscreen }

// Deaths returns the number of hazard hits in this run.
func (c *Controller) Deaths() int { return c.deaths }

// ItemsLeft returns the number of collectibles remaining on the level.
func (c *Controller) ItemsLeft() int { return c.scene.Count(engine.LayerItems) }

// MapName returns the name of the loaded map.
func (c *Controller) MapName() string { return c.mapName }

// Player returns the player sprite.
func (c *Controller) Player() engine.Sprite { return c.player }

// Scene returns the current level scene.
func (c *Controller) Scene() *engine.Scene { return c.scene }

// Camera returns the camera.
func (c *Controller) Camera() *engine.Camera { return c.camera }

// CanJump reports whether the player stands on a platform.
func (c *Controller) CanJump() bool { return c.physics.CanJump() }
