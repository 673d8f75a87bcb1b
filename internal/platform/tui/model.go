package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// SoundPlayer plays sound cues. Implementations must not block.
type SoundPlayer interface {
	Play(cue core.Sound)
}

// ScoreStore is the part of storage.Store the game model uses.
type ScoreStore interface {
	SaveScore(gameID string, score, level int) (int64, error)
	SaveRun(run storage.Run) (uuid.UUID, error)
}

// Options configures a GameModel. Zero values disable the feature.
type Options struct {
	Store      ScoreStore
	Sound      SoundPlayer
	Logger     *log.Logger
	Fullscreen bool   // Whether the program starts on the alternate screen
	Session    string // Session label for logs
	Now        func() time.Time
}

// GameModel runs one game: it maps keys to actions, steps the game on
// every tick, plays cues, and records the run when the player leaves.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	config core.RuntimeConfig
	opts   Options
	logger *log.Logger
	keys   *KeyMapper
	hold   *HoldTracker
	gen    uint64

	input core.InputFrame
	state core.GameState

	run        *runRecord
	fullscreen bool
	quitting   bool
	backToMenu bool
}

// runRecord tracks one attempt from (re)start to quit or restart.
type runRecord struct {
	id       uuid.UUID
	started  time.Time
	maxLevel int
	saved    bool
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Session != "" {
		logger = logger.With("session", opts.Session)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		logger:     logger,
		keys:       NewKeyMapper(),
		hold:       NewHoldTracker(0, 0),
		gen:        nextTickGen(),
		input:      core.NewInputFrame(),
		run:        &runRecord{},
		fullscreen: opts.Fullscreen,
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.start()
	return tickCmd(m.config.TickRate, m.gen)
}

// start resets the game and opens a new run record. The record is shared
// by pointer so it survives the value copies Bubble Tea makes.
func (m *GameModel) start() {
	m.game.Reset(m.config)
	m.state = m.game.State()
	m.newRun()
}

func (m *GameModel) newRun() {
	*m.run = runRecord{
		id:       uuid.New(),
		started:  m.opts.Now(),
		maxLevel: max(m.state.Level, 1),
	}
	m.logger.Info("run started", "game", m.game.ID(), "run", m.run.id, "level", m.run.maxLevel)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.At)
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Back) && m.state.Paused:
		m.finishRun()
		m.backToMenu = true
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch {
	case action == core.ActionNone:
	case action == core.ActionQuit:
		m.finishRun()
		m.quitting = true
		return m, tea.Quit
	case m.hold.Tracks(action):
		if m.hold.Press(action, m.opts.Now()) {
			m.input.Set(action)
		}
	case action == core.ActionPause:
		// Held keys are let go across a pause toggle so the next
		// repeat counts as a fresh press.
		for _, a := range m.hold.ReleaseAll() {
			m.input.Release(a)
		}
		m.input.Set(action)
	default:
		m.input.Set(action)
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	m.game.Reset(m.config)
	m.state = m.game.State()
	return m, nil
}

func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, a := range m.hold.Expire(now) {
		m.input.Release(a)
	}

	if m.input.Has(core.ActionRestart) {
		m.finishRun()
		m.hold.Reset()
	}

	prev := m.state
	result := m.game.Step(m.input)
	m.state = result.State
	restarted := m.input.Has(core.ActionRestart)
	m.input.Clear()

	if restarted {
		m.newRun()
	}
	m.track(prev)

	for _, cue := range result.Sounds {
		if m.opts.Sound != nil {
			m.opts.Sound.Play(cue)
		}
	}

	cmds := []tea.Cmd{tickCmd(m.config.TickRate, m.gen)}
	if result.ToggleFullscreen {
		m.fullscreen = !m.fullscreen
		if m.fullscreen {
			cmds = append(cmds, tea.EnterAltScreen)
		} else {
			cmds = append(cmds, tea.ExitAltScreen)
		}
	}
	return m, tea.Batch(cmds...)
}

// track logs state changes worth keeping in the log file.
func (m *GameModel) track(prev core.GameState) {
	st := m.state
	if st.Level != prev.Level {
		m.logger.Info("level changed", "from", prev.Level, "to", st.Level, "score", st.Score)
		m.run.maxLevel = max(m.run.maxLevel, st.Level)
	}
	if st.Deaths > prev.Deaths {
		m.logger.Debug("player died", "level", st.Level, "deaths", st.Deaths)
	}
	if st.Paused != prev.Paused {
		m.logger.Debug("pause toggled", "paused", st.Paused)
	}
}

// finishRun records the current run once.
func (m *GameModel) finishRun() {
	if m.run.saved {
		return
	}
	m.run.saved = true

	st := m.state
	duration := m.opts.Now().Sub(m.run.started)
	m.logger.Info("run finished", "game", m.game.ID(), "run", m.run.id,
		"score", st.Score, "level", m.run.maxLevel, "deaths", st.Deaths, "duration", duration.Round(time.Second))

	if m.opts.Store == nil {
		return
	}
	if st.Score > 0 {
		if _, err := m.opts.Store.SaveScore(m.game.ID(), st.Score, st.Level); err != nil {
			m.logger.Warn("could not save score", "err", err)
		}
	}
	_, err := m.opts.Store.SaveRun(storage.Run{
		ID:       m.run.id,
		GameID:   m.game.ID(),
		Score:    st.Score,
		Level:    m.run.maxLevel,
		Deaths:   st.Deaths,
		Duration: duration,
	})
	if err != nil {
		m.logger.Warn("could not save run", "err", err)
	}
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".platformer", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), m.opts.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.state
}

// Fullscreen reports whether the model is on the alternate screen.
func (m GameModel) Fullscreen() bool {
	return m.fullscreen
}

// IsQuitting reports whether the user asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, cfg, opts)

	var progOpts []tea.ProgramOption
	if opts.Fullscreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(model, progOpts...).Run()
	return err
}
