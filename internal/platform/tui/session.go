package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// levelStarter is implemented by games that can start at a chosen level.
type levelStarter interface {
	StartAt(level int)
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScores
	screenGame
)

// SessionModel drives the whole flow of one player: menu, game and
// scoreboard. It is used for the local menu and for every SSH session.
type SessionModel struct {
	store  *storage.Store
	infos  []levels.Info
	config core.RuntimeConfig
	opts   Options

	screen sessionScreen
	menu   MenuModel
	board  ScoreboardModel
	game   GameModel

	quitting bool
}

// NewSessionModel creates a session. store may be nil.
func NewSessionModel(store *storage.Store, infos []levels.Info, cfg core.RuntimeConfig, opts Options) SessionModel {
	opts.Store = scoreStore(store)
	return SessionModel{
		store:  store,
		infos:  infos,
		config: cfg,
		opts:   opts,
		menu:   NewMenuModel(store, infos, cfg.ScreenW, cfg.ScreenH),
	}
}

// scoreStore avoids wrapping a nil *storage.Store in a non-nil interface.
func scoreStore(store *storage.Store) ScoreStore {
	if store == nil {
		return nil
	}
	return store
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		m.board = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.board.Init()
	}

	sel := m.menu.Selected()
	if sel == nil {
		return m, cmd
	}
	game, err := registry.Create(sel.GameID)
	if err != nil {
		m.menu = NewMenuModel(m.store, m.infos, m.config.ScreenW, m.config.ScreenH)
		return m, nil
	}
	if s, ok := game.(levelStarter); ok && sel.Level > 0 {
		s.StartAt(sel.Level)
	}

	opts := m.opts
	opts.Fullscreen = true
	m.game = NewGameModel(game, m.config, opts)
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	m.board = next.(ScoreboardModel)

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// toMenu rebuilds the menu so it shows fresh records. A game left on the
// inline screen is switched back to the alternate screen.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.screen == screenGame && !m.game.Fullscreen() {
		cmd = tea.EnterAltScreen
	}
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.infos, m.config.ScreenW, m.config.ScreenH)
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.board.View()
	}
	return m.menu.View()
}

// RunSession runs the menu flow in the local terminal.
func RunSession(store *storage.Store, infos []levels.Info, cfg core.RuntimeConfig, opts Options) error {
	_, err := tea.NewProgram(
		NewSessionModel(store, infos, cfg, opts),
		tea.WithAltScreen(),
	).Run()
	return err
}
