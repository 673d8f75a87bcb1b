package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Game IDs offered by the menu.
const (
	campaignID = "platformer"
	endlessID  = "platformer_endless"
)

// MenuSelection is what the player picked.
type MenuSelection struct {
	GameID string
	Level  int // 0 starts at the default level
}

type menuEntry struct {
	label string
	pick  func(m *MenuModel) tea.Cmd
}

// MenuModel is the title screen: pick a mode, a level or the scoreboard.
type MenuModel struct {
	entries     []menuEntry
	levels      []levels.Info
	cursor      int
	levelCursor int
	inLevels    bool
	width       int
	height      int
	store       *storage.Store
	keyMapper   *KeyMapper

	selection  *MenuSelection
	scoreboard bool
	quitting   bool
	subtitle   string
}

// NewMenuModel creates the menu. infos lists the playable level files and
// store may be nil.
func NewMenuModel(store *storage.Store, infos []levels.Info, width, height int) MenuModel {
	m := MenuModel{
		levels:    playable(infos),
		width:     width,
		height:    height,
		store:     store,
		keyMapper: NewKeyMapper(),
	}
	m.entries = []menuEntry{
		{registry.Title(campaignID), func(m *MenuModel) tea.Cmd {
			m.selection = &MenuSelection{GameID: campaignID}
			return nil
		}},
		{registry.Title(endlessID), func(m *MenuModel) tea.Cmd {
			m.selection = &MenuSelection{GameID: endlessID}
			return nil
		}},
	}
	if len(m.levels) > 0 {
		m.entries = append(m.entries, menuEntry{"Select Level...", func(m *MenuModel) tea.Cmd {
			m.inLevels = true
			m.levelCursor = 0
			return nil
		}})
	}
	m.entries = append(m.entries,
		menuEntry{"High Scores", func(m *MenuModel) tea.Cmd {
			m.scoreboard = true
			return nil
		}},
		menuEntry{"Quit", func(m *MenuModel) tea.Cmd {
			m.quitting = true
			return tea.Quit
		}},
	)
	m.subtitle = m.bestLine()
	return m
}

func playable(infos []levels.Info) []levels.Info {
	out := make([]levels.Info, 0, len(infos))
	for _, info := range infos {
		if info.Err == nil {
			out = append(out, info)
		}
	}
	return out
}

// bestLine summarizes the stored campaign record.
func (m MenuModel) bestLine() string {
	if m.store == nil {
		return ""
	}
	stats, err := m.store.GetGameStats(campaignID)
	if err != nil || stats.GamesCount == 0 {
		return "No runs yet"
	}
	return fmt.Sprintf("Best: %d  |  Furthest level: %d", stats.HighScore, stats.MaxLevel)
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevels {
			return m.handleLevelKey(action)
		}
		return m.handleKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, len(m.entries)-1)
	case MenuActionSelect:
		cmd := m.entries[m.cursor].pick(&m)
		return m, cmd
	case MenuActionScoreboard:
		m.scoreboard = true
	}
	return m, nil
}

func (m MenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.levelCursor = max(m.levelCursor-1, 0)
	case MenuActionDown:
		m.levelCursor = min(m.levelCursor+1, len(m.levels)-1)
	case MenuActionSelect:
		m.selection = &MenuSelection{GameID: campaignID, Level: m.levels[m.levelCursor].Number}
	case MenuActionBack:
		m.inLevels = false
	}
	return m, nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var lines []string
	if m.inLevels {
		lines = append(lines, titleStyle.Render("SELECT LEVEL"), "")
		for i, info := range m.levels {
			line := fmt.Sprintf("%2d. %-14s %3d items", info.Number, info.Name, info.Items)
			lines = append(lines, m.item(line, i == m.levelCursor))
		}
		lines = append(lines, "", dimStyle.Render("Enter: Play  |  Esc: Back  |  Q: Quit"))
	} else {
		lines = append(lines, titleStyle.Render("R O B O   R U N N E R"), "")
		if m.subtitle != "" {
			lines = append(lines, dimStyle.Render(m.subtitle), "")
		}
		for i, e := range m.entries {
			lines = append(lines, m.item(e.label, i == m.cursor))
		}
		lines = append(lines, "", dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"))
	}

	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width <= 0 || m.height <= 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m MenuModel) item(label string, selected bool) string {
	if selected {
		return cursorStyle.Render("> " + label + "  ")
	}
	return "  " + label + "  "
}

// Selected returns the selection, or nil while the player is choosing.
func (m MenuModel) Selected() *MenuSelection {
	return m.selection
}

// WantsScoreboard reports whether the scoreboard was requested.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// IsQuitting reports whether the player quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
