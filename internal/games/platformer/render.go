package platformer

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
)

const controlsHint = "Press F11 to toggle fullscreen. Use WASD to move."

// Render draws the level through the camera and the HUD above it.
func (g *Game) Render(dst *core.Screen) {
	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Screen too small")
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	engine.Draw(dst, g.ctrl.Scene(), g.ctrl.Camera(), g.proj)
	g.renderHUD(dst)

	if g.paused {
		g.renderPause(dst)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	st := g.ctrl.State()
	score := fmt.Sprintf("Score: %d. %d more left to pickup.", st.Score, g.ctrl.ItemsLeft())
	dst.DrawTextColor(1, 0, score, core.ColorBrightWhite)

	level := fmt.Sprintf("Level %d", st.Level)
	dst.DrawTextColor(dst.Width()-len(level)-1, 0, level, core.ColorBrightYellow)

	dst.DrawTextColor(1, 1, controlsHint, core.ColorGray)
}

func (g *Game) renderPause(dst *core.Screen) {
	lines := []string{"PAUSED", "", "P to resume", "R to restart", "Q to quit"}
	w, h := 22, len(lines)+2
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawTextCentered(box.Y+1+i, line)
	}
}
