// Package tui runs the game in a terminal with Bubble Tea, locally or
// over SSH. It maps keys to actions, drives the fixed tick, plays sound
// cues and records scores.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation step of the game model whose loop
// generation matches Gen. Ticks of a model that was left are dropped.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

var tickGen atomic.Uint64

func nextTickGen() uint64 {
	return tickGen.Add(1)
}

func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
