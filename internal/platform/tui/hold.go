package tui

import (
	"slices"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Terminal key repeat timing. The first repeat arrives after the initial
// delay, later ones at the repeat rate.
const (
	DefaultInitialDelay = 550 * time.Millisecond
	DefaultRepeatGap    = 120 * time.Millisecond
)

type held struct {
	last      time.Time
	repeating bool
}

// HoldTracker turns a stream of auto-repeated key presses into press and
// release events. Terminals report no key-up, so a key counts as released
// once its repeats stop arriving.
type HoldTracker struct {
	initialDelay time.Duration
	repeatGap    time.Duration
	keys         map[core.Action]*held
	exclusive    map[core.Action]core.Action
}

// NewHoldTracker creates a tracker with the given timeouts.
// Zero values use the defaults.
func NewHoldTracker(initialDelay, repeatGap time.Duration) *HoldTracker {
	if initialDelay <= 0 {
		initialDelay = DefaultInitialDelay
	}
	if repeatGap <= 0 {
		repeatGap = DefaultRepeatGap
	}
	return &HoldTracker{
		initialDelay: initialDelay,
		repeatGap:    repeatGap,
		keys:         make(map[core.Action]*held),
		exclusive: map[core.Action]core.Action{
			core.ActionLeft:  core.ActionRight,
			core.ActionRight: core.ActionLeft,
		},
	}
}

// Tracks reports whether the tracker handles a. Only walking needs a
// release; jump is gated by ground contact, so every jump press counts.
func (h *HoldTracker) Tracks(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

// Press records a key event at now. It returns true for the initial
// press and false for an auto-repeat of a key already held.
// Pressing a direction drops the opposite one without a release, since
// the new press already sets the velocity.
func (h *HoldTracker) Press(a core.Action, now time.Time) bool {
	if k, ok := h.keys[a]; ok {
		k.last = now
		k.repeating = true
		return false
	}
	if other, ok := h.exclusive[a]; ok {
		delete(h.keys, other)
	}
	h.keys[a] = &held{last: now}
	return true
}

// Expire returns the keys whose repeats stopped before now and forgets
// them. The result is sorted for deterministic delivery.
func (h *HoldTracker) Expire(now time.Time) []core.Action {
	var released []core.Action
	for a, k := range h.keys {
		timeout := h.initialDelay
		if k.repeating {
			timeout = h.repeatGap
		}
		if now.Sub(k.last) > timeout {
			released = append(released, a)
			delete(h.keys, a)
		}
	}
	slices.Sort(released)
	return released
}

// ReleaseAll forgets every held key and returns them sorted.
func (h *HoldTracker) ReleaseAll() []core.Action {
	released := make([]core.Action, 0, len(h.keys))
	for a := range h.keys {
		released = append(released, a)
	}
	clear(h.keys)
	slices.Sort(released)
	return released
}

// Held reports whether a is currently held.
func (h *HoldTracker) Held(a core.Action) bool {
	_, ok := h.keys[a]
	return ok
}

// Reset forgets all held keys.
func (h *HoldTracker) Reset() {
	clear(h.keys)
}
