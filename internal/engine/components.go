package engine

import (
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Position is the centre of a sprite in world units (y grows upwards).
type Position struct {
	X, Y float64
}

// Size is the width and height of a sprite's hit box.
type Size struct {
	W, H float64
}

// Velocity is the per-tick displacement of a sprite.
type Velocity struct {
	X, Y float64
}

// Appearance describes how a sprite is drawn.
type Appearance struct {
	Glyph  rune
	Color  core.Color
	Single bool     // Draw the glyph once at the centre instead of filling the box
	Art    []string // Multi-line art anchored at the top-left cell, overrides Glyph
}

// InLayer records which layer a sprite belongs to.
type InLayer struct {
	Name string
}

// Body links a sprite to its spatial hash object. Obj is nil for sprites
// in layers without a spatial hash.
type Body struct {
	Obj *resolv.Object
}
