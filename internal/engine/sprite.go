package engine

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Sprite is a handle to an entity in a Scene. The zero Sprite is invalid.
type Sprite struct {
	scene  *Scene
	entity ecs.Entity
}

// Valid reports whether the sprite still exists in its scene.
func (sp Sprite) Valid() bool {
	return sp.scene != nil && sp.scene.world.Alive(sp.entity)
}

// Pos returns the sprite centre.
func (sp Sprite) Pos() (x, y float64) {
	p := sp.scene.pos.Get(sp.entity)
	return p.X, p.Y
}

// SetPos moves the sprite centre and keeps its spatial hash entry in sync.
func (sp Sprite) SetPos(x, y float64) {
	p := sp.scene.pos.Get(sp.entity)
	p.X, p.Y = x, y
	if obj := sp.scene.body.Get(sp.entity).Obj; obj != nil {
		size := sp.scene.size.Get(sp.entity)
		obj.X = x - size.W/2
		obj.Y = y - size.H/2
		obj.Update()
	}
}

// Vel returns the sprite velocity.
func (sp Sprite) Vel() (vx, vy float64) {
	v := sp.scene.vel.Get(sp.entity)
	return v.X, v.Y
}

// SetVel sets the sprite velocity.
func (sp Sprite) SetVel(vx, vy float64) {
	v := sp.scene.vel.Get(sp.entity)
	v.X, v.Y = vx, vy
}

// SetVelX sets the horizontal velocity only.
func (sp Sprite) SetVelX(vx float64) {
	sp.scene.vel.Get(sp.entity).X = vx
}

// SetVelY sets the vertical velocity only.
func (sp Sprite) SetVelY(vy float64) {
	sp.scene.vel.Get(sp.entity).Y = vy
}

// Bounds returns the sprite hit box.
func (sp Sprite) Bounds() core.RectF {
	p := sp.scene.pos.Get(sp.entity)
	size := sp.scene.size.Get(sp.entity)
	return core.CenteredRectF(p.X, p.Y, size.W, size.H)
}

// Layer returns the name of the sprite's layer.
func (sp Sprite) Layer() string {
	return sp.scene.layerOf.Get(sp.entity).Name
}

// ID returns a stable identifier for the sprite within its scene.
func (sp Sprite) ID() uint32 {
	return sp.entity.ID()
}
