package engine

import (
	"math"
)

// groundProbe is how far below the player CanJump looks for a wall.
const groundProbe = 5

// Physics is a simple platformer physics step: gravity, then movement
// along x and y resolved against the walls layer.
type Physics struct {
	scene   *Scene
	player  Sprite
	gravity float64
	walls   string
	maxStep float64
}

// NewPhysics creates a physics step for player against the given walls layer.
// Moves are split into sub-steps no longer than half a tile so fast falls
// cannot tunnel through thin platforms.
func NewPhysics(scene *Scene, player Sprite, gravity float64, walls string, tileSize float64) *Physics {
	return &Physics{
		scene:   scene,
		player:  player,
		gravity: gravity,
		walls:   walls,
		maxStep: max(tileSize/2, 1),
	}
}

// Player returns the sprite driven by this physics step.
func (p *Physics) Player() Sprite {
	return p.player
}

// Update advances the player by one tick. Horizontal velocity is kept
// when blocked; vertical velocity is zeroed on landing or bumping a ceiling.
func (p *Physics) Update() {
	if !p.player.Valid() {
		return
	}
	vx, vy := p.player.Vel()
	vy -= p.gravity

	if vx != 0 {
		p.move(vx, 0)
	}
	if vy != 0 && p.move(0, vy) {
		vy = 0
	}
	p.player.SetVel(vx, vy)
}

// move displaces the player along one axis and reports whether a wall stopped it.
func (p *Physics) move(dx, dy float64) bool {
	dist := math.Abs(dx) + math.Abs(dy)
	steps := int(math.Ceil(dist / p.maxStep))
	sx, sy := dx/float64(steps), dy/float64(steps)

	for i := 0; i < steps; i++ {
		box := p.player.Bounds()
		target := box.Offset(sx, sy)
		blocked := false
		for _, w := range p.scene.Blockers(p.player, sx, sy, p.walls) {
			if w.Intersects(box) {
				// Already overlapping, let the player walk out.
				continue
			}
			blocked = true
			switch {
			case sx > 0:
				target.X = min(target.X, w.X-box.W)
			case sx < 0:
				target.X = max(target.X, w.Right())
			case sy > 0:
				target.Y = min(target.Y, w.Y-box.H)
			case sy < 0:
				target.Y = max(target.Y, w.Top())
			}
		}
		cx, cy := target.Center()
		p.player.SetPos(cx, cy)
		if blocked {
			return true
		}
	}
	return false
}

// CanJump reports whether the player stands on a wall.
func (p *Physics) CanJump() bool {
	if !p.player.Valid() {
		return false
	}
	return len(p.scene.Blockers(p.player, 0, -groundProbe, p.walls)) > 0
}
