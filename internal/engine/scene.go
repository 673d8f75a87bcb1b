// Package engine provides the sprite world, spatial hash, camera and
// platformer physics used by the game controller.
//
// Sprites live in an ark ECS world; layers that need collision queries
// also register each sprite in a resolv spatial hash. Coordinates are
// world units with y growing upwards, and sprite positions are centres.
package engine

import (
	"fmt"
	"slices"
	"sort"

	"github.com/mlange-42/ark/ecs"
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Layer names used by level maps.
const (
	LayerPlatforms  = "Platforms"
	LayerItems      = "Items"
	LayerForeground = "Foreground"
	LayerBackground = "Background"
	LayerDeathBox   = "Death Box"
	LayerPlayer     = "Player"
)

type layer struct {
	name    string
	spatial bool
	count   int
}

// Scene is a layered sprite world backed by an ECS and a spatial hash.
// A Scene is not safe for concurrent use.
type Scene struct {
	world   ecs.World
	sprites *ecs.Map6[Position, Size, Velocity, Appearance, InLayer, Body]
	pos     *ecs.Map[Position]
	size    *ecs.Map[Size]
	vel     *ecs.Map[Velocity]
	look    *ecs.Map[Appearance]
	layerOf *ecs.Map[InLayer]
	body    *ecs.Map[Body]
	drawQ   *ecs.Filter2[InLayer, Position]

	space  *resolv.Space
	owners map[*resolv.Object]ecs.Entity
	layers []*layer
	width  float64
	height float64
}

// NewScene creates an empty scene covering width x height world units.
// The spatial hash uses square cells of cellSize units.
func NewScene(width, height, cellSize float64) *Scene {
	s := &Scene{
		world:  ecs.NewWorld(),
		owners: make(map[*resolv.Object]ecs.Entity),
		width:  width,
		height: height,
	}
	s.sprites = ecs.NewMap6[Position, Size, Velocity, Appearance, InLayer, Body](&s.world)
	s.pos = ecs.NewMap[Position](&s.world)
	s.size = ecs.NewMap[Size](&s.world)
	s.vel = ecs.NewMap[Velocity](&s.world)
	s.look = ecs.NewMap[Appearance](&s.world)
	s.layerOf = ecs.NewMap[InLayer](&s.world)
	s.body = ecs.NewMap[Body](&s.world)
	s.drawQ = ecs.NewFilter2[InLayer, Position](&s.world).With(ecs.C[Appearance](), ecs.C[Size]())

	cell := max(int(cellSize), 1)
	s.space = resolv.NewSpace(max(int(width), cell), max(int(height), cell), cell, cell)
	return s
}

// Width returns the scene width in world units.
func (s *Scene) Width() float64 { return s.width }

// Height returns the scene height in world units.
func (s *Scene) Height() float64 { return s.height }

// AddLayer appends a layer drawn above all existing layers.
// Sprites in a spatial layer can be found with Colliding and block physics.
func (s *Scene) AddLayer(name string, spatial bool) {
	if s.findLayer(name) >= 0 {
		return
	}
	s.layers = append(s.layers, &layer{name: name, spatial: spatial})
}

// AddLayerBefore inserts a layer directly below the named layer.
// If before does not exist the layer is appended.
func (s *Scene) AddLayerBefore(name, before string, spatial bool) {
	if s.findLayer(name) >= 0 {
		return
	}
	idx := s.findLayer(before)
	if idx < 0 {
		s.AddLayer(name, spatial)
		return
	}
	s.layers = slices.Insert(s.layers, idx, &layer{name: name, spatial: spatial})
}

// Layers returns layer names in draw order, bottom first.
func (s *Scene) Layers() []string {
	names := make([]string, len(s.layers))
	for i, l := range s.layers {
		names[i] = l.name
	}
	return names
}

// HasLayer reports whether the scene has a layer with the given name.
func (s *Scene) HasLayer(name string) bool {
	return s.findLayer(name) >= 0
}

func (s *Scene) findLayer(name string) int {
	for i, l := range s.layers {
		if l.name == name {
			return i
		}
	}
	return -1
}

// AddSprite creates a sprite centred on (x, y) in the named layer.
// Missing layers are created on demand without a spatial hash.
func (s *Scene) AddSprite(layerName string, x, y, w, h float64, look Appearance) Sprite {
	idx := s.findLayer(layerName)
	if idx < 0 {
		s.AddLayer(layerName, false)
		idx = len(s.layers) - 1
	}
	l := s.layers[idx]

	var body Body
	if l.spatial {
		box := core.CenteredRectF(x, y, w, h)
		body.Obj = resolv.NewObject(box.X, box.Y, box.W, box.H, layerName)
		s.space.Add(body.Obj)
	}

	e := s.sprites.NewEntity(
		&Position{X: x, Y: y},
		&Size{W: w, H: h},
		&Velocity{},
		&look,
		&InLayer{Name: layerName},
		&body,
	)
	if body.Obj != nil {
		s.owners[body.Obj] = e
	}
	l.count++
	return Sprite{scene: s, entity: e}
}

// Remove deletes a sprite from the scene. Removing a dead sprite is a no-op.
func (s *Scene) Remove(sp Sprite) {
	if !sp.Valid() || sp.scene != s {
		return
	}
	if b := s.body.Get(sp.entity); b.Obj != nil {
		s.space.Remove(b.Obj)
		delete(s.owners, b.Obj)
	}
	if idx := s.findLayer(s.layerOf.Get(sp.entity).Name); idx >= 0 {
		s.layers[idx].count--
	}
	s.world.RemoveEntity(sp.entity)
}

// Count returns the number of live sprites in a layer.
func (s *Scene) Count(layerName string) int {
	if idx := s.findLayer(layerName); idx >= 0 {
		return s.layers[idx].count
	}
	return 0
}

// Colliding returns the sprites of a layer whose boxes overlap sp.
// Touching edges do not count as an overlap.
func (s *Scene) Colliding(sp Sprite, layerName string) []Sprite {
	if !sp.Valid() {
		return nil
	}
	box := sp.Bounds()

	idx := s.findLayer(layerName)
	if idx < 0 {
		return nil
	}
	if !s.layers[idx].spatial {
		return s.scanLayer(layerName, box)
	}

	var hits []Sprite
	for _, obj := range s.nearby(sp, 0, 0, layerName) {
		if objectRect(obj).Intersects(box) {
			hits = append(hits, Sprite{scene: s, entity: s.owners[obj]})
		}
	}
	return hits
}

// Blockers returns the boxes of a spatial layer that sp would overlap
// after moving by (dx, dy).
func (s *Scene) Blockers(sp Sprite, dx, dy float64, layerName string) []core.RectF {
	if !sp.Valid() {
		return nil
	}
	target := sp.Bounds().Offset(dx, dy)
	var out []core.RectF
	for _, obj := range s.nearby(sp, dx, dy, layerName) {
		if r := objectRect(obj); r.Intersects(target) {
			out = append(out, r)
		}
	}
	return out
}

// nearby returns the broad-phase candidates for sp displaced by (dx, dy),
// in a stable order.
func (s *Scene) nearby(sp Sprite, dx, dy float64, tag string) []*resolv.Object {
	obj := s.body.Get(sp.entity).Obj
	if obj == nil {
		return nil
	}
	col := obj.Check(dx, dy, tag)
	if col == nil {
		return nil
	}
	seen := make(map[*resolv.Object]bool, len(col.Objects))
	out := make([]*resolv.Object, 0, len(col.Objects))
	for _, o := range col.Objects {
		if seen[o] {
			continue
		}
		if _, ok := s.owners[o]; !ok {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.owners[out[i]].ID() < s.owners[out[j]].ID()
	})
	return out
}

func (s *Scene) scanLayer(layerName string, box core.RectF) []Sprite {
	var hits []Sprite
	query := s.drawQ.Query()
	for query.Next() {
		in, pos := query.Get()
		if in.Name != layerName {
			continue
		}
		e := query.Entity()
		size := s.size.Get(e)
		if core.CenteredRectF(pos.X, pos.Y, size.W, size.H).Intersects(box) {
			hits = append(hits, Sprite{scene: s, entity: e})
		}
	}
	return hits
}

// DrawItem is a sprite ready to be drawn.
type DrawItem struct {
	Layer  string
	Bounds core.RectF
	Look   Appearance
	order  int
	id     uint32
}

// DrawList returns every sprite in draw order: by layer, then creation.
func (s *Scene) DrawList() []DrawItem {
	var items []DrawItem
	query := s.drawQ.Query()
	for query.Next() {
		in, pos := query.Get()
		e := query.Entity()
		size := s.size.Get(e)
		items = append(items, DrawItem{
			Layer:  in.Name,
			Bounds: core.CenteredRectF(pos.X, pos.Y, size.W, size.H),
			Look:   *s.look.Get(e),
			order:  s.findLayer(in.Name),
			id:     e.ID(),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].order != items[j].order {
			return items[i].order < items[j].order
		}
		return items[i].id < items[j].id
	})
	return items
}

// Sprites returns the live sprites of a layer in creation order.
func (s *Scene) Sprites(layerName string) []Sprite {
	var out []Sprite
	query := s.drawQ.Query()
	for query.Next() {
		in, _ := query.Get()
		if in.Name == layerName {
			out = append(out, Sprite{scene: s, entity: query.Entity()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].entity.ID() < out[j].entity.ID() })
	return out
}

func (s *Scene) String() string {
	return fmt.Sprintf("Scene(%gx%g, layers=%v)", s.width, s.height, s.Layers())
}

func objectRect(obj *resolv.Object) core.RectF {
	return core.RectF{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H}
}
