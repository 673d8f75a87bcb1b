package platformer

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// Snapshot contains the observable game state for determinism tests.
type Snapshot struct {
	Tick      uint64
	Mode      int
	Level     int
	Score     int
	Deaths    int
	Paused    bool
	PlayerX   float64
	PlayerY   float64
	VelX      float64
	VelY      float64
	CameraX   float64
	CameraY   float64
	ItemsLeft int

	// Remaining items, flattened as X, Y pairs
	ItemData []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	st := g.ctrl.State()
	player := g.ctrl.Player()
	px, py := player.Pos()
	vx, vy := player.Vel()
	cam := g.ctrl.Camera()

	items := g.ctrl.Scene().Sprites(engine.LayerItems)
	itemData := make([]float64, 0, len(items)*2)
	for _, it := range items {
		x, y := it.Pos()
		itemData = append(itemData, x, y)
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      int(g.mode),
		Level:     st.Level,
		Score:     st.Score,
		Deaths:    g.ctrl.Deaths(),
		Paused:    g.paused,
		PlayerX:   px,
		PlayerY:   py,
		VelX:      vx,
		VelY:      vy,
		CameraX:   cam.X,
		CameraY:   cam.Y,
		ItemsLeft: len(items),
		ItemData:  itemData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Mode)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Deaths)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ItemsLeft) //#nosec G115 -- hash computation
	if snap.Paused {
		h = h*31 + 1
	}

	for _, v := range []float64{snap.PlayerX, snap.PlayerY, snap.VelX, snap.VelY, snap.CameraX, snap.CameraY} {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.ItemData {
		h = h*31 + math.Float64bits(v)
	}
	return h
}
