package engine

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Projection maps world units onto screen cells for a camera.
type Projection struct {
	CellW, CellH float64 // World units per cell
	Top          int     // First screen row of the viewport
	Rows         int     // Viewport height in rows
	Cols         int     // Viewport width in columns
}

// ViewportSize returns the viewport size in world units.
func (p Projection) ViewportSize() (float64, float64) {
	return float64(p.Cols) * p.CellW, float64(p.Rows) * p.CellH
}

// Cell converts a world point to a screen column and row.
func (p Projection) Cell(cam *Camera, x, y float64) (int, int) {
	col := int(math.Floor((x - cam.X) / p.CellW))
	row := p.Top + int(math.Floor(float64(p.Rows)-(y-cam.Y)/p.CellH))
	return col, row
}

// Draw renders the scene through the camera onto the screen.
func Draw(scr *core.Screen, scene *Scene, cam *Camera, p Projection) {
	for _, it := range scene.DrawList() {
		drawItem(scr, cam, p, it)
	}
}

func drawItem(scr *core.Screen, cam *Camera, p Projection, it DrawItem) {
	b := it.Bounds
	left, top := p.Cell(cam, b.X, b.Top())
	right, bottom := p.Cell(cam, b.Right(), b.Y)
	right = max(right, left+1)
	bottom = max(bottom, top+1)

	clip := func(x, y int) bool {
		return x < 0 || x >= p.Cols || y < p.Top || y >= p.Top+p.Rows
	}

	look := it.Look
	switch {
	case len(look.Art) > 0:
		for dy, line := range look.Art {
			dx := 0
			for _, r := range line {
				x, y := left+dx, top+dy
				dx++
				if r == ' ' || clip(x, y) {
					continue
				}
				scr.SetWithColor(x, y, r, look.Color)
			}
		}
	case look.Single:
		x, y := (left+right-1)/2, (top+bottom-1)/2
		if !clip(x, y) {
			scr.SetWithColor(x, y, look.Glyph, look.Color)
		}
	default:
		for y := top; y < bottom; y++ {
			for x := left; x < right; x++ {
				if !clip(x, y) {
					scr.SetWithColor(x, y, look.Glyph, look.Color)
				}
			}
		}
	}
}
