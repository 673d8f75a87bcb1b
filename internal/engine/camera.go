package engine

// Camera is a viewport onto the world. X and Y are the world coordinates
// of the viewport's bottom-left corner.
type Camera struct {
	ViewportW float64
	ViewportH float64
	X         float64
	Y         float64
}

// NewCamera creates a camera at the origin.
func NewCamera(viewportW, viewportH float64) *Camera {
	return &Camera{ViewportW: viewportW, ViewportH: viewportH}
}

// MoveTo commits a new viewport offset.
func (c *Camera) MoveTo(x, y float64) {
	c.X, c.Y = x, y
}

// Resize changes the viewport size, keeping the offset.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW, c.ViewportH = viewportW, viewportH
}

// Reset moves the camera back to the origin.
func (c *Camera) Reset() {
	c.X, c.Y = 0, 0
}
