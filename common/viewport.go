package common

// Viewport is a pixel rectangle of the default framebuffer, origin at the top-left.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the viewport covers no pixels.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Intersect clips the viewport to a width x height surface.
func (v Viewport) Intersect(width, height int) Viewport {
	x0, y0 := max(v.X, 0), max(v.Y, 0)
	x1, y1 := min(v.X+v.Width, width), min(v.Y+v.Height, height)
	if x1 <= x0 || y1 <= y0 {
		return Viewport{}
	}
	return Viewport{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Aspect returns width / height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}
