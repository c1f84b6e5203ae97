package target

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/chewxy/math32"
)

// ErrSizeMismatch is returned when two targets of different resolution are combined.
var ErrSizeMismatch = errors.New("render target size mismatch")

// RenderTarget is an offscreen color image with a matching depth buffer.
// Row 0 is the top of the image and texture coordinate v = 0 samples it.
// A RenderTarget has a fixed resolution for its whole lifetime; owners create a new
// one when the output size changes. Mipmaps are never generated.
type RenderTarget struct {
	label  string
	width  int
	height int
	color  []common.Color
	depth  []float32
}

// New creates a cleared RenderTarget. It panics if either dimension is not positive.
//
// Parameters:
//   - label: debug label used in logs and errors
//   - width, height: resolution in pixels
//
// Returns:
//   - *RenderTarget: the new target, color transparent black and depth 1
func New(label string, width, height int) *RenderTarget {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("render target %q: invalid size %dx%d", label, width, height))
	}
	t := &RenderTarget{
		label:  label,
		width:  width,
		height: height,
		color:  make([]common.Color, width*height),
		depth:  make([]float32, width*height),
	}
	t.ClearDepth()
	return t
}

func (t *RenderTarget) Label() string { return t.label }
func (t *RenderTarget) Width() int    { return t.width }
func (t *RenderTarget) Height() int   { return t.height }

// Size returns the resolution as (width, height).
func (t *RenderTarget) Size() (int, int) { return t.width, t.height }

// At returns the color of the pixel at (x, y).
func (t *RenderTarget) At(x, y int) common.Color {
	return t.color[y*t.width+x]
}

// Set writes the color of the pixel at (x, y).
func (t *RenderTarget) Set(x, y int, c common.Color) {
	t.color[y*t.width+x] = c
}

// Depth returns the stored depth at (x, y).
func (t *RenderTarget) Depth(x, y int) float32 {
	return t.depth[y*t.width+x]
}

// SetDepth writes the depth at (x, y).
func (t *RenderTarget) SetDepth(x, y int, d float32) {
	t.depth[y*t.width+x] = d
}

// Clear fills the color buffer with c and resets depth to 1.
func (t *RenderTarget) Clear(c common.Color) {
	for i := range t.color {
		t.color[i] = c
	}
	t.ClearDepth()
}

// ClearRect fills a pixel rectangle of the color buffer with c and resets its depth.
func (t *RenderTarget) ClearRect(r common.Viewport, c common.Color) {
	r = r.Intersect(t.width, t.height)
	for y := r.Y; y < r.Y+r.Height; y++ {
		row := y * t.width
		for x := r.X; x < r.X+r.Width; x++ {
			t.color[row+x] = c
			t.depth[row+x] = 1
		}
	}
}

// ClearDepth resets every depth value to the far plane.
func (t *RenderTarget) ClearDepth() {
	for i := range t.depth {
		t.depth[i] = 1
	}
}

// Sample reads the color at texture coordinates (u, v) with bilinear filtering and
// clamp-to-edge addressing. Texel centers sit at ((x+0.5)/width, (y+0.5)/height).
func (t *RenderTarget) Sample(u, v float32) common.Color {
	fx := u*float32(t.width) - 0.5
	fy := v*float32(t.height) - 0.5
	x0 := math32.Floor(fx)
	y0 := math32.Floor(fy)
	tx := fx - x0
	ty := fy - y0

	ix0 := common.Clamp(int(x0), 0, t.width-1)
	iy0 := common.Clamp(int(y0), 0, t.height-1)
	ix1 := common.Clamp(int(x0)+1, 0, t.width-1)
	iy1 := common.Clamp(int(y0)+1, 0, t.height-1)

	c00 := t.color[iy0*t.width+ix0]
	if tx == 0 && ty == 0 {
		return c00
	}
	c10 := t.color[iy0*t.width+ix1]
	c01 := t.color[iy1*t.width+ix0]
	c11 := t.color[iy1*t.width+ix1]
	return c00.Lerp(c10, tx).Lerp(c01.Lerp(c11, tx), ty)
}

// CopyFrom overwrites this target's color and depth with src.
//
// Parameters:
//   - src: the source target, which must have the same resolution
//
// Returns:
//   - error: ErrSizeMismatch if the resolutions differ
func (t *RenderTarget) CopyFrom(src *RenderTarget) error {
	if src.width != t.width || src.height != t.height {
		return fmt.Errorf("copy %q (%dx%d) into %q (%dx%d): %w",
			src.label, src.width, src.height, t.label, t.width, t.height, ErrSizeMismatch)
	}
	copy(t.color, src.color)
	copy(t.depth, src.depth)
	return nil
}

// Clone returns an independent copy of the target.
func (t *RenderTarget) Clone() *RenderTarget {
	c := New(t.label, t.width, t.height)
	_ = c.CopyFrom(t)
	return c
}

// Equal reports whether two targets hold identical color data.
func (t *RenderTarget) Equal(o *RenderTarget) bool {
	if o == nil || o.width != t.width || o.height != t.height {
		return false
	}
	for i := range t.color {
		if t.color[i] != o.color[i] {
			return false
		}
	}
	return true
}

// Image converts the color buffer to an 8-bit NRGBA image.
func (t *RenderTarget) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			r, g, b, a := t.color[y*t.width+x].RGBA8()
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img
}

// RGBA8 writes the color buffer as tightly packed RGBA8 rows into dst, growing it as needed.
//
// Parameters:
//   - dst: destination buffer to reuse (may be nil)
//
// Returns:
//   - []byte: width*height*4 bytes
func (t *RenderTarget) RGBA8(dst []byte) []byte {
	n := t.width * t.height * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, c := range t.color {
		dst[i*4], dst[i*4+1], dst[i*4+2], dst[i*4+3] = c.RGBA8()
	}
	return dst
}
