package material

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
)

// BlurKernel holds the 9-tap Gaussian weights, centered on index 4. They sum to 1.
var BlurKernel = [9]float32{0.051, 0.0918, 0.12245, 0.1531, 0.1633, 0.1531, 0.12245, 0.0918, 0.051}

// Direction selects the axis a Blur material samples along.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// Blur is one axis of a separable Gaussian blur. Taps are spaced Radius apart in
// texture coordinates along the chosen axis. It does not depth test.
type Blur struct {
	material

	Source    *target.RenderTarget
	Radius    float32
	direction Direction
}

// NewBlur builds a one-axis blur material.
//
// Parameters:
//   - dir: Horizontal or Vertical
//   - options: material builder options (WithName, WithMap for the source)
//
// Returns:
//   - *Blur: the material
func NewBlur(dir Direction, options ...MaterialBuilderOption) *Blur {
	name := "blur_h"
	if dir == Vertical {
		name = "blur_v"
	}
	cfg := newConfig(name, Options{Side: SideDouble}, options)
	b := &Blur{
		material:  material{name: cfg.name, options: cfg.options},
		Source:    cfg.texture,
		direction: dir,
	}
	b.stages = []Stage{b.convolve}
	b.textures = func() []*target.RenderTarget {
		if b.Source == nil {
			return nil
		}
		return []*target.RenderTarget{b.Source}
	}
	return b
}

// Direction returns the blur axis.
func (b *Blur) Direction() Direction {
	return b.direction
}

func (b *Blur) convolve(f *Fragment, _ common.Color) (common.Color, bool) {
	if b.Source == nil {
		return common.Transparent, true
	}
	var du, dv float32
	if b.direction == Horizontal {
		du = b.Radius
	} else {
		dv = b.Radius
	}

	var sum common.Color
	for i, w := range BlurKernel {
		o := float32(i - 4)
		sum = sum.Add(b.Source.Sample(f.UV[0]+o*du, f.UV[1]+o*dv).Scale(w))
	}
	return sum, true
}
