package material

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
)

// DepthAlpha is a capture override: black with alpha = darkness * (1 - depth), so
// geometry closer to the capture camera is more opaque. It depth tests and writes so
// the nearest occluder wins, and it draws both faces. It honors WithName and WithSide.
type DepthAlpha struct {
	material

	Darkness float32
}

// NewDepthAlpha builds the depth-to-alpha override material.
//
// Parameters:
//   - darkness: alpha at depth 0
//   - options: material builder options
//
// Returns:
//   - *DepthAlpha: the material
func NewDepthAlpha(darkness float32, options ...MaterialBuilderOption) *DepthAlpha {
	cfg := newConfig("depth_alpha", Options{Side: SideDouble, DepthTest: true, DepthWrite: true}, options)
	d := &DepthAlpha{
		material: material{name: cfg.name, options: cfg.options},
		Darkness: darkness,
	}
	d.stages = []Stage{d.shade}
	return d
}

func (d *DepthAlpha) shade(f *Fragment, _ common.Color) (common.Color, bool) {
	return common.Color{A: d.Darkness * (1 - f.Depth)}, true
}

// Flat is a capture override that writes a single color for every covered pixel.
// It does not depth test or write and it draws both faces. It honors WithName,
// WithColor and WithSide.
type Flat struct {
	material

	Color common.Color
}

// NewFlat builds the flat-color override material.
//
// Parameters:
//   - options: material builder options
//
// Returns:
//   - *Flat: the material
func NewFlat(options ...MaterialBuilderOption) *Flat {
	cfg := newConfig("flat", Options{Side: SideDouble}, options)
	fl := &Flat{
		material: material{name: cfg.name, options: cfg.options},
		Color:    cfg.color,
	}
	fl.stages = []Stage{fl.shade}
	return fl
}

func (fl *Flat) shade(_ *Fragment, _ common.Color) (common.Color, bool) {
	return fl.Color, true
}
