package material

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
)

// Basic is an unlit material: color times an optional map, scaled by opacity.
// It honors WithName, WithColor, WithMap, WithOpacity, WithFlipV, WithLuminanceAlpha,
// WithTransparent, WithSide and WithDepth.
type Basic struct {
	material

	Color   common.Color
	Map     *target.RenderTarget
	Opacity float32
}

// NewBasic builds an unlit material. The stage list is fixed here: map sampling
// (with or without the v flip), tint, optional luminance-to-alpha, opacity.
//
// Parameters:
//   - options: material builder options
//
// Returns:
//   - *Basic: the material
func NewBasic(options ...MaterialBuilderOption) *Basic {
	cfg := newConfig("basic", Options{DepthTest: true, DepthWrite: true}, options)
	b := &Basic{
		material: material{name: cfg.name, options: cfg.options},
		Color:    cfg.color,
		Map:      cfg.texture,
		Opacity:  cfg.opacity,
	}
	if cfg.flipV {
		b.stages = append(b.stages, b.sampleFlipped)
	} else {
		b.stages = append(b.stages, b.sample)
	}
	b.stages = append(b.stages, b.tint)
	if cfg.luminanceAlpha {
		b.stages = append(b.stages, LuminanceAlphaStage)
	}
	b.stages = append(b.stages, b.fade)
	b.textures = b.sampled
	return b
}

// SetMap replaces the sampled texture, e.g. after the owner recreated its target.
func (b *Basic) SetMap(t *target.RenderTarget) {
	b.Map = t
}

func (b *Basic) sampled() []*target.RenderTarget {
	if b.Map == nil {
		return nil
	}
	return []*target.RenderTarget{b.Map}
}

func (b *Basic) sample(f *Fragment, in common.Color) (common.Color, bool) {
	if b.Map == nil {
		return in, true
	}
	return in.Mul(b.Map.Sample(f.UV[0], f.UV[1])), true
}

func (b *Basic) sampleFlipped(f *Fragment, in common.Color) (common.Color, bool) {
	if b.Map == nil {
		return in, true
	}
	return in.Mul(b.Map.Sample(f.UV[0], 1-f.UV[1])), true
}

func (b *Basic) tint(_ *Fragment, in common.Color) (common.Color, bool) {
	return in.Mul(b.Color), true
}

func (b *Basic) fade(_ *Fragment, in common.Color) (common.Color, bool) {
	in.A *= b.Opacity
	return in, true
}

// Lambert is a diffuse lit material: color times the sum of scene light irradiance.
// It honors WithName, WithColor, WithMap, WithSide and WithDepth.
type Lambert struct {
	material

	Color common.Color
	Map   *target.RenderTarget
}

// NewLambert builds a diffuse material lit by the scene's lights.
//
// Parameters:
//   - options: material builder options
//
// Returns:
//   - *Lambert: the material
func NewLambert(options ...MaterialBuilderOption) *Lambert {
	cfg := newConfig("lambert", Options{DepthTest: true, DepthWrite: true}, options)
	l := &Lambert{
		material: material{name: cfg.name, options: cfg.options},
		Color:    cfg.color,
		Map:      cfg.texture,
	}
	l.stages = []Stage{l.albedo, LambertStage}
	l.textures = func() []*target.RenderTarget {
		if l.Map == nil {
			return nil
		}
		return []*target.RenderTarget{l.Map}
	}
	return l
}

func (l *Lambert) albedo(f *Fragment, in common.Color) (common.Color, bool) {
	c := in.Mul(l.Color)
	if l.Map != nil {
		c = c.Mul(l.Map.Sample(f.UV[0], f.UV[1]))
	}
	return c, true
}
