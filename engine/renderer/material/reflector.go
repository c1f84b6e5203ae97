package material

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
	"github.com/chewxy/math32"
)

// ReflectorMode selects how a Reflector composites the captured mirror image.
type ReflectorMode int

const (
	// ReflectorFade fades the reflection out radially from the surface center.
	ReflectorFade ReflectorMode = iota
	// ReflectorOverlay tints the reflection with the overlay blend of Color.
	ReflectorOverlay
)

// Reflector samples a mirror capture through a projective texture matrix.
// The matrix maps object-space positions of the mirror mesh to homogeneous
// texture coordinates of the capture. It is always transparent.
type Reflector struct {
	material

	Map           *target.RenderTarget
	TextureMatrix [16]float32
	Color         common.Color

	// StartOpacity is the alpha scale at the center; DistanceFactor scales how fast
	// it decays with UV distance from (0.5, 0.5).
	StartOpacity   float32
	DistanceFactor float32

	mode ReflectorMode
}

// NewReflector builds the mirror surface material.
//
// Parameters:
//   - mode: the composite variant
//   - options: material builder options (WithName, WithColor for the overlay tint, WithMap, WithSide)
//
// Returns:
//   - *Reflector: the material
func NewReflector(mode ReflectorMode, options ...MaterialBuilderOption) *Reflector {
	cfg := newConfig("reflector", Options{Transparent: true, DepthTest: true}, options)
	if cfg.color == common.White {
		cfg.color = common.Hex(0x7f7f7f)
	}
	r := &Reflector{
		material:       material{name: cfg.name, options: cfg.options},
		Map:            cfg.texture,
		Color:          cfg.color,
		StartOpacity:   0.4,
		DistanceFactor: 1.5,
		mode:           mode,
	}
	common.Identity(r.TextureMatrix[:])
	r.options.Transparent = true

	r.stages = []Stage{r.project}
	switch mode {
	case ReflectorOverlay:
		r.stages = append(r.stages, r.overlay)
	default:
		r.stages = append(r.stages, r.radialFade)
	}
	r.textures = func() []*target.RenderTarget {
		if r.Map == nil {
			return nil
		}
		return []*target.RenderTarget{r.Map}
	}
	return r
}

// Mode returns the composite variant.
func (r *Reflector) Mode() ReflectorMode {
	return r.mode
}

func (r *Reflector) project(f *Fragment, _ common.Color) (common.Color, bool) {
	if r.Map == nil {
		return common.Transparent, false
	}
	p := f.LocalPosition
	uvw := common.MulVec4(r.TextureMatrix[:], [4]float32{p[0], p[1], p[2], 1})
	if uvw[3] <= 0 {
		return common.Transparent, false
	}
	return r.Map.Sample(uvw[0]/uvw[3], uvw[1]/uvw[3]), true
}

func (r *Reflector) radialFade(f *Fragment, in common.Color) (common.Color, bool) {
	du, dv := f.UV[0]-0.5, f.UV[1]-0.5
	d := math32.Sqrt(du*du+dv*dv) * 2 * r.DistanceFactor
	in.A = common.Lerp(in.A*r.StartOpacity, 0, common.Smoothstep(0, 1, d))
	return in, in.A > 0
}

func (r *Reflector) overlay(_ *Fragment, in common.Color) (common.Color, bool) {
	return common.Color{
		R: blendOverlay(in.R, r.Color.R),
		G: blendOverlay(in.G, r.Color.G),
		B: blendOverlay(in.B, r.Color.B),
		A: in.A,
	}, true
}

func blendOverlay(base, blend float32) float32 {
	if base < 0.5 {
		return 2 * base * blend
	}
	return 1 - 2*(1-base)*(1-blend)
}
