package material

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
)

// Side selects which triangle faces a material draws.
type Side int

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

// Options are the fixed-function states a material requests from the rasterizer.
type Options struct {
	// Transparent materials are blended over the target with normal alpha blending
	// and drawn after all opaque meshes, back to front. Opaque materials overwrite.
	Transparent bool
	DepthTest   bool
	DepthWrite  bool
	Side        Side
}

// Fragment carries the interpolated inputs for one shaded pixel.
type Fragment struct {
	UV            [2]float32
	Position      [3]float32 // world space
	LocalPosition [3]float32 // object space
	Normal        [3]float32 // world space, unit length
	Depth         float32    // [0, 1] from the near to the far clip plane
	FrontFacing   bool
	Lights        []light.Light
}

// Stage is one step of a fragment program. It receives the color produced by the
// previous stage and returns the next one; returning false discards the fragment.
// Stages must not mutate shared state: the rasterizer calls them from several
// goroutines during a single draw.
type Stage func(f *Fragment, in common.Color) (common.Color, bool)

// Material defines how a mesh is shaded.
//
// A material is an ordered list of stages chosen when it is built, plus the
// rasterizer options it needs. Parameters (colors, textures, matrices) may be
// changed between draw calls, never during one.
type Material interface {
	// Name returns the debug name of the material.
	//
	// Returns:
	//   - string: the material name
	Name() string

	// Shade runs the fragment program for one pixel.
	//
	// Parameters:
	//   - f: the interpolated fragment inputs
	//
	// Returns:
	//   - common.Color: the output color (straight alpha)
	//   - bool: false if the fragment is discarded
	Shade(f *Fragment) (common.Color, bool)

	// Options returns the rasterizer state for this material.
	//
	// Returns:
	//   - Options: blend, depth and culling settings
	Options() Options

	// Textures returns the render targets this material currently samples.
	// The renderer refuses to draw a material into a target it samples.
	//
	// Returns:
	//   - []*target.RenderTarget: sampled targets, possibly empty
	Textures() []*target.RenderTarget
}

// material is the stage-list implementation shared by every concrete material.
type material struct {
	name     string
	options  Options
	stages   []Stage
	textures func() []*target.RenderTarget
}

var _ Material = &material{}

// New assembles a custom material from stages. Stages run in order starting from opaque white.
//
// Parameters:
//   - name: debug name
//   - options: rasterizer state
//   - stages: the fragment program
//
// Returns:
//   - Material: the composed material
func New(name string, options Options, stages ...Stage) Material {
	return &material{name: name, options: options, stages: stages}
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Options() Options {
	return m.options
}

func (m *material) Textures() []*target.RenderTarget {
	if m.textures == nil {
		return nil
	}
	return m.textures()
}

func (m *material) Shade(f *Fragment) (common.Color, bool) {
	c := common.White
	for _, stage := range m.stages {
		var keep bool
		if c, keep = stage(f, c); !keep {
			return c, false
		}
	}
	return c, true
}

// ColorStage multiplies the incoming color by c.
func ColorStage(c common.Color) Stage {
	return func(_ *Fragment, in common.Color) (common.Color, bool) {
		return in.Mul(c), true
	}
}

// LambertStage multiplies the incoming rgb by the diffuse light arriving at the fragment.
func LambertStage(f *Fragment, in common.Color) (common.Color, bool) {
	var sum [3]float32
	for _, l := range f.Lights {
		sum = common.Add3(sum, l.Irradiance(f.Position, f.Normal))
	}
	return common.Color{R: in.R * sum[0], G: in.G * sum[1], B: in.B * sum[2], A: in.A}, true
}

// LuminanceAlphaStage turns brightness into coverage: black rgb with alpha = luminance * alpha.
func LuminanceAlphaStage(_ *Fragment, in common.Color) (common.Color, bool) {
	return common.Color{A: in.Luminance() * in.A}, true
}

// DiscardTransparentStage drops fragments whose alpha is zero.
func DiscardTransparentStage(_ *Fragment, in common.Color) (common.Color, bool) {
	return in, in.A > 0
}
