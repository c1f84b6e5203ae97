package reflection

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/capture"
	"github.com/Carmen-Shannon/oxy-fx/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fx/engine/geometry"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
)

// ErrNoCamera is returned when the scene has no camera to reflect.
var ErrNoCamera = errors.New("scene has no camera")

// FadeMode selects how the mirror image is composited onto the surface.
type FadeMode int

const (
	// FadeRadial fades the reflection out toward the rim of the surface.
	FadeRadial FadeMode = iota
	// FadeOverlay tints the reflection with an overlay blend of the surface color.
	FadeOverlay
)

// ReflectionSurface is a planar mirror. Every frame it renders the scene from the main
// camera mirrored across the surface plane into a screen-sized target, then shows that
// target on the surface through a projective texture matrix.
type ReflectionSurface struct {
	ctx       capture.RenderContext
	object    game_object.GameObject
	reflected game_object.GameObject
	mat       *material.Reflector

	renderTarget *target.RenderTarget
	fixedSize    bool
	clipBias     float32
	name         string

	visible bool
	virtual *camera.VirtualCamera
}

var _ capture.Component = &ReflectionSurface{}

// NewReflectionSurface creates a mirror. Add Object() to the scene; the surface faces its
// local +Z axis.
//
// Parameters:
//   - ctx: the renderer and scene; the scene's camera is the one reflected
//   - options: functional options to configure the surface
//
// Returns:
//   - *ReflectionSurface: the component
func NewReflectionSurface(ctx capture.RenderContext, options ...ReflectionBuilderOption) *ReflectionSurface {
	cfg := config{
		name:           "reflection",
		mesh:           geometry.Circle(2, 32),
		mode:           FadeRadial,
		color:          common.Hex(0x7f7f7f),
		startOpacity:   0.4,
		distanceFactor: 1.5,
	}
	for _, opt := range options {
		opt(&cfg)
	}

	width, height := cfg.width, cfg.height
	fixed := width > 0 && height > 0
	if !fixed {
		width, height = ctx.Renderer.Size()
	}

	mode := material.ReflectorFade
	if cfg.mode == FadeOverlay {
		mode = material.ReflectorOverlay
	}
	s := &ReflectionSurface{
		ctx:          ctx,
		reflected:    cfg.reflected,
		renderTarget: target.New(cfg.name, width, height),
		fixedSize:    fixed,
		clipBias:     cfg.clipBias,
		name:         cfg.name,
	}
	s.mat = material.NewReflector(mode,
		material.WithName(cfg.name+"_surface"),
		material.WithColor(cfg.color),
		material.WithMap(s.renderTarget),
	)
	s.mat.StartOpacity = cfg.startOpacity
	s.mat.DistanceFactor = cfg.distanceFactor

	s.object = game_object.NewGameObject(
		game_object.WithName(cfg.name),
		game_object.WithMesh(cfg.mesh),
		game_object.WithMaterial(s.mat),
	)
	return s
}

// Object returns the mirror mesh to place in the scene.
func (s *ReflectionSurface) Object() game_object.GameObject {
	return s.object
}

// Texture returns the mirror capture.
func (s *ReflectionSurface) Texture() *target.RenderTarget {
	return s.renderTarget
}

// Material returns the surface material.
func (s *ReflectionSurface) Material() *material.Reflector {
	return s.mat
}

// Visible reports whether the last Update found the surface facing the camera.
func (s *ReflectionSurface) Visible() bool {
	return s.visible
}

// LastCamera returns the mirrored camera of the last capture, for inspection only. It is
// rebuilt from the main camera every frame.
func (s *ReflectionSurface) LastCamera() *camera.VirtualCamera {
	return s.virtual
}

// SetFade sets the opacity at the surface center and how fast it falls off.
func (s *ReflectionSurface) SetFade(startOpacity, distanceFactor float32) {
	s.mat.StartOpacity = startOpacity
	s.mat.DistanceFactor = distanceFactor
}

// Resize recreates the capture target at the new screen size, unless the surface was
// built with a fixed texture size.
func (s *ReflectionSurface) Resize(width, height int) {
	if s.fixedSize || width <= 0 || height <= 0 {
		return
	}
	if w, h := s.renderTarget.Size(); w == width && h == height {
		return
	}
	s.renderTarget = target.New(s.name, width, height)
	s.mat.Map = s.renderTarget
}

// mirrorPlane is the surface plane in world space, normal along the mesh's +Z.
func (s *ReflectionSurface) mirrorPlane() (common.Plane, [16]float32, error) {
	world := s.object.WorldMatrix()
	local, _ := common.NewPlane([3]float32{0, 0, 1}, [3]float32{0, 0, 0})
	p, ok := local.Transform(world[:])
	if !ok {
		return common.Plane{}, world, fmt.Errorf("mirror transform is singular: %w", common.ErrDegenerate)
	}
	return p, world, nil
}

// Update renders the mirrored view. Nothing is drawn when the camera is behind the
// surface. Degenerate poses return an error wrapping common.ErrDegenerate and keep the
// previous capture.
func (s *ReflectionSurface) Update(dt, elapsed float32) error {
	s.visible = false
	if s.ctx.Scene == nil || s.ctx.Scene.Camera() == nil {
		return fmt.Errorf("failed to update reflection %q: %w", s.name, ErrNoCamera)
	}
	cam := s.ctx.Scene.Camera()

	plane, world, err := s.mirrorPlane()
	if err != nil {
		return fmt.Errorf("skipping reflection %q: %w", s.name, err)
	}
	center := [3]float32{world[12], world[13], world[14]}
	if common.Dot3(common.Sub3(center, cam.Position()), plane.Normal) >= 0 {
		return nil
	}

	virtual, err := camera.Reflect(cam, plane, s.clipBias)
	if err != nil {
		return fmt.Errorf("skipping reflection %q: %w", s.name, err)
	}

	// the unclipped projection keeps texture lookups independent of the clip plane
	proj := cam.ProjectionMatrix()
	view := virtual.ViewMatrix()
	var pv, bpv [16]float32
	common.Mul4(pv[:], proj[:], view[:])
	common.Mul4(bpv[:], common.TextureBias[:], pv[:])
	common.Mul4(s.mat.TextureMatrix[:], bpv[:], world[:])

	guard := capture.BeginCapture(s.ctx, capture.CaptureConfig{
		ClearColor:              common.Transparent,
		HideNodes:               []game_object.GameObject{s.object},
		DisableShadowAutoUpdate: true,
	})
	defer guard.Release()

	r := s.ctx.Renderer
	r.SetRenderTarget(s.renderTarget)
	r.Clear()
	if err := r.Render(s.renderable(), virtual); err != nil {
		return fmt.Errorf("failed to capture reflection %q: %w", s.name, err)
	}
	s.virtual = virtual
	s.visible = true
	return nil
}

func (s *ReflectionSurface) renderable() scene.Renderable {
	if s.reflected == nil {
		return s.ctx.Scene
	}
	return scene.Subtree(s.reflected)
}
