package demo

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/capture"
	"github.com/Carmen-Shannon/oxy-fx/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fx/engine/geometry"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/params"
	"github.com/Carmen-Shannon/oxy-fx/engine/reflection"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/Carmen-Shannon/oxy-fx/engine/shadow"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
	"github.com/chewxy/math32"
)

// Effect identifies one of the toggleable capture components.
type Effect int

const (
	EffectContactShadow Effect = iota
	EffectSoftShadowFloor
	EffectReflection
)

const mirrorHeight = 0.15

// Demo is the showcase scene: noise hills around a mirror disc, a slowly turning statue
// standing on it, and both shadow techniques underneath.
type Demo struct {
	engine engine.Engine
	camera camera.PerspectiveCamera

	statue game_object.GameObject

	contact *shadow.ContactShadow
	floor   *shadow.SoftShadowFloor
	mirror  *reflection.ReflectionSurface

	enabled map[Effect]bool
	paused  bool
}

// New assembles the demo scene around r and registers its components with a new engine.
//
// Parameters:
//   - r: the renderer; its size sets the camera aspect
//   - p: initial tunables
//   - options: demo builder options, which may also carry engine options
//
// Returns:
//   - *Demo: the assembled demo
func New(r renderer.Renderer, p params.Params, options ...DemoBuilderOption) *Demo {
	cfg := config{
		shadowResolution:  512,
		contactResolution: 256,
		hills:             geometry.DefaultHillsConfig,
	}
	for _, opt := range options {
		opt(&cfg)
	}

	width, height := r.Size()
	cam := camera.NewPerspectiveCamera(
		camera.WithFov(45*math32.Pi/180),
		camera.WithAspect(float32(width)/float32(height)),
		camera.WithNear(0.05),
		camera.WithFar(100),
		camera.WithController(camera.NewOrbitController(
			camera.WithEye(0, 2, 5),
			camera.WithTarget(0, 1.2, 0),
			camera.WithRadiusBounds(1.5, 20),
			camera.WithElevationBounds(0.02, math32.Pi/2-0.05),
		)),
	)

	d := &Demo{
		camera:  cam,
		statue:  newStatue(),
		enabled: map[Effect]bool{
			EffectContactShadow:   true,
			EffectSoftShadowFloor: true,
			EffectReflection:      true,
		},
	}

	s := scene.NewScene("demo",
		scene.WithBackground(p.BackgroundColor()),
		scene.WithCamera(cam),
		scene.WithLights(
			light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.35)),
			light.NewLight(light.LightTypeHemisphere,
				light.WithColor(common.White),
				light.WithGroundColor(common.Hex(0x3a3a5a)),
				light.WithIntensity(0.45),
			),
			light.NewLight(light.LightTypeDirectional,
				light.WithDirection(-3, -5, -1),
				light.WithIntensity(0.8),
			),
		),
		scene.WithObjects(
			game_object.NewGameObject(
				game_object.WithName("hills"),
				game_object.WithMesh(geometry.Hills(cfg.hills)),
				game_object.WithMaterial(material.NewLambert(material.WithColor(common.Hex(0x2b2b6b)))),
			),
			d.statue,
		),
	)

	d.engine = engine.NewEngine(r, s, cfg.engineOptions...)
	ctx := d.engine.Context()
	pool := target.NewPool(4)

	d.contact = shadow.NewContactShadow(ctx, d.statue,
		shadow.WithName("contact_shadow"),
		shadow.WithResolution(cfg.contactResolution),
		shadow.WithSize(1.2, 1.2),
		shadow.WithDepth(1.6),
		shadow.WithPool(pool),
	)
	d.contact.Object().SetPosition(0, mirrorHeight+0.01, 0)

	d.floor = shadow.NewSoftShadowFloor(ctx,
		shadow.WithName("soft_shadow_floor"),
		shadow.WithResolution(cfg.shadowResolution),
		shadow.WithSize(3, 3),
		shadow.WithPool(pool),
	)
	d.floor.Object().SetPosition(0, mirrorHeight+0.005, 0)

	d.mirror = reflection.NewReflectionSurface(ctx,
		reflection.WithName("mirror"),
		reflection.WithMesh(geometry.Circle(2, 32)),
	)
	d.mirror.Object().SetRotation(-math32.Pi/2, 0, 0)
	d.mirror.Object().SetPosition(0, mirrorHeight, 0)

	s.Add(d.mirror.Object(), d.floor.Object(), d.contact.Object())

	d.Apply(p)
	d.sync()
	return d
}

// newStatue builds the occluder: a pedestal, a body and a head, turning at 0.1 rad/s.
func newStatue() game_object.GameObject {
	stone := material.NewLambert(material.WithName("stone"), material.WithColor(common.Hex(0xd8d2c4)))
	part := func(name string, w, h, d, y float32) game_object.GameObject {
		return game_object.NewGameObject(
			game_object.WithName(name),
			game_object.WithMesh(geometry.Box(w, h, d)),
			game_object.WithMaterial(stone),
			game_object.WithPosition(0, y, 0),
		)
	}
	return game_object.NewGameObject(
		game_object.WithName("statue"),
		game_object.WithRotationSpeed(0, 0.1, 0),
		game_object.WithChildren(
			part("pedestal", 0.6, 0.3, 0.6, mirrorHeight+0.15),
			part("body", 0.3, 0.9, 0.3, mirrorHeight+0.75),
			part("head", 0.22, 0.22, 0.22, mirrorHeight+1.31),
		),
	)
}

// Engine returns the engine driving the demo.
func (d *Demo) Engine() engine.Engine {
	return d.engine
}

// Camera returns the orbit camera.
func (d *Demo) Camera() camera.PerspectiveCamera {
	return d.camera
}

// Statue returns the rotating occluder.
func (d *Demo) Statue() game_object.GameObject {
	return d.statue
}

// ContactShadow returns the contact shadow under the statue.
func (d *Demo) ContactShadow() *shadow.ContactShadow {
	return d.contact
}

// SoftShadowFloor returns the accumulated floor shadow.
func (d *Demo) SoftShadowFloor() *shadow.SoftShadowFloor {
	return d.floor
}

// Mirror returns the reflective disc.
func (d *Demo) Mirror() *reflection.ReflectionSurface {
	return d.mirror
}

// Apply pushes tunables into the scene and every component. Call it whenever the params
// store reports new values; it is cheap enough to call every frame.
//
// Parameters:
//   - p: validated tunables
func (d *Demo) Apply(p params.Params) {
	bg := p.BackgroundColor()
	d.engine.Scene().SetBackground(&bg)

	d.contact.SetBlur(p.ContactShadow.Blur, p.ContactShadow.BlurSecondPass)
	d.contact.SetDarkness(p.ContactShadow.Darkness)
	d.contact.SetOpacity(p.ContactShadow.Opacity)

	d.floor.SetQuality(p.SoftShadow.Quality)
	d.floor.SetBlur(p.SoftShadow.Blur)
	d.floor.SetOpacity(p.SoftShadow.Opacity)

	d.mirror.SetFade(p.Reflection.StartOpacity, p.Reflection.DistanceFactor)
}

// Enabled reports whether an effect is currently active.
func (d *Demo) Enabled(e Effect) bool {
	return d.enabled[e]
}

// Toggle flips an effect on or off, hiding its display and stopping its captures.
//
// Parameters:
//   - e: the effect to toggle
func (d *Demo) Toggle(e Effect) {
	if _, ok := d.enabled[e]; !ok {
		return
	}
	d.enabled[e] = !d.enabled[e]
	d.sync()
}

// Paused reports whether the statue's rotation is frozen.
func (d *Demo) Paused() bool {
	return d.paused
}

// SetPaused freezes or resumes the statue's rotation.
func (d *Demo) SetPaused(paused bool) {
	d.paused = paused
	if paused {
		d.statue.SetRotationSpeed(0, 0, 0)
		return
	}
	d.statue.SetRotationSpeed(0, 0.1, 0)
}

// sync re-registers the enabled components. Shadows come before the mirror so the mirror
// captures this frame's shadows.
func (d *Demo) sync() {
	ordered := []struct {
		effect    Effect
		component capture.Component
		object    game_object.GameObject
	}{
		{EffectContactShadow, d.contact, d.contact.Object()},
		{EffectSoftShadowFloor, d.floor, d.floor.Object()},
		{EffectReflection, d.mirror, d.mirror.Object()},
	}
	for _, o := range ordered {
		d.engine.RemoveComponent(o.component)
	}
	for _, o := range ordered {
		on := d.enabled[o.effect]
		o.object.SetEnabled(on)
		if on {
			d.engine.AddComponent(o.component)
		}
	}
}
