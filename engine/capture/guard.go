package capture

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
)

// CaptureConfig describes the render state a capture runs under.
type CaptureConfig struct {
	// ClearColor is installed as the renderer clear color for the capture.
	ClearColor common.Color

	// HideNodes are disabled for the duration of the capture, typically the
	// component's own display mesh.
	HideNodes []game_object.GameObject

	// OverrideMaterial, when set, replaces the material of every mesh under OverrideRoot.
	OverrideMaterial material.Material

	// OverrideRoot bounds the override. nil means the whole scene.
	OverrideRoot game_object.GameObject

	// DisableShadowAutoUpdate turns shadow map refresh off while capturing.
	DisableShadowAutoUpdate bool
}

type materialBinding struct {
	obj game_object.GameObject
	mat material.Material
}

type visibilityBinding struct {
	obj     game_object.GameObject
	enabled bool
}

// Guard holds the state a capture replaced. Release puts it back.
type Guard struct {
	ctx      RenderContext
	released bool

	background       *common.Color
	clearColor       common.Color
	autoClear        bool
	xrEnabled        bool
	shadowAutoUpdate bool
	renderTarget     *target.RenderTarget
	viewport         common.Viewport

	materials  []materialBinding
	visibility []visibilityBinding
}

// BeginCapture snapshots the renderer and scene state a capture touches and switches it to
// the capture configuration: no background, the configured clear color, autoClear and XR
// off, hidden nodes disabled and the override material installed. Callers defer Release
// on the returned guard so every exit path restores the snapshot.
//
// Parameters:
//   - ctx: the renderer and scene to mutate
//   - cfg: the capture configuration
//
// Returns:
//   - *Guard: the guard holding the snapshot
func BeginCapture(ctx RenderContext, cfg CaptureConfig) *Guard {
	r := ctx.Renderer
	g := &Guard{
		ctx:              ctx,
		clearColor:       r.ClearColor(),
		autoClear:        r.AutoClear(),
		xrEnabled:        r.XREnabled(),
		shadowAutoUpdate: r.ShadowAutoUpdate(),
		renderTarget:     r.RenderTarget(),
		viewport:         r.Viewport(),
	}
	if ctx.Scene != nil {
		if bg := ctx.Scene.Background(); bg != nil {
			c := *bg
			g.background = &c
		}
		ctx.Scene.SetBackground(nil)
	}

	r.SetClearColor(cfg.ClearColor)
	r.SetAutoClear(false)
	r.SetXREnabled(false)
	if cfg.DisableShadowAutoUpdate {
		r.SetShadowAutoUpdate(false)
	}

	for _, obj := range cfg.HideNodes {
		g.visibility = append(g.visibility, visibilityBinding{obj: obj, enabled: obj.Enabled()})
		obj.SetEnabled(false)
	}

	if cfg.OverrideMaterial != nil {
		root := cfg.OverrideRoot
		if root == nil && ctx.Scene != nil {
			root = ctx.Scene.Root()
		}
		if root != nil {
			root.Traverse(func(obj game_object.GameObject) bool {
				if obj.Mesh() != nil && obj.Material() != nil {
					g.materials = append(g.materials, materialBinding{obj: obj, mat: obj.Material()})
				}
				return true
			})
		}
		for _, b := range g.materials {
			b.obj.SetMaterial(cfg.OverrideMaterial)
		}
	}
	return g
}

// Overridden returns the number of meshes whose material the guard replaced.
func (g *Guard) Overridden() int {
	return len(g.materials)
}

// Release restores every field captured by BeginCapture. Calling it again does nothing.
func (g *Guard) Release() {
	if g.released {
		return
	}
	g.released = true

	for _, b := range g.materials {
		b.obj.SetMaterial(b.mat)
	}
	for i := len(g.visibility) - 1; i >= 0; i-- {
		g.visibility[i].obj.SetEnabled(g.visibility[i].enabled)
	}

	r := g.ctx.Renderer
	r.SetRenderTarget(g.renderTarget)
	r.SetViewport(g.viewport)
	r.SetClearColor(g.clearColor)
	r.SetAutoClear(g.autoClear)
	r.SetXREnabled(g.xrEnabled)
	r.SetShadowAutoUpdate(g.shadowAutoUpdate)
	if g.ctx.Scene != nil {
		g.ctx.Scene.SetBackground(g.background)
	}
}
