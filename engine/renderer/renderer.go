package renderer

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
)

// ErrFeedbackLoop is returned when a draw would sample the render target it writes to.
var ErrFeedbackLoop = errors.New("material samples the bound render target")

// eyeSeparation is the distance between the two eyes of a stereo render, in world units.
const eyeSeparation float32 = 0.064

// Stats counts renderer work since the last ResetStats.
type Stats struct {
	// Submissions is the number of Render calls.
	Submissions int
	// Draws is the number of mesh draws that reached the rasterizer.
	Draws int
	// Triangles is the number of triangles shaded after clipping and face culling.
	Triangles int
	// Culled is the number of meshes rejected by the view frustum.
	Culled int
	// Clears is the number of color clears, explicit or automatic.
	Clears int
	// ShadowMapUpdates is the number of Render calls made with shadow auto-update on.
	ShadowMapUpdates int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	raster    *rasterizer
	presenter Presenter

	framebuffer *target.RenderTarget
	bound       *target.RenderTarget
	viewport    common.Viewport

	clearColor       common.Color
	autoClear        bool
	xrEnabled        bool
	shadowAutoUpdate bool

	stats Stats

	// Pre-creation config collected from builder options
	width, height      int
	workers            int
	pendingPresentMode *PresentMode
}

// Renderer is the minimal rendering surface the capture subsystem consumes: a bindable
// render target, explicit clears, a clear color, the autoClear/XR/shadow flags and a
// synchronous Render call. The default framebuffer is itself a RenderTarget which an
// optional Presenter shows on screen.
//
// A Renderer is driven from a single goroutine; the mutex only guards state that
// diagnostic readers (profiler) poll.
type Renderer interface {
	// SetRenderTarget binds t for subsequent clears and renders. nil binds the default
	// framebuffer. The viewport is reset to cover the new destination.
	//
	// Parameters:
	//   - t: the target to draw into, or nil
	SetRenderTarget(t *target.RenderTarget)

	// RenderTarget returns the bound target, or nil for the default framebuffer.
	RenderTarget() *target.RenderTarget

	// SetViewport restricts clears and renders to a pixel rectangle of the current destination.
	//
	// Parameters:
	//   - vp: the viewport
	SetViewport(vp common.Viewport)

	// Viewport returns the current pixel rectangle.
	Viewport() common.Viewport

	// SetClearColor sets the color used by Clear and automatic clears.
	SetClearColor(c common.Color)

	// ClearColor returns the color used by Clear and automatic clears.
	ClearColor() common.Color

	// SetAutoClear controls whether Render clears the viewport before drawing.
	SetAutoClear(autoClear bool)

	// AutoClear reports whether Render clears the viewport before drawing.
	AutoClear() bool

	// SetXREnabled turns stereo rendering on or off. When on, Render draws the scene
	// twice into the left and right halves of the viewport.
	SetXREnabled(enabled bool)

	// XREnabled reports whether stereo rendering is on.
	XREnabled() bool

	// SetShadowAutoUpdate controls whether each Render refreshes shadow maps.
	SetShadowAutoUpdate(enabled bool)

	// ShadowAutoUpdate reports whether each Render refreshes shadow maps.
	ShadowAutoUpdate() bool

	// Clear fills the viewport of the current destination with the clear color and
	// resets its depth.
	Clear()

	// Render draws a scene or subtree from a camera into the current destination.
	// Opaque meshes are drawn in graph order, then transparent meshes back to front.
	//
	// Parameters:
	//   - r: what to draw
	//   - cam: the camera to draw from
	//
	// Returns:
	//   - error: wraps ErrFeedbackLoop if a visible material samples the bound target;
	//     nothing is drawn in that case
	Render(r scene.Renderable, cam camera.Camera) error

	// Resize recreates the default framebuffer and reconfigures the presenter.
	// Non-positive sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// Size returns the size of the default framebuffer.
	Size() (width, height int)

	// Framebuffer returns the default framebuffer.
	Framebuffer() *target.RenderTarget

	// Present hands the default framebuffer to the presenter, if one is attached.
	//
	// Returns:
	//   - error: the presenter's error, if any
	Present() error

	// Stats returns the work counters.
	Stats() Stats

	// ResetStats zeroes the work counters.
	ResetStats()

	// Release frees presenter resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a software renderer with a default framebuffer of 1280x720.
//
// Parameters:
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:               &sync.Mutex{},
		width:            1280,
		height:           720,
		workers:          defaultWorkers(),
		clearColor:       common.Black,
		autoClear:        true,
		shadowAutoUpdate: true,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.width <= 0 || r.height <= 0 {
		panic(fmt.Sprintf("renderer: invalid framebuffer size %dx%d", r.width, r.height))
	}

	r.raster = newRasterizer(r.workers)
	r.framebuffer = target.New("framebuffer", r.width, r.height)
	r.viewport = common.Viewport{Width: r.width, Height: r.height}

	if r.presenter != nil {
		if r.pendingPresentMode != nil {
			r.presenter.SetPresentMode(*r.pendingPresentMode)
		}
		r.presenter.Resize(r.width, r.height)
	}
	return r
}

func (r *renderer) destination() *target.RenderTarget {
	if r.bound != nil {
		return r.bound
	}
	return r.framebuffer
}

func (r *renderer) SetRenderTarget(t *target.RenderTarget) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bound = t
	w, h := r.destination().Size()
	r.viewport = common.Viewport{Width: w, Height: h}
}

func (r *renderer) RenderTarget() *target.RenderTarget {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bound
}

func (r *renderer) SetViewport(vp common.Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport = vp
}

func (r *renderer) Viewport() common.Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport
}

func (r *renderer) SetClearColor(c common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c
}

func (r *renderer) ClearColor() common.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) SetAutoClear(autoClear bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.autoClear = autoClear
}

func (r *renderer) AutoClear() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.autoClear
}

func (r *renderer) SetXREnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.xrEnabled = enabled
}

func (r *renderer) XREnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.xrEnabled
}

func (r *renderer) SetShadowAutoUpdate(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shadowAutoUpdate = enabled
}

func (r *renderer) ShadowAutoUpdate() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shadowAutoUpdate
}

func (r *renderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked(r.viewport, r.clearColor)
}

// clearLocked clears a viewport of the destination. Caller must hold the mutex.
func (r *renderer) clearLocked(vp common.Viewport, c common.Color) {
	r.destination().ClearRect(vp, c)
	r.stats.Clears++
}

// drawItem is a visible mesh collected from the graph.
type drawItem struct {
	obj    game_object.GameObject
	world  [16]float32
	center [3]float32
	mat    material.Material
}

func (r *renderer) Render(rd scene.Renderable, cam camera.Camera) error {
	r.mu.Lock()
	r.stats.Submissions++
	if r.shadowAutoUpdate {
		r.stats.ShadowMapUpdates++
	}
	dst := r.destination()
	vp := r.viewport
	if r.bound == nil {
		if camVP, ok := cam.Viewport(); ok {
			vp = camVP
		}
	}
	autoClear, clearColor, xr := r.autoClear, r.clearColor, r.xrEnabled
	r.mu.Unlock()

	items, err := collect(rd.Root(), r.bound)
	if err != nil {
		return err
	}

	if autoClear {
		if bg := rd.Background(); bg != nil {
			clearColor = *bg
		}
		r.mu.Lock()
		r.clearLocked(vp, clearColor)
		r.mu.Unlock()
	}

	lights := rd.Lights()
	if !xr {
		r.drawItems(dst, vp, cam, items, lights)
		return nil
	}

	left, right := splitViewport(vp)
	for i, half := range []common.Viewport{left, right} {
		offset := eyeSeparation / 2
		if i == 0 {
			offset = -offset
		}
		r.drawItems(dst, half, eyeCamera(cam, offset), items, lights)
	}
	return nil
}

// collect walks the graph for enabled meshes with a material, rejecting any whose
// material samples bound.
func collect(root game_object.GameObject, bound *target.RenderTarget) ([]drawItem, error) {
	var items []drawItem
	var err error
	root.Traverse(func(obj game_object.GameObject) bool {
		if err != nil || !obj.Enabled() {
			return false
		}
		mesh, mat := obj.Mesh(), obj.Material()
		if mesh == nil || mat == nil {
			return true
		}
		if bound != nil && slices.Contains(mat.Textures(), bound) {
			err = fmt.Errorf("failed to draw %q with material %q into %q: %w",
				obj.Name(), mat.Name(), bound.Label(), ErrFeedbackLoop)
			return false
		}
		world := obj.WorldMatrix()
		c, _ := mesh.Bounds()
		items = append(items, drawItem{
			obj:    obj,
			world:  world,
			center: common.TransformPoint(world[:], c),
			mat:    mat,
		})
		return true
	})
	return items, err
}

// drawItems culls, orders and rasterizes the collected meshes for one camera.
func (r *renderer) drawItems(dst *target.RenderTarget, vp common.Viewport, cam camera.Camera, items []drawItem, lights []light.Light) {
	viewProj := cam.ViewProjectionMatrix()
	frustum := common.ExtractFrustumFromMatrix(viewProj[:])
	eye := cam.Position()
	scissor := vp.Intersect(dst.Width(), dst.Height())

	var opaque, transparent []drawItem
	culled := 0
	for _, it := range items {
		_, radius := it.obj.Mesh().Bounds()
		if !frustum.IntersectsSphere(it.center, radius*maxScale(it.world)) {
			culled++
			continue
		}
		if it.mat.Options().Transparent {
			transparent = append(transparent, it)
		} else {
			opaque = append(opaque, it)
		}
	}
	sort.SliceStable(transparent, func(i, j int) bool {
		di := common.Length3(common.Sub3(transparent[i].center, eye))
		dj := common.Length3(common.Sub3(transparent[j].center, eye))
		return di > dj
	})

	draws, triangles := 0, 0
	for _, it := range append(opaque, transparent...) {
		opts := it.mat.Options()
		d := &drawCall{
			dst:     dst,
			scissor: scissor,
			mat:     it.mat,
			opts:    opts,
			lights:  lights,
			tris:    setupDraw(it.obj.Mesh(), it.world, viewProj, vp, opts.Side),
		}
		r.raster.execute(d)
		draws++
		triangles += len(d.tris)
	}

	r.mu.Lock()
	r.stats.Draws += draws
	r.stats.Triangles += triangles
	r.stats.Culled += culled
	r.mu.Unlock()
}

// maxScale is the largest axis scale of an affine matrix, used to grow bounding spheres.
func maxScale(m [16]float32) float32 {
	sx := common.Length3([3]float32{m[0], m[1], m[2]})
	sy := common.Length3([3]float32{m[4], m[5], m[6]})
	sz := common.Length3([3]float32{m[8], m[9], m[10]})
	return max(sx, sy, sz)
}

func splitViewport(vp common.Viewport) (left, right common.Viewport) {
	half := vp.Width / 2
	left = common.Viewport{X: vp.X, Y: vp.Y, Width: half, Height: vp.Height}
	right = common.Viewport{X: vp.X + half, Y: vp.Y, Width: vp.Width - half, Height: vp.Height}
	return
}

// eyeCamera shifts cam sideways by offset along its own right axis.
func eyeCamera(cam camera.Camera, offset float32) camera.Camera {
	view := cam.ViewMatrix()
	view[12] -= offset
	return camera.NewVirtualCamera(view, cam.ProjectionMatrix(), cam.Near(), cam.Far())
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, h := r.framebuffer.Size(); w == width && h == height {
		return
	}
	r.framebuffer = target.New("framebuffer", width, height)
	if r.bound == nil {
		r.viewport = common.Viewport{Width: width, Height: height}
	}
	if r.presenter != nil {
		r.presenter.Resize(width, height)
	}
}

func (r *renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.framebuffer.Size()
}

func (r *renderer) Framebuffer() *target.RenderTarget {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.framebuffer
}

func (r *renderer) Present() error {
	r.mu.Lock()
	p, fb := r.presenter, r.framebuffer
	r.mu.Unlock()
	if p == nil {
		return nil
	}
	if err := p.Present(fb); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) ResetStats() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = Stats{}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.presenter != nil {
		r.presenter.Release()
		r.presenter = nil
	}
}
