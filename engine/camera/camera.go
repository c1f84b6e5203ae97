package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/chewxy/math32"
)

// Camera is the read-only view of a camera that render passes consume.
// Implementations derive their pose from the view matrix so that position,
// forward and up always agree with what the renderer draws.
type Camera interface {
	// Position returns the camera's world-space eye position.
	Position() [3]float32

	// Forward returns the unit world-space viewing direction.
	Forward() [3]float32

	// Up returns the camera's orthonormal world-space up axis.
	Up() [3]float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns the world-to-view transform.
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the view-to-clip transform (clip z in [0, 1]).
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	ViewProjectionMatrix() [16]float32

	// Viewport returns the camera's own viewport, if it has one.
	//
	// Returns:
	//   - common.Viewport: the pixel rectangle to render into
	//   - bool: false when the camera renders to the full target
	Viewport() (common.Viewport, bool)
}

// PerspectiveCamera is a Camera with a perspective projection whose pose comes from an
// attached CameraController each frame via Update.
type PerspectiveCamera interface {
	Camera

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// SetUp sets the up hint used when building the view matrix.
	//
	// Parameters:
	//   - x, y, z: world-space up hint
	SetUp(x, y, z float32)

	// SetFov sets the vertical field of view and rebuilds the projection.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio and rebuilds the projection.
	//
	// Parameters:
	//   - aspect: width divided by height
	SetAspect(aspect float32)

	// SetNear sets the near clipping distance and rebuilds the projection.
	SetNear(near float32)

	// SetFar sets the far clipping distance and rebuilds the projection.
	SetFar(far float32)

	// SetViewport restricts rendering to a pixel rectangle. Passing nil removes the restriction.
	//
	// Parameters:
	//   - vp: the viewport, or nil
	SetViewport(vp *common.Viewport)

	// Controller returns the attached controller, or nil.
	Controller() CameraController

	// SetController attaches a controller. Matrices refresh on the next Update.
	//
	// Parameters:
	//   - ctrl: the controller that owns position and target
	SetController(ctrl CameraController)

	// Update reads position and target from the controller and recomputes all matrices.
	// This is a no-op when no controller is attached.
	Update()
}

type perspectiveCamera struct {
	mu *sync.Mutex

	up [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	viewport   *common.Viewport
	controller CameraController
}

var _ PerspectiveCamera = &perspectiveCamera{}

// NewPerspectiveCamera creates a perspective camera with a 45 degree field of view.
// A controller must be attached via SetController or WithController before the camera
// has a pose; until then the view matrix is the identity.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - PerspectiveCamera: the newly created camera
func NewPerspectiveCamera(options ...CameraBuilderOption) PerspectiveCamera {
	c := &perspectiveCamera{
		mu:     &sync.Mutex{},
		up:     [3]float32{0, 1, 0},
		fov:    45.0 * (math32.Pi / 180.0),
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	common.Identity(c.viewMatrix[:])
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *perspectiveCamera) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return eyeFromView(c.viewMatrix)
}

func (c *perspectiveCamera) Forward() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _, fwd := axesFromView(c.viewMatrix)
	return fwd
}

func (c *perspectiveCamera) Up() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, up, _ := axesFromView(c.viewMatrix)
	return up
}

func (c *perspectiveCamera) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *perspectiveCamera) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *perspectiveCamera) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *perspectiveCamera) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *perspectiveCamera) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *perspectiveCamera) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *perspectiveCamera) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *perspectiveCamera) Viewport() (common.Viewport, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewport == nil {
		return common.Viewport{}, false
	}
	return *c.viewport, true
}

func (c *perspectiveCamera) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *perspectiveCamera) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *perspectiveCamera) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *perspectiveCamera) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *perspectiveCamera) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *perspectiveCamera) SetViewport(vp *common.Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if vp == nil {
		c.viewport = nil
		return
	}
	v := *vp
	c.viewport = &v
}

func (c *perspectiveCamera) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *perspectiveCamera) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

func (c *perspectiveCamera) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// The view matrix is only rebuilt when a controller is attached.
// Caller must hold the mutex.
func (c *perspectiveCamera) updateMatrices() {
	if c.controller != nil {
		px, py, pz := c.controller.Position()
		tx, ty, tz := c.controller.Target()
		common.LookAt(c.viewMatrix[:],
			px, py, pz,
			tx, ty, tz,
			c.up[0], c.up[1], c.up[2],
		)
	}
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}

// axesFromView extracts the camera basis from the rows of a rigid view matrix.
func axesFromView(view [16]float32) (right, up, forward [3]float32) {
	right = [3]float32{view[0], view[4], view[8]}
	up = [3]float32{view[1], view[5], view[9]}
	forward = [3]float32{-view[2], -view[6], -view[10]}
	return
}

// eyeFromView recovers the eye position of a rigid view matrix: eye = -R^T t.
func eyeFromView(view [16]float32) [3]float32 {
	right, up, fwd := axesFromView(view)
	back := common.Scale3(fwd, -1)
	t := common.Add3(common.Add3(common.Scale3(right, view[12]), common.Scale3(up, view[13])), common.Scale3(back, view[14]))
	return common.Scale3(t, -1)
}
