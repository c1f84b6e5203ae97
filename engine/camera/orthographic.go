package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// OrthographicCamera is a Camera with a parallel projection. Capture passes use it for
// depth slabs and for drawing fullscreen quads.
type OrthographicCamera interface {
	Camera

	// Bounds returns the view volume extents in view space.
	Bounds() (left, right, bottom, top float32)

	// SetBounds sets the view volume extents and rebuilds the projection.
	//
	// Parameters:
	//   - left, right, bottom, top: extents in view space
	SetBounds(left, right, bottom, top float32)

	// SetClipRange sets the near and far distances and rebuilds the projection.
	//
	// Parameters:
	//   - near: distance to the near plane (may be 0)
	//   - far: distance to the far plane
	SetClipRange(near, far float32)

	// LookAt places the camera at eye looking toward target.
	//
	// Parameters:
	//   - eye: world-space position
	//   - target: world-space point to look at
	//   - up: up hint, must not be parallel to target - eye
	//
	// Returns:
	//   - error: common.ErrDegenerate when the pose has no valid basis
	LookAt(eye, target, up [3]float32) error
}

type orthographicCamera struct {
	mu *sync.Mutex

	left, right, bottom, top float32
	near, far                float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

var _ OrthographicCamera = &orthographicCamera{}

// NewOrthographicCamera creates an orthographic camera spanning [-1, 1] in x and y and
// [0, 1] in depth, positioned at the origin looking down -Z.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - OrthographicCamera: the newly created camera
func NewOrthographicCamera(options ...OrthographicOption) OrthographicCamera {
	c := &orthographicCamera{
		mu:     &sync.Mutex{},
		left:   -1,
		right:  1,
		bottom: -1,
		top:    1,
		near:   0,
		far:    1,
	}
	common.Identity(c.viewMatrix[:])
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *orthographicCamera) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return eyeFromView(c.viewMatrix)
}

func (c *orthographicCamera) Forward() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _, fwd := axesFromView(c.viewMatrix)
	return fwd
}

func (c *orthographicCamera) Up() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, up, _ := axesFromView(c.viewMatrix)
	return up
}

func (c *orthographicCamera) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *orthographicCamera) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *orthographicCamera) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *orthographicCamera) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *orthographicCamera) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *orthographicCamera) Viewport() (common.Viewport, bool) {
	return common.Viewport{}, false
}

func (c *orthographicCamera) Bounds() (left, right, bottom, top float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left, c.right, c.bottom, c.top
}

func (c *orthographicCamera) SetBounds(left, right, bottom, top float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.left, c.right, c.bottom, c.top = left, right, bottom, top
	c.updateMatrices()
}

func (c *orthographicCamera) SetClipRange(near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near, c.far = near, far
	c.updateMatrices()
}

func (c *orthographicCamera) LookAt(eye, target, up [3]float32) error {
	view, err := lookAt(eye, target, up)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMatrix = view
	c.updateMatrices()
	return nil
}

// updateMatrices rebuilds the projection and view-projection. Caller must hold the mutex.
func (c *orthographicCamera) updateMatrices() {
	common.Orthographic(c.projectionMatrix[:], c.left, c.right, c.bottom, c.top, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}

// lookAt builds a rigid view matrix, rejecting poses where eye == target or up is
// parallel to the viewing direction.
func lookAt(eye, target, up [3]float32) ([16]float32, error) {
	var view [16]float32
	back := common.Sub3(eye, target)
	if common.Length3(back) < 1e-9 {
		return view, common.ErrDegenerate
	}
	if common.Length3(common.Cross3(common.Normalize3(up), common.Normalize3(back))) < 1e-6 {
		return view, common.ErrDegenerate
	}
	common.LookAt(view[:],
		eye[0], eye[1], eye[2],
		target[0], target[1], target[2],
		up[0], up[1], up[2],
	)
	return view, nil
}
