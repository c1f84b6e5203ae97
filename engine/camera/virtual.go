package camera

import "github.com/Carmen-Shannon/oxy-fx/common"

// VirtualCamera is an immutable camera built from explicit matrices. Capture passes derive
// one per frame (mirrored views, oblique slices) and discard it after rendering.
type VirtualCamera struct {
	view           [16]float32
	projection     [16]float32
	viewProjection [16]float32
	near, far      float32
}

var _ Camera = &VirtualCamera{}

// NewVirtualCamera wraps a rigid view matrix and a projection.
//
// Parameters:
//   - view: world-to-view transform
//   - projection: view-to-clip transform
//   - near, far: the clip distances the projection was built with
//
// Returns:
//   - *VirtualCamera: the camera
func NewVirtualCamera(view, projection [16]float32, near, far float32) *VirtualCamera {
	v := &VirtualCamera{view: view, projection: projection, near: near, far: far}
	common.Mul4(v.viewProjection[:], v.projection[:], v.view[:])
	return v
}

// Snapshot copies the current pose and projection of any camera.
func Snapshot(cam Camera) *VirtualCamera {
	return NewVirtualCamera(cam.ViewMatrix(), cam.ProjectionMatrix(), cam.Near(), cam.Far())
}

// WithProjection returns a copy of v sharing its view but using a different projection.
func (v *VirtualCamera) WithProjection(projection [16]float32) *VirtualCamera {
	return NewVirtualCamera(v.view, projection, v.near, v.far)
}

func (v *VirtualCamera) Position() [3]float32 { return eyeFromView(v.view) }

func (v *VirtualCamera) Forward() [3]float32 {
	_, _, fwd := axesFromView(v.view)
	return fwd
}

func (v *VirtualCamera) Up() [3]float32 {
	_, up, _ := axesFromView(v.view)
	return up
}

func (v *VirtualCamera) Near() float32                     { return v.near }
func (v *VirtualCamera) Far() float32                      { return v.far }
func (v *VirtualCamera) ViewMatrix() [16]float32           { return v.view }
func (v *VirtualCamera) ProjectionMatrix() [16]float32     { return v.projection }
func (v *VirtualCamera) ViewProjectionMatrix() [16]float32 { return v.viewProjection }

func (v *VirtualCamera) Viewport() (common.Viewport, bool) {
	return common.Viewport{}, false
}
