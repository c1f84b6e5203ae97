package camera

// OrthographicOption is a functional option for configuring an OrthographicCamera.
type OrthographicOption func(*orthographicCamera)

// WithBounds sets the view volume extents.
//
// Parameters:
//   - left, right, bottom, top: extents in view space
//
// Returns:
//   - OrthographicOption: functional option to set the bounds
func WithBounds(left, right, bottom, top float32) OrthographicOption {
	return func(c *orthographicCamera) {
		c.left, c.right, c.bottom, c.top = left, right, bottom, top
	}
}

// WithClipRange sets the near and far distances.
func WithClipRange(near, far float32) OrthographicOption {
	return func(c *orthographicCamera) {
		c.near, c.far = near, far
	}
}

// WithPose places the camera at eye looking toward target. A degenerate pose leaves the
// default view in place.
//
// Parameters:
//   - eye: world-space position
//   - target: world-space point to look at
//   - up: up hint
//
// Returns:
//   - OrthographicOption: functional option to set the pose
func WithPose(eye, target, up [3]float32) OrthographicOption {
	return func(c *orthographicCamera) {
		if view, err := lookAt(eye, target, up); err == nil {
			c.viewMatrix = view
		}
	}
}
