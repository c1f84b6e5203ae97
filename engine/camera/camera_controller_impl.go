package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/chewxy/math32"
)

type cameraControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32

	radius    float32
	azimuth   float32 // around Y, 0 = +Z
	elevation float32 // from the horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed float32
	zoomSpeed  float32

	eye *[3]float32
}

var _ CameraController = &cameraControllerImpl{}

// NewOrbitController creates an orbit controller with defaults suited to a small scene.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewOrbitController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:    5.0,
		elevation: math32.Pi / 8,

		minRadius:    0.5,
		maxRadius:    100.0,
		minElevation: -math32.Pi/2 + 0.05,
		maxElevation: math32.Pi/2 - 0.05,

		orbitSpeed: 0.03,
		zoomSpeed:  0.5,
	}
	for _, option := range options {
		option(cc)
	}
	if cc.eye != nil {
		cc.fromEye(*cc.eye)
		cc.eye = nil
	}
	cc.clamp()
	cc.updatePosition()
	return cc
}

// fromEye derives spherical coordinates from an explicit eye position.
// Caller must hold the mutex or be the constructor.
func (cc *cameraControllerImpl) fromEye(eye [3]float32) {
	off := common.Sub3(eye, cc.target)
	r := common.Length3(off)
	if r < 1e-6 {
		return
	}
	cc.radius = r
	cc.elevation = math32.Asin(common.Clamp(off[1]/r, -1, 1))
	cc.azimuth = math32.Atan2(off[0], off[2])
}

// clamp keeps radius and elevation within bounds. Caller must hold the mutex.
func (cc *cameraControllerImpl) clamp() {
	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinElev, cosElev := math32.Sincos(cc.elevation)
	sinAzim, cosAzim := math32.Sincos(cc.azimuth)

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius -= delta * cc.zoomSpeed
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Orbit(dAzimuth, dElevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += dAzimuth
	cc.elevation += dElevation
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.Orbit(-cc.orbitSpeed, 0)
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.Orbit(cc.orbitSpeed, 0)
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.Orbit(0, cc.orbitSpeed)
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.Orbit(0, -cc.orbitSpeed)
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = radius
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}
