package common

import "github.com/chewxy/math32"

// NewPlane builds a plane from a normal and a point lying on it.
// The normal is normalized; the positive half-space is the side the normal points to.
//
// Parameters:
//   - normal: plane normal (any length > 0)
//   - point: a point on the plane
//
// Returns:
//   - Plane: the plane n.x + d = 0
//   - bool: false if the normal has no length
func NewPlane(normal, point [3]float32) (Plane, bool) {
	n := Normalize3(normal)
	if n == ([3]float32{}) {
		return Plane{}, false
	}
	return Plane{Normal: n, Distance: -Dot3(n, point)}, true
}

// SignedDistance returns the signed distance from p to the plane (positive on the normal side).
func (p Plane) SignedDistance(point [3]float32) float32 {
	return Dot3(p.Normal, point) + p.Distance
}

// ReflectPoint mirrors a point across the plane.
func (p Plane) ReflectPoint(point [3]float32) [3]float32 {
	return Sub3(point, Scale3(p.Normal, 2*p.SignedDistance(point)))
}

// ReflectVector mirrors a direction across the plane. Translation does not apply.
func (p Plane) ReflectVector(v [3]float32) [3]float32 {
	return Reflect3(v, p.Normal)
}

// Vec4 returns the plane as homogeneous coefficients (nx, ny, nz, d).
func (p Plane) Vec4() [4]float32 {
	return [4]float32{p.Normal[0], p.Normal[1], p.Normal[2], p.Distance}
}

// Transform maps the plane by an affine matrix m, so that points x on the plane
// give points m*x on the result. Returns false if m is singular.
//
// Parameters:
//   - m: the affine transform (16 elements, column-major)
//
// Returns:
//   - Plane: the transformed plane, normalized
//   - bool: false if m cannot be inverted
func (p Plane) Transform(m []float32) (Plane, bool) {
	var inv [16]float32
	if !Invert4(inv[:], m) {
		return Plane{}, false
	}
	c := p.Vec4()
	// inverse transpose: out_i = column i of inv dotted with c
	var out [4]float32
	for i := 0; i < 4; i++ {
		out[i] = inv[i*4]*c[0] + inv[i*4+1]*c[1] + inv[i*4+2]*c[2] + inv[i*4+3]*c[3]
	}
	l := math32.Sqrt(out[0]*out[0] + out[1]*out[1] + out[2]*out[2])
	if l < 1e-12 {
		return Plane{}, false
	}
	return Plane{Normal: [3]float32{out[0] / l, out[1] / l, out[2] / l}, Distance: out[3] / l}, true
}
