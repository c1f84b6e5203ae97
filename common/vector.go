package common

import "github.com/chewxy/math32"

// Add3 returns a + b.
func Add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns a - b.
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 returns v * s.
func Scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a x b.
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 returns the Euclidean length of v.
func Length3(v [3]float32) float32 {
	return math32.Sqrt(Dot3(v, v))
}

// Normalize3 returns v scaled to unit length, or the zero vector when v has no length.
func Normalize3(v [3]float32) [3]float32 {
	l := Length3(v)
	if l < 1e-12 {
		return [3]float32{}
	}
	return Scale3(v, 1/l)
}

// Lerp3 linearly interpolates between a and b.
func Lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t)}
}

// Reflect3 reflects v about the unit normal n: v - 2(v.n)n.
func Reflect3(v, n [3]float32) [3]float32 {
	return Sub3(v, Scale3(n, 2*Dot3(v, n)))
}

// Dot4 returns the dot product of two 4-vectors.
func Dot4(a, b [4]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}
