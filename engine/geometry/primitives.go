package geometry

import (
	"github.com/chewxy/math32"
)

// Plane builds a width x height rectangle in the XY plane facing +Z, centered on the origin.
// UV (0, 0) is the top-left corner (+Y, -X). Rotating it by -Pi/2 around X lays it on the
// ground facing +Y with v increasing toward +Z.
//
// Parameters:
//   - width, height: size in object units
//   - widthSegments, heightSegments: subdivisions along each axis (minimum 1)
//
// Returns:
//   - *Mesh: the plane mesh
func Plane(width, height float32, widthSegments, heightSegments int) *Mesh {
	ws := max(widthSegments, 1)
	hs := max(heightSegments, 1)

	vertices := make([]Vertex, 0, (ws+1)*(hs+1))
	for iy := 0; iy <= hs; iy++ {
		v := float32(iy) / float32(hs)
		for ix := 0; ix <= ws; ix++ {
			u := float32(ix) / float32(ws)
			vertices = append(vertices, Vertex{
				Position: [3]float32{(u - 0.5) * width, (0.5 - v) * height, 0},
				Normal:   [3]float32{0, 0, 1},
				UV:       [2]float32{u, v},
			})
		}
	}

	indices := make([]uint32, 0, ws*hs*6)
	for iy := 0; iy < hs; iy++ {
		for ix := 0; ix < ws; ix++ {
			a := uint32(iy*(ws+1) + ix) // top-left
			b := a + 1                  // top-right
			c := a + uint32(ws+1)       // bottom-left
			d := c + 1                  // bottom-right
			indices = append(indices, a, c, b, b, c, d)
		}
	}
	return mustMesh("plane", vertices, indices)
}

// Circle builds a disc of the given radius in the XY plane facing +Z.
// UVs map the disc's bounding square onto [0, 1] with v = 0 at +Y, so the center is (0.5, 0.5).
//
// Parameters:
//   - radius: disc radius
//   - segments: number of rim segments (minimum 3)
//
// Returns:
//   - *Mesh: the disc mesh
func Circle(radius float32, segments int) *Mesh {
	segments = max(segments, 3)

	vertices := make([]Vertex, 0, segments+2)
	vertices = append(vertices, Vertex{Normal: [3]float32{0, 0, 1}, UV: [2]float32{0.5, 0.5}})
	for i := 0; i <= segments; i++ {
		s, c := math32.Sincos(float32(i) / float32(segments) * 2 * math32.Pi)
		vertices = append(vertices, Vertex{
			Position: [3]float32{c * radius, s * radius, 0},
			Normal:   [3]float32{0, 0, 1},
			UV:       [2]float32{(c + 1) / 2, (1 - s) / 2},
		})
	}

	indices := make([]uint32, 0, segments*3)
	for i := 1; i <= segments; i++ {
		indices = append(indices, 0, uint32(i), uint32(i+1))
	}
	return mustMesh("circle", vertices, indices)
}

// Box builds an axis-aligned box centered on the origin with outward-facing triangles.
//
// Parameters:
//   - width, height, depth: extents along X, Y and Z
//
// Returns:
//   - *Mesh: the box mesh
func Box(width, height, depth float32) *Mesh {
	hx, hy, hz := width/2, height/2, depth/2

	// each face: normal, and the four corners top-left, top-right, bottom-left, bottom-right
	faces := []struct {
		n       [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {-hx, -hy, hz}, {hx, -hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, hy, -hz}, {-hx, hy, -hz}, {hx, -hy, -hz}, {-hx, -hy, -hz}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, hy, hz}, {hx, hy, -hz}, {hx, -hy, hz}, {hx, -hy, -hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, hy, -hz}, {-hx, hy, hz}, {-hx, -hy, -hz}, {-hx, -hy, hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, -hz}, {hx, hy, -hz}, {-hx, hy, hz}, {hx, hy, hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {-hx, -hy, -hz}, {hx, -hy, -hz}}},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for i, p := range f.corners {
			vertices = append(vertices, Vertex{Position: p, Normal: f.n, UV: uvs[i]})
		}
		indices = append(indices, base, base+2, base+1, base+1, base+2, base+3)
	}
	return mustMesh("box", vertices, indices)
}
