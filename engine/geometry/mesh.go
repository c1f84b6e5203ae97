package geometry

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// Vertex is a single mesh vertex in object space.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Mesh is an indexed triangle list. Triangles are counter-clockwise when seen from the front.
type Mesh struct {
	name     string
	vertices []Vertex
	indices  []uint32

	boundsCenter [3]float32
	boundsRadius float32
}

// NewMesh validates the index buffer and computes the bounding sphere.
//
// Parameters:
//   - name: debug name
//   - vertices: vertex buffer
//   - indices: triangle list, three indices per triangle
//
// Returns:
//   - *Mesh: the mesh
//   - error: error if the index count is not a multiple of 3 or an index is out of range
func NewMesh(name string, vertices []Vertex, indices []uint32) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh %q: index count %d is not a multiple of 3", name, len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("mesh %q: index %d out of range (%d vertices)", name, idx, len(vertices))
		}
	}
	m := &Mesh{name: name, vertices: vertices, indices: indices}
	m.computeBounds()
	return m, nil
}

func mustMesh(name string, vertices []Vertex, indices []uint32) *Mesh {
	m, err := NewMesh(name, vertices, indices)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Mesh) Name() string { return m.name }

// Vertices returns the vertex buffer. Callers must not modify it.
func (m *Mesh) Vertices() []Vertex { return m.vertices }

// Indices returns the index buffer. Callers must not modify it.
func (m *Mesh) Indices() []uint32 { return m.indices }

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.indices) / 3 }

// Bounds returns the object-space bounding sphere.
func (m *Mesh) Bounds() (center [3]float32, radius float32) {
	return m.boundsCenter, m.boundsRadius
}

// computeBounds fits a sphere around the axis-aligned box of the vertices.
func (m *Mesh) computeBounds() {
	if len(m.vertices) == 0 {
		return
	}
	lo, hi := m.vertices[0].Position, m.vertices[0].Position
	for _, v := range m.vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	m.boundsCenter = common.Scale3(common.Add3(lo, hi), 0.5)
	for _, v := range m.vertices {
		m.boundsRadius = max(m.boundsRadius, common.Length3(common.Sub3(v.Position, m.boundsCenter)))
	}
}

// recomputeNormals replaces vertex normals with area-weighted face normals.
func (m *Mesh) recomputeNormals() {
	for i := range m.vertices {
		m.vertices[i].Normal = [3]float32{}
	}
	for t := 0; t+2 < len(m.indices); t += 3 {
		a, b, c := m.indices[t], m.indices[t+1], m.indices[t+2]
		pa, pb, pc := m.vertices[a].Position, m.vertices[b].Position, m.vertices[c].Position
		n := common.Cross3(common.Sub3(pb, pa), common.Sub3(pc, pa))
		for _, idx := range []uint32{a, b, c} {
			m.vertices[idx].Normal = common.Add3(m.vertices[idx].Normal, n)
		}
	}
	for i := range m.vertices {
		m.vertices[i].Normal = common.Normalize3(m.vertices[i].Normal)
	}
}
