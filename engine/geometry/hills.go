package geometry

import (
	"github.com/furui/fastnoiselite-go"
)

// HillsConfig controls the noise-displaced terrain generator.
type HillsConfig struct {
	Size      float32 // side length of the square terrain
	Segments  int     // subdivisions per side
	Height    float32 // peak displacement
	Frequency float32 // noise frequency in cycles per unit
	Offset    float32 // shifts the noise domain to pick a different landscape
}

// DefaultHillsConfig mirrors the backdrop used by the demo scene.
var DefaultHillsConfig = HillsConfig{
	Size:      20,
	Segments:  96,
	Height:    1.4,
	Frequency: 0.18,
	Offset:    13.37,
}

// Hills builds a ground-aligned (facing +Y) terrain whose height is fractal simplex noise.
// The edges fade to zero height so the terrain blends into a flat floor.
//
// Parameters:
//   - cfg: terrain parameters
//
// Returns:
//   - *Mesh: the displaced terrain
func Hills(cfg HillsConfig) *Mesh {
	noise := fastnoiselite.NewNoise()
	noise.SetNoiseType(fastnoiselite.NoiseTypeOpenSimplex2)
	noise.FractalType = fastnoiselite.FractalTypeFBm
	noise.Frequency = float64(cfg.Frequency)
	noise.SetFractalOctaves(3)

	flat := Plane(cfg.Size, cfg.Size, cfg.Segments, cfg.Segments)
	vertices := make([]Vertex, len(flat.vertices))
	for i, v := range flat.vertices {
		// lay the plane on the ground: (x, y, 0) -> (x, 0, -y)
		x, z := v.Position[0], -v.Position[1]

		// radial falloff keeps the center (where the effects live) flat
		du, dv := v.UV[0]-0.5, v.UV[1]-0.5
		r := 2 * max(abs(du), abs(dv))
		edge := 1 - r*r
		center := min(1, (du*du+dv*dv)*40)

		n := float32(noise.GetNoise2D(fastnoiselite.FNLfloat(x+cfg.Offset), fastnoiselite.FNLfloat(z+cfg.Offset)))
		y := (n*0.5 + 0.5) * cfg.Height * edge * center

		vertices[i] = Vertex{Position: [3]float32{x, y, z}, UV: v.UV}
	}

	m := mustMesh("hills", vertices, flat.indices)
	m.recomputeNormals()
	return m
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
