package renderer

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/geometry"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
	"github.com/chewxy/math32"
)

// minClipW keeps vertices off the eye plane. Oblique projections do not guarantee
// w > 0 on their near plane, so it is clipped separately.
const minClipW = 1e-5

// bandHeight is the minimum number of rows a shading task covers.
const bandHeight = 16

// clipVertex is a vertex after the vertex stage, carrying everything the fragment
// stage interpolates.
type clipVertex struct {
	clip   [4]float32
	world  [3]float32
	local  [3]float32
	normal [3]float32
	uv     [2]float32
}

func lerpClipVertex(a, b clipVertex, t float32) clipVertex {
	var out clipVertex
	for i := range out.clip {
		out.clip[i] = common.Lerp(a.clip[i], b.clip[i], t)
	}
	out.world = common.Lerp3(a.world, b.world, t)
	out.local = common.Lerp3(a.local, b.local, t)
	out.normal = common.Lerp3(a.normal, b.normal, t)
	out.uv = [2]float32{common.Lerp(a.uv[0], b.uv[0], t), common.Lerp(a.uv[1], b.uv[1], t)}
	return out
}

// clipDistances are the half-spaces a triangle is clipped against: z >= 0, z <= w
// and w >= minClipW. x and y are left to the scissor.
var clipDistances = [...]func(c [4]float32) float32{
	func(c [4]float32) float32 { return c[2] },
	func(c [4]float32) float32 { return c[3] - c[2] },
	func(c [4]float32) float32 { return c[3] - minClipW },
}

// clipPolygon clips a convex polygon against every plane in clipDistances
// (Sutherland-Hodgman). in and scratch are reused between calls.
func clipPolygon(in, scratch []clipVertex) []clipVertex {
	out := scratch[:0]
	for _, dist := range clipDistances {
		if len(in) == 0 {
			return in
		}
		out = out[:0]
		prev := in[len(in)-1]
		prevD := dist(prev.clip)
		for _, cur := range in {
			curD := dist(cur.clip)
			if curD >= 0 {
				if prevD < 0 {
					out = append(out, lerpClipVertex(prev, cur, prevD/(prevD-curD)))
				}
				out = append(out, cur)
			} else if prevD >= 0 {
				out = append(out, lerpClipVertex(prev, cur, prevD/(prevD-curD)))
			}
			prev, prevD = cur, curD
		}
		in, out = out, in
	}
	return in
}

// screenTri is a clipped triangle mapped to pixel space, wound so that its edge
// functions are non-negative inside.
type screenTri struct {
	v     [3]clipVertex
	x, y  [3]float32
	z     [3]float32
	invW  [3]float32
	area  float32
	front bool

	minX, maxX, minY, maxY int
}

// drawCall is one mesh draw prepared on the calling goroutine and shaded in bands.
type drawCall struct {
	dst     *target.RenderTarget
	scissor common.Viewport
	mat     material.Material
	opts    material.Options
	lights  []light.Light
	tris    []screenTri
}

// setupDraw runs the vertex stage for a mesh, clips every triangle and maps it to the
// viewport. Triangles rejected by the material's side are dropped here.
//
// Parameters:
//   - mesh: the geometry
//   - model: the object's world matrix
//   - viewProj: the camera's view-projection matrix
//   - vp: the viewport NDC maps to (may extend past the target)
//   - side: which faces survive
//
// Returns:
//   - []screenTri: the triangles to shade
func setupDraw(mesh *geometry.Mesh, model, viewProj [16]float32, vp common.Viewport, side material.Side) []screenTri {
	var mvp [16]float32
	common.Mul4(mvp[:], viewProj[:], model[:])

	var normalMatrix [16]float32
	hasNormalMatrix := common.Invert4(normalMatrix[:], model[:])

	verts := mesh.Vertices()
	transformed := make([]clipVertex, len(verts))
	for i, v := range verts {
		n := v.Normal
		if hasNormalMatrix {
			// inverse transpose applied to a direction
			n = [3]float32{
				normalMatrix[0]*v.Normal[0] + normalMatrix[1]*v.Normal[1] + normalMatrix[2]*v.Normal[2],
				normalMatrix[4]*v.Normal[0] + normalMatrix[5]*v.Normal[1] + normalMatrix[6]*v.Normal[2],
				normalMatrix[8]*v.Normal[0] + normalMatrix[9]*v.Normal[1] + normalMatrix[10]*v.Normal[2],
			}
		}
		transformed[i] = clipVertex{
			clip:   common.MulVec4(mvp[:], [4]float32{v.Position[0], v.Position[1], v.Position[2], 1}),
			world:  common.TransformPoint(model[:], v.Position),
			local:  v.Position,
			normal: common.Normalize3(n),
			uv:     v.UV,
		}
	}

	halfW := float32(vp.Width) / 2
	halfH := float32(vp.Height) / 2
	toScreen := func(c clipVertex) (x, y, z, invW float32) {
		invW = 1 / c.clip[3]
		x = float32(vp.X) + (c.clip[0]*invW+1)*halfW
		y = float32(vp.Y) + (1-c.clip[1]*invW)*halfH
		return x, y, c.clip[2] * invW, invW
	}

	idx := mesh.Indices()
	tris := make([]screenTri, 0, len(idx)/3)
	poly := make([]clipVertex, 0, 9)
	scratch := make([]clipVertex, 0, 9)
	for t := 0; t+2 < len(idx); t += 3 {
		poly = append(poly[:0], transformed[idx[t]], transformed[idx[t+1]], transformed[idx[t+2]])
		clipped := clipPolygon(poly, scratch)
		for k := 1; k+1 < len(clipped); k++ {
			tri := screenTri{v: [3]clipVertex{clipped[0], clipped[k], clipped[k+1]}}
			for i := range tri.v {
				tri.x[i], tri.y[i], tri.z[i], tri.invW[i] = toScreen(tri.v[i])
			}
			// counter-clockwise in NDC is clockwise once y points down
			area := edge(tri.x[0], tri.y[0], tri.x[1], tri.y[1], tri.x[2], tri.y[2])
			if area == 0 {
				continue
			}
			tri.front = area < 0
			if (side == material.SideFront && !tri.front) || (side == material.SideBack && tri.front) {
				continue
			}
			if area < 0 {
				tri.v[1], tri.v[2] = tri.v[2], tri.v[1]
				tri.x[1], tri.x[2] = tri.x[2], tri.x[1]
				tri.y[1], tri.y[2] = tri.y[2], tri.y[1]
				tri.z[1], tri.z[2] = tri.z[2], tri.z[1]
				tri.invW[1], tri.invW[2] = tri.invW[2], tri.invW[1]
				area = -area
			}
			tri.area = area
			tri.minX = toPixel(math32.Floor(min(tri.x[0], tri.x[1], tri.x[2])))
			tri.maxX = toPixel(math32.Ceil(max(tri.x[0], tri.x[1], tri.x[2])))
			tri.minY = toPixel(math32.Floor(min(tri.y[0], tri.y[1], tri.y[2])))
			tri.maxY = toPixel(math32.Ceil(max(tri.y[0], tri.y[1], tri.y[2])))
			tris = append(tris, tri)
		}
	}
	return tris
}

// toPixel converts a bounding box coordinate, clamping triangles that reach far past
// the target after dividing by a tiny w.
func toPixel(v float32) int {
	return int(common.Clamp(v, -1<<24, 1<<24))
}

// edge is the edge function of (ax, ay)->(bx, by) evaluated at (px, py).
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// ownsEdge implements the fill rule for pixels exactly on an edge. Of two triangles
// sharing an edge exactly one owns it, since they walk it in opposite directions.
func ownsEdge(ax, ay, bx, by float32) bool {
	dx, dy := bx-ax, by-ay
	return dy > 0 || (dy == 0 && dx < 0)
}

func covers(e, ax, ay, bx, by float32) bool {
	return e > 0 || (e == 0 && ownsEdge(ax, ay, bx, by))
}

// shadeBand rasterizes every triangle of the draw over rows [y0, y1), in submission
// order, so bands produce the same pixels whatever goroutine runs them.
func (d *drawCall) shadeBand(y0, y1 int) {
	frag := material.Fragment{Lights: d.lights}
	x0, x1 := d.scissor.X, d.scissor.X+d.scissor.Width

	for i := range d.tris {
		tri := &d.tris[i]
		rowStart, rowEnd := max(tri.minY, y0), min(tri.maxY+1, y1)
		colStart, colEnd := max(tri.minX, x0), min(tri.maxX+1, x1)
		if rowStart >= rowEnd || colStart >= colEnd {
			continue
		}
		invArea := 1 / tri.area
		for y := rowStart; y < rowEnd; y++ {
			py := float32(y) + 0.5
			for x := colStart; x < colEnd; x++ {
				px := float32(x) + 0.5
				e0 := edge(tri.x[1], tri.y[1], tri.x[2], tri.y[2], px, py)
				e1 := edge(tri.x[2], tri.y[2], tri.x[0], tri.y[0], px, py)
				e2 := edge(tri.x[0], tri.y[0], tri.x[1], tri.y[1], px, py)
				if !covers(e0, tri.x[1], tri.y[1], tri.x[2], tri.y[2]) ||
					!covers(e1, tri.x[2], tri.y[2], tri.x[0], tri.y[0]) ||
					!covers(e2, tri.x[0], tri.y[0], tri.x[1], tri.y[1]) {
					continue
				}
				l0, l1, l2 := e0*invArea, e1*invArea, e2*invArea

				z := l0*tri.z[0] + l1*tri.z[1] + l2*tri.z[2]
				if d.opts.DepthTest && z > d.dst.Depth(x, y) {
					continue
				}

				// perspective-correct weights
				w0, w1, w2 := l0*tri.invW[0], l1*tri.invW[1], l2*tri.invW[2]
				inv := 1 / (w0 + w1 + w2)
				w0, w1, w2 = w0*inv, w1*inv, w2*inv

				a, b, c := &tri.v[0], &tri.v[1], &tri.v[2]
				frag.UV = [2]float32{
					w0*a.uv[0] + w1*b.uv[0] + w2*c.uv[0],
					w0*a.uv[1] + w1*b.uv[1] + w2*c.uv[1],
				}
				frag.Position = interpolate3(a.world, b.world, c.world, w0, w1, w2)
				frag.LocalPosition = interpolate3(a.local, b.local, c.local, w0, w1, w2)
				n := common.Normalize3(interpolate3(a.normal, b.normal, c.normal, w0, w1, w2))
				if !tri.front {
					n = common.Scale3(n, -1)
				}
				frag.Normal = n
				frag.Depth = z
				frag.FrontFacing = tri.front

				col, keep := d.mat.Shade(&frag)
				if !keep {
					continue
				}
				if d.opts.Transparent {
					col = col.Over(d.dst.At(x, y))
				}
				d.dst.Set(x, y, col)
				if d.opts.DepthWrite {
					d.dst.SetDepth(x, y, z)
				}
			}
		}
	}
}

func interpolate3(a, b, c [3]float32, w0, w1, w2 float32) [3]float32 {
	return [3]float32{
		w0*a[0] + w1*b[0] + w2*c[0],
		w0*a[1] + w1*b[1] + w2*c[1],
		w0*a[2] + w1*b[2] + w2*c[2],
	}
}

// rasterizer shades draw calls in horizontal bands on a worker pool. Each call to
// execute blocks until every band is finished.
type rasterizer struct {
	pool    worker.DynamicWorkerPool
	workers int
	taskID  int
}

func newRasterizer(workers int) *rasterizer {
	return &rasterizer{
		// a 256 deep queue holds every band of a 4K target with headroom
		pool:    worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
		workers: workers,
	}
}

// execute shades one draw call. A panic inside a material is re-raised on the calling
// goroutine once all bands have stopped, so deferred cleanup in the caller still runs.
func (r *rasterizer) execute(d *drawCall) {
	if len(d.tris) == 0 || d.scissor.Empty() {
		return
	}

	bands := min(r.workers*2, (d.scissor.Height+bandHeight-1)/bandHeight)
	if bands <= 1 {
		d.shadeBand(d.scissor.Y, d.scissor.Y+d.scissor.Height)
		return
	}
	rows := (d.scissor.Height + bands - 1) / bands

	var (
		wg        sync.WaitGroup
		panicOnce sync.Once
		panicked  any
	)
	for y := d.scissor.Y; y < d.scissor.Y+d.scissor.Height; y += rows {
		y0, y1 := y, min(y+rows, d.scissor.Y+d.scissor.Height)
		wg.Add(1)
		r.taskID++
		r.pool.SubmitTask(worker.Task{
			ID: r.taskID,
			Do: func() (any, error) {
				defer wg.Done()
				defer func() {
					if p := recover(); p != nil {
						panicOnce.Do(func() { panicked = p })
					}
				}()
				d.shadeBand(y0, y1)
				return nil, nil
			},
		})
	}
	wg.Wait()
	if panicked != nil {
		panic(panicked)
	}
}
