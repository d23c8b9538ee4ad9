// Package content generates the gallery's meshes and textures procedurally,
// so the viewer runs without binary model assets.
package content

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"shadeview/internal/scene"
)

// Stride is the number of floats per vertex: position, normal, uv.
const Stride = 8

// Geometry is an interleaved indexed triangle list split into parts, each
// with a local bounding sphere.
type Geometry struct {
	Vertices []float32
	Indices  []uint32
	Parts    []scene.BoundingSphere
}

// VertexCount returns the number of vertices in g.
func (g *Geometry) VertexCount() int { return len(g.Vertices) / Stride }

// Position returns the position of vertex i.
func (g *Geometry) Position(i int) mgl32.Vec3 {
	o := i * Stride
	return mgl32.Vec3{g.Vertices[o], g.Vertices[o+1], g.Vertices[o+2]}
}

// Normal returns the normal of vertex i.
func (g *Geometry) Normal(i int) mgl32.Vec3 {
	o := i*Stride + 3
	return mgl32.Vec3{g.Vertices[o], g.Vertices[o+1], g.Vertices[o+2]}
}

// Append adds other as further parts of g.
func (g *Geometry) Append(other Geometry) {
	base := uint32(g.VertexCount())
	g.Vertices = append(g.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		g.Indices = append(g.Indices, base+idx)
	}
	g.Parts = append(g.Parts, other.Parts...)
}

// surface maps grid coordinates s, t in [0, 1] to a position and outward normal.
type surface func(s, t float32) (pos, normal mgl32.Vec3)

// grid tessellates f into rows x cols quads as a single part. Triangles are
// wound counter-clockwise when seen from the side the normals point to.
func grid(rows, cols int, f surface) Geometry {
	var g Geometry
	for i := 0; i <= rows; i++ {
		t := float32(i) / float32(rows)
		for j := 0; j <= cols; j++ {
			s := float32(j) / float32(cols)
			p, n := f(s, t)
			g.Vertices = append(g.Vertices, p[0], p[1], p[2], n[0], n[1], n[2], s, t)
		}
	}

	stride := uint32(cols + 1)
	for i := uint32(0); i < uint32(rows); i++ {
		for j := uint32(0); j < uint32(cols); j++ {
			a := i*stride + j
			b := a + stride
			c := b + 1
			d := a + 1
			g.addTriangle(a, b, c)
			g.addTriangle(a, c, d)
		}
	}
	g.Parts = []scene.BoundingSphere{g.bounds()}
	return g
}

// addTriangle appends a, b, c flipping the winding when the face normal
// disagrees with the vertex normals. Degenerate triangles at poles are dropped.
func (g *Geometry) addTriangle(a, b, c uint32) {
	pa, pb, pc := g.Position(int(a)), g.Position(int(b)), g.Position(int(c))
	e1, e2 := pb.Sub(pa), pc.Sub(pa)
	face := e1.Cross(e2)
	if face.Len() <= 1e-4*e1.Len()*e2.Len() {
		return
	}
	avg := g.Normal(int(a)).Add(g.Normal(int(b))).Add(g.Normal(int(c)))
	if face.Dot(avg) < 0 {
		b, c = c, b
	}
	g.Indices = append(g.Indices, a, b, c)
}

// bounds returns a sphere around the centre of the axis-aligned box of every vertex.
func (g *Geometry) bounds() scene.BoundingSphere {
	n := g.VertexCount()
	if n == 0 {
		return scene.BoundingSphere{}
	}
	lo, hi := g.Position(0), g.Position(0)
	for i := 1; i < n; i++ {
		p := g.Position(i)
		for k := 0; k < 3; k++ {
			lo[k] = math32.Min(lo[k], p[k])
			hi[k] = math32.Max(hi[k], p[k])
		}
	}
	center := lo.Add(hi).Mul(0.5)
	var radius float32
	for i := 0; i < n; i++ {
		radius = math32.Max(radius, g.Position(i).Sub(center).Len())
	}
	return scene.BoundingSphere{Center: center, Radius: radius}
}

// Ellipsoid tessellates an ellipsoid with the given semi-axes.
func Ellipsoid(center, radii mgl32.Vec3, stacks, slices int) Geometry {
	return grid(stacks, slices, func(s, t float32) (mgl32.Vec3, mgl32.Vec3) {
		theta := t * math32.Pi
		phi := s * 2 * math32.Pi
		unit := mgl32.Vec3{
			math32.Sin(theta) * math32.Cos(phi),
			math32.Cos(theta),
			math32.Sin(theta) * math32.Sin(phi),
		}
		pos := mgl32.Vec3{unit[0] * radii[0], unit[1] * radii[1], unit[2] * radii[2]}
		normal := mgl32.Vec3{unit[0] / radii[0], unit[1] / radii[1], unit[2] / radii[2]}.Normalize()
		return center.Add(pos), normal
	})
}

// Sphere tessellates a sphere.
func Sphere(center mgl32.Vec3, radius float32, stacks, slices int) Geometry {
	return Ellipsoid(center, mgl32.Vec3{radius, radius, radius}, stacks, slices)
}

// Torus tessellates a ring of the given major and minor radius lying in the
// plane spanned by u and v around center.
func Torus(center, u, v mgl32.Vec3, major, minor float32, rings, sides int) Geometry {
	u, v = u.Normalize(), v.Normalize()
	axis := u.Cross(v)
	return grid(sides, rings, func(s, t float32) (mgl32.Vec3, mgl32.Vec3) {
		a := s * 2 * math32.Pi
		b := t * 2 * math32.Pi
		radial := u.Mul(math32.Cos(a)).Add(v.Mul(math32.Sin(a)))
		normal := radial.Mul(math32.Cos(b)).Add(axis.Mul(math32.Sin(b)))
		return center.Add(radial.Mul(major)).Add(normal.Mul(minor)), normal
	})
}

// Tube tessellates an open frustum of a cone from p0 with radius r0 to p1 with radius r1.
func Tube(p0, p1 mgl32.Vec3, r0, r1 float32, segments int) Geometry {
	axis := p1.Sub(p0).Normalize()
	ref := mgl32.Vec3{0, 1, 0}
	if math32.Abs(axis.Dot(ref)) > 0.9 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	u := axis.Cross(ref).Normalize()
	w := axis.Cross(u)
	return grid(1, segments, func(s, t float32) (mgl32.Vec3, mgl32.Vec3) {
		a := s * 2 * math32.Pi
		radial := u.Mul(math32.Cos(a)).Add(w.Mul(math32.Sin(a)))
		r := r0 + (r1-r0)*t
		center := p0.Add(p1.Sub(p0).Mul(t))
		return center.Add(radial.Mul(r)), radial
	})
}

// Quadrilateral builds a single-part quad from its corners given clockwise
// from the top left when looking at its front face. The normal is taken
// from the first triangle.
func Quadrilateral(topLeft, topRight, bottomRight, bottomLeft mgl32.Vec3) Geometry {
	normal := bottomLeft.Sub(topLeft).Cross(bottomRight.Sub(topLeft)).Normalize()
	corners := [4]struct {
		p    mgl32.Vec3
		u, v float32
	}{
		{topLeft, 0, 0},
		{topRight, 1, 0},
		{bottomRight, 1, 1},
		{bottomLeft, 0, 1},
	}

	var g Geometry
	for _, c := range corners {
		g.Vertices = append(g.Vertices, c.p[0], c.p[1], c.p[2], normal[0], normal[1], normal[2], c.u, c.v)
	}
	g.Indices = []uint32{0, 3, 2, 0, 2, 1}
	g.Parts = []scene.BoundingSphere{g.bounds()}
	return g
}
