package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Plane indices into Frustum.planes.
const (
	planeLeft = iota
	planeRight
	planeBottom
	planeTop
	planeNear
	planeFar
	planeCount
)

// Frustum holds the six clip planes of a view-projection transform.
// Each plane is (nx, ny, nz, d) with a unit inward normal, so a point is inside
// when every signed distance is >= 0.
type Frustum struct {
	planes [planeCount]mgl32.Vec4
	matrix mgl32.Mat4
}

// NewFrustum builds a frustum from the combined projection*view matrix.
func NewFrustum(viewProj mgl32.Mat4) Frustum {
	f := Frustum{matrix: viewProj}

	// clip-space x, y and z are bounded by ±w, so each plane is row 3 plus or minus another row
	w := viewProj.Row(3)
	for axis := 0; axis < 3; axis++ {
		r := viewProj.Row(axis)
		f.planes[axis*2] = unitPlane(w.Add(r))
		f.planes[axis*2+1] = unitPlane(w.Sub(r))
	}
	return f
}

// unitPlane scales p so its normal has unit length. Degenerate planes are kept as is.
func unitPlane(p mgl32.Vec4) mgl32.Vec4 {
	n := math32.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
	if n == 0 {
		return p
	}
	return p.Mul(1 / n)
}

// Matrix returns the view-projection matrix the frustum was built from.
func (f Frustum) Matrix() mgl32.Mat4 {
	return f.matrix
}

// IntersectsSphere reports whether any part of s lies inside the frustum.
func (f Frustum) IntersectsSphere(s BoundingSphere) bool {
	p := s.Center.Vec4(1)
	for _, pl := range f.planes {
		if pl.Dot(p) < -s.Radius {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p lies inside the frustum.
func (f Frustum) ContainsPoint(p mgl32.Vec3) bool {
	return f.IntersectsSphere(BoundingSphere{Center: p})
}
