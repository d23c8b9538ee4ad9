package content

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	stacks = 24
	slices = 32
)

// Head builds a stylised head about 26 units tall centred on (0, 10, 0) and
// facing +Z: skull, nose and two ears, one part each.
func Head() Geometry {
	g := Ellipsoid(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{10, 13, 11}, stacks, slices)
	g.Append(Ellipsoid(mgl32.Vec3{0, 9, 11}, mgl32.Vec3{1.8, 3, 2.2}, stacks/2, slices/2))
	g.Append(Ellipsoid(mgl32.Vec3{-10.5, 10, 0}, mgl32.Vec3{1.2, 3.5, 2.2}, stacks/2, slices/2))
	g.Append(Ellipsoid(mgl32.Vec3{10.5, 10, 0}, mgl32.Vec3{1.2, 3.5, 2.2}, stacks/2, slices/2))
	return g
}

// Teapot builds a unit-scale teapot from a body, lid knob, handle and spout.
func Teapot() Geometry {
	g := Ellipsoid(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1.5, 1, 1.5}, stacks, slices)
	g.Append(Sphere(mgl32.Vec3{0, 2.1, 0}, 0.25, stacks/2, slices/2))
	g.Append(Torus(mgl32.Vec3{-1.6, 1.1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, 0.5, 0.1, slices, stacks/2))
	g.Append(Tube(mgl32.Vec3{1.2, 0.9, 0}, mgl32.Vec3{2.3, 1.7, 0}, 0.3, 0.12, slices/2))
	return g
}

// Tabletop builds a flat square of side 5 facing up at y = -0.8.
func Tabletop() Geometry {
	return Quadrilateral(
		mgl32.Vec3{-2.5, -0.8, -2.5},
		mgl32.Vec3{2.5, -0.8, -2.5},
		mgl32.Vec3{2.5, -0.8, 2.5},
		mgl32.Vec3{-2.5, -0.8, 2.5},
	)
}
