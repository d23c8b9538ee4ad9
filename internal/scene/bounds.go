package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BoundingSphere is a center/radius pair used for cheap visibility tests.
type BoundingSphere struct {
	Center mgl32.Vec3
	Radius float32
}

// Merge returns the smallest sphere enclosing both a and b.
func Merge(a, b BoundingSphere) BoundingSphere {
	d := b.Center.Sub(a.Center)
	dist := d.Len()

	// One sphere already contains the other
	if dist+b.Radius <= a.Radius {
		return a
	}
	if dist+a.Radius <= b.Radius {
		return b
	}

	radius := (dist + a.Radius + b.Radius) * 0.5
	center := a.Center
	if dist > 0 {
		center = a.Center.Add(d.Mul((radius - a.Radius) / dist))
	}
	return BoundingSphere{Center: center, Radius: radius}
}

// MergeAll folds Merge over spheres. An empty slice yields the zero sphere.
func MergeAll(spheres []BoundingSphere) BoundingSphere {
	if len(spheres) == 0 {
		return BoundingSphere{}
	}
	out := spheres[0]
	for _, s := range spheres[1:] {
		out = Merge(out, s)
	}
	return out
}
