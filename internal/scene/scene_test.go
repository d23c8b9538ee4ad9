package scene_test

import (
	"testing"

	"shadeview/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMesh struct {
	parts []scene.BoundingSphere
	draws int
}

func (m *fakeMesh) Parts() []scene.BoundingSphere { return m.parts }
func (m *fakeMesh) Draw()                         { m.draws++ }

func sphereMesh(radius float32) *fakeMesh {
	return &fakeMesh{parts: []scene.BoundingSphere{{Radius: radius}}}
}

func TestNewModelRejectsNilMesh(t *testing.T) {
	_, err := scene.NewModel(nil, mgl32.Vec3{}, mgl32.Vec3{}, 1)
	assert.ErrorIs(t, err, scene.ErrNilMesh)
}

func TestModelResetRestoresConstructionValues(t *testing.T) {
	pos := mgl32.Vec3{1, 2, 3}
	rot := mgl32.Vec3{mgl32.DegToRad(30), 0, 0}
	m, err := scene.NewModel(sphereMesh(1), pos, rot, 10)
	require.NoError(t, err)

	m.Translate(mgl32.Vec3{5, -4, 7})
	m.Rotate(mgl32.Vec3{0.1, 0.2, 0.3})
	m.RotateY(1.5)
	m.SetScale(0.25)
	m.Translate(mgl32.Vec3{-1, 0, 0})

	m.Reset()
	assert.Equal(t, pos, m.Position())
	assert.Equal(t, rot, m.Rotation())
	assert.Equal(t, float32(10), m.Scale())
}

func TestModelScaleIsAbsolute(t *testing.T) {
	m, err := scene.NewModel(sphereMesh(1), mgl32.Vec3{}, mgl32.Vec3{}, 1)
	require.NoError(t, err)

	m.SetScale(3)
	m.SetScale(3)
	assert.Equal(t, float32(3), m.Scale())
}

func TestModelTransformationOrder(t *testing.T) {
	m, err := scene.NewModel(sphereMesh(1), mgl32.Vec3{10, 0, 0}, mgl32.Vec3{0, mgl32.DegToRad(90), 0}, 2)
	require.NoError(t, err)

	// (1,0,0) -> scale 2 -> (2,0,0) -> yaw 90 -> (0,0,-2) -> translate -> (10,0,-2)
	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, m.TransformationMatrix())
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{10, 0, -2}, 1e-5), "got %v", got)

	// Recomputed after mutation, never cached
	m.Translate(mgl32.Vec3{0, 5, 0})
	got = mgl32.TransformCoordinate(mgl32.Vec3{}, m.TransformationMatrix())
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{10, 5, 0}, 1e-5), "got %v", got)
}

func TestModelRotationAxisOrder(t *testing.T) {
	// X is applied before Y: (0,1,0) -> rotX 90 -> (0,0,1) -> rotY 90 -> (1,0,0)
	m, err := scene.NewModel(sphereMesh(1), mgl32.Vec3{}, mgl32.Vec3{mgl32.DegToRad(90), mgl32.DegToRad(90), 0}, 1)
	require.NoError(t, err)

	got := mgl32.TransformCoordinate(mgl32.Vec3{0, 1, 0}, m.TransformationMatrix())
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5), "got %v", got)
}

func TestModelBoundingSphereFollowsPosition(t *testing.T) {
	mesh := &fakeMesh{parts: []scene.BoundingSphere{
		{Center: mgl32.Vec3{-1, 0, 0}, Radius: 1},
		{Center: mgl32.Vec3{1, 0, 0}, Radius: 1},
	}}
	m, err := scene.NewModel(mesh, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, 4)
	require.NoError(t, err)

	s := m.BoundingSphere()
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, s.Center)
	assert.InDelta(t, 2.0, s.Radius, 1e-6)

	m.Translate(mgl32.Vec3{3, 0, 0})
	assert.Equal(t, mgl32.Vec3{3, 0, 5}, m.BoundingSphere().Center)
}

func TestMerge(t *testing.T) {
	a := scene.BoundingSphere{Center: mgl32.Vec3{0, 0, 0}, Radius: 5}
	inner := scene.BoundingSphere{Center: mgl32.Vec3{1, 0, 0}, Radius: 1}
	assert.Equal(t, a, scene.Merge(a, inner))
	assert.Equal(t, a, scene.Merge(inner, a))

	b := scene.BoundingSphere{Center: mgl32.Vec3{10, 0, 0}, Radius: 1}
	got := scene.Merge(a, b)
	assert.InDelta(t, 8.0, got.Radius, 1e-5)
	assert.True(t, got.Center.ApproxEqualThreshold(mgl32.Vec3{3, 0, 0}, 1e-5), "got %v", got.Center)

	assert.Equal(t, scene.BoundingSphere{}, scene.MergeAll(nil))
}

func TestCameraDefaultsAndReset(t *testing.T) {
	c := scene.NewCamera(mgl32.Vec3{0, 10, 100}, mgl32.Vec3{}, 1.25, 500)

	c.MoveTo(mgl32.Vec3{0, 0, 50}, false)
	c.LookAt(mgl32.Vec3{1, 1, 1}, false)
	c.Reset()
	assert.Equal(t, mgl32.Vec3{0, 10, 100}, c.Position())
	assert.Equal(t, mgl32.Vec3{}, c.Target())

	c.MoveTo(mgl32.Vec3{0, 0, 200}, true)
	c.MoveTo(mgl32.Vec3{30, 0, 0}, false)
	c.Reset()
	assert.Equal(t, mgl32.Vec3{0, 0, 200}, c.Position())
}

func TestCameraViewNeverStale(t *testing.T) {
	c := scene.NewCamera(mgl32.Vec3{0, 10, 100}, mgl32.Vec3{}, 1, 500)

	c.MoveTo(mgl32.Vec3{0, 0, 42}, false)
	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 42}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assert.True(t, c.View().ApproxEqual(want))

	c.LookAt(mgl32.Vec3{5, 0, 0}, false)
	want = mgl32.LookAtV(mgl32.Vec3{0, 0, 42}, mgl32.Vec3{5, 0, 0}, mgl32.Vec3{0, 1, 0})
	assert.True(t, c.View().ApproxEqual(want))
}

func TestCameraFarPlaneClamped(t *testing.T) {
	assert.Equal(t, scene.MinFarPlane, scene.NewCamera(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{}, 1, 10).Far())
	assert.Equal(t, scene.MaxFarPlane, scene.NewCamera(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{}, 1, 5000).Far())
	assert.Equal(t, float32(250), scene.NewCamera(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{}, 1, 250).Far())
}

func TestCameraApplyTransform(t *testing.T) {
	c := scene.NewCamera(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{}, 1, 500)
	m := mgl32.Translate3D(0, 5, 0)

	c.ApplyTransform(m)
	assert.True(t, c.Position().ApproxEqual(mgl32.Vec3{0, 5, 100}))
	assert.True(t, c.View().ApproxEqual(m.Mul4(mgl32.LookAtV(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))))
}

func TestFrustumIntersectsSphere(t *testing.T) {
	c := scene.NewCamera(mgl32.Vec3{0, 10, 100}, mgl32.Vec3{}, 1.25, 500)
	f := scene.NewFrustum(c.ViewProjection())

	tests := []struct {
		name   string
		sphere scene.BoundingSphere
		want   bool
	}{
		{"at target", scene.BoundingSphere{Radius: 1}, true},
		{"far to the right", scene.BoundingSphere{Center: mgl32.Vec3{1000, 0, 0}, Radius: 10}, false},
		{"behind camera", scene.BoundingSphere{Center: mgl32.Vec3{0, 10, 300}, Radius: 10}, false},
		{"beyond far plane", scene.BoundingSphere{Center: mgl32.Vec3{0, 0, -600}, Radius: 10}, false},
		{"straddling left plane", scene.BoundingSphere{Center: mgl32.Vec3{-60, 0, 0}, Radius: 15}, true},
		{"zero radius inside", scene.BoundingSphere{Center: mgl32.Vec3{10, 0, 0}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IntersectsSphere(tt.sphere))
		})
	}
}

func TestFrustumTargetAlwaysInside(t *testing.T) {
	eye := mgl32.Vec3{0, 10, 100}
	target := mgl32.Vec3{3, -2, 1}
	view := mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})

	for _, fov := range []float32{0.01, 1, 10, 45, 90, 120, 170} {
		proj := mgl32.Perspective(mgl32.DegToRad(fov), 1.25, scene.NearPlane, scene.MaxFarPlane)
		f := scene.NewFrustum(proj.Mul4(view))
		assert.True(t, f.ContainsPoint(target), "fov %v", fov)
	}
}

func TestFrustumCullingPartitionsRow(t *testing.T) {
	c := scene.NewCamera(mgl32.Vec3{0, 10, 100}, mgl32.Vec3{}, 1.25, 500)
	f := scene.NewFrustum(c.ViewProjection())

	drawn, culled := 0, 0
	for i := 0; i < 8; i++ {
		m, err := scene.NewModel(sphereMesh(10), mgl32.Vec3{-80 + float32(i)*40, 0, 0}, mgl32.Vec3{}, 1)
		require.NoError(t, err)
		if f.IntersectsSphere(m.BoundingSphere()) {
			drawn++
		} else {
			culled++
		}
	}
	assert.Equal(t, 8, drawn+culled)
	assert.Greater(t, drawn, 0)
	assert.Greater(t, culled, 0)
}

func TestFrustumNearAndFarPlanes(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 10}
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	f := scene.NewFrustum(mgl32.Perspective(mgl32.DegToRad(45), 1, 1, 100).Mul4(view))

	assert.False(t, f.ContainsPoint(mgl32.Vec3{0, 0, 9.5}), "closer than the near plane")
	assert.True(t, f.ContainsPoint(mgl32.Vec3{0, 0, 8.5}))
	assert.True(t, f.ContainsPoint(mgl32.Vec3{0, 0, -89}))
	assert.False(t, f.ContainsPoint(mgl32.Vec3{0, 0, -91}), "beyond the far plane")
	// a sphere reaching back across the far plane still counts
	assert.True(t, f.IntersectsSphere(scene.BoundingSphere{Center: mgl32.Vec3{0, 0, -95}, Radius: 6}))
}

func BenchmarkFrustumIntersectsSphere(b *testing.B) {
	c := scene.NewCamera(mgl32.Vec3{0, 10, 200}, mgl32.Vec3{}, 1.25, 500)
	f := scene.NewFrustum(c.ViewProjection())
	spheres := make([]scene.BoundingSphere, 8)
	for i := range spheres {
		spheres[i] = scene.BoundingSphere{Center: mgl32.Vec3{-80 + float32(i)*40, 10, 0}, Radius: 14}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, s := range spheres {
			_ = f.IntersectsSphere(s)
		}
	}
}
