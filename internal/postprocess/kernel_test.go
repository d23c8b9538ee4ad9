package postprocess

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTapCount(t *testing.T) {
	tests := []struct {
		sigma float32
		want  int
	}{
		{0.1, 1},
		{0.5, 1},
		{1, 3},
		{2, 7},
		{2.5, 7},
		{3, 9},
		{5, 15},
	}
	for _, tt := range tests {
		got := TapCount(tt.sigma)
		assert.Equal(t, tt.want, got, "sigma %v", tt.sigma)
		assert.Equal(t, 1, got%2, "tap count must be odd")
	}
}

func TestKernelNormalised(t *testing.T) {
	for _, sigma := range []float32{0.1, 0.5, 1, 1.5, 2, 3, 4, 5} {
		k, err := NewKernel(sigma, mgl32.Vec2{1.0 / 800, 0})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, k.Sum(), 1e-5, "sigma %v", sigma)
		assert.Len(t, k.Offsets, len(k.Weights))
	}
}

func TestKernelSigmaTwo(t *testing.T) {
	texel := mgl32.Vec2{1.0 / 800, 0}
	k, err := NewKernel(2, texel)
	require.NoError(t, err)
	require.Len(t, k.Weights, 7)

	assert.Equal(t, mgl32.Vec2{}, k.Offsets[0])
	for i, mult := range []float32{1.5, 3.5, 5.5} {
		pos, neg := k.Offsets[i*2+1], k.Offsets[i*2+2]
		assert.InDelta(t, texel.X()*mult, pos.X(), 1e-7)
		assert.InDelta(t, -texel.X()*mult, neg.X(), 1e-7)
		assert.Zero(t, pos.Y())
		assert.Equal(t, k.Weights[i*2+1], k.Weights[i*2+2], "pair %d must be symmetric", i)
	}

	// weights fall off away from the centre
	assert.Greater(t, k.Weights[0], k.Weights[1])
	assert.Greater(t, k.Weights[1], k.Weights[3])
	assert.Greater(t, k.Weights[3], k.Weights[5])
}

func TestKernelVerticalAxis(t *testing.T) {
	k, err := NewKernel(2, mgl32.Vec2{0, 1.0 / 600})
	require.NoError(t, err)
	for _, o := range k.Offsets {
		assert.Zero(t, o.X())
	}
	assert.InDelta(t, 1.5/600, k.Offsets[1].Y(), 1e-7)
}

func TestKernelSingleTap(t *testing.T) {
	k, err := NewKernel(0.2, mgl32.Vec2{0.01, 0})
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, k.Weights)
}

func TestKernelErrors(t *testing.T) {
	_, err := NewKernel(0, mgl32.Vec2{1, 0})
	assert.ErrorIs(t, err, ErrInvalidSigma)

	_, err = NewKernel(-1, mgl32.Vec2{1, 0})
	assert.ErrorIs(t, err, ErrInvalidSigma)

	_, err = NewKernel(float32(math.NaN()), mgl32.Vec2{1, 0})
	assert.ErrorIs(t, err, ErrInvalidSigma)

	for _, sigma := range []float32{5.5, 4e18, 1e30, float32(math.Inf(1))} {
		_, err = NewKernel(sigma, mgl32.Vec2{1, 0})
		assert.ErrorIs(t, err, ErrTooManyTaps, "sigma %v", sigma)
	}
}

func TestTapCountBeyondBudget(t *testing.T) {
	assert.Equal(t, MaxTaps, TapCount(5.3))
	for _, sigma := range []float32{5.4, 1e30, float32(math.Inf(1))} {
		assert.Greater(t, TapCount(sigma), MaxTaps, "sigma %v", sigma)
	}
}

func BenchmarkNewKernel(b *testing.B) {
	texel := mgl32.Vec2{1.0 / 1280, 0}
	for i := 0; i < b.N; i++ {
		_, _ = NewKernel(DefaultSigma, texel)
	}
}
