package postprocess

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxTaps is the number of samples the blur program reads per pass.
const MaxTaps = 15

// DefaultSigma is the blur coefficient used when none is configured.
const DefaultSigma float32 = 2.0

var (
	ErrInvalidSigma = errors.New("postprocess: blur sigma must be positive")
	ErrTooManyTaps  = errors.New("postprocess: blur kernel exceeds tap budget")
)

// Kernel holds the weights and texture-space offsets for one blur pass.
// Tap 0 is the centre; taps 2i+1 and 2i+2 are a mirrored pair.
type Kernel struct {
	Weights []float32
	Offsets []mgl32.Vec2
}

// TapCount returns the number of samples in the kernel. Any sigma whose kernel
// exceeds MaxTaps reports MaxTaps+2.
func TapCount(sigma float32) int {
	// samples further than 3 sigma contribute almost nothing
	span := 3 * sigma
	if !(span < MaxTaps+1) {
		return MaxTaps + 2
	}
	limit := int(span)
	if limit%2 == 0 {
		limit++
	}
	return limit
}

// NewKernel computes a normalised one-dimensional Gaussian kernel. texel is the
// size of one texel along the blur axis, e.g. (1/width, 0) for a horizontal pass.
func NewKernel(sigma float32, texel mgl32.Vec2) (Kernel, error) {
	if !(sigma > 0) {
		return Kernel{}, fmt.Errorf("%w: %v", ErrInvalidSigma, sigma)
	}
	limit := TapCount(sigma)
	if limit > MaxTaps {
		return Kernel{}, fmt.Errorf("%w: sigma %v, max %d taps", ErrTooManyTaps, sigma, MaxTaps)
	}

	k := Kernel{
		Weights: make([]float32, limit),
		Offsets: make([]mgl32.Vec2, limit),
	}

	k.Weights[0] = gaussian(0, sigma)
	total := k.Weights[0]

	for i := 0; i < limit/2; i++ {
		w := gaussian(float32(i+1), sigma)
		total += w * 2

		// sampling between two texels lets bilinear filtering average both
		offset := texel.Mul(float32(i*2) + 1.5)

		k.Weights[i*2+1] = w
		k.Weights[i*2+2] = w
		k.Offsets[i*2+1] = offset
		k.Offsets[i*2+2] = offset.Mul(-1)
	}

	for i := range k.Weights {
		k.Weights[i] /= total
	}
	return k, nil
}

// Sum returns the total weight of the kernel.
func (k Kernel) Sum() float32 {
	var s float32
	for _, w := range k.Weights {
		s += w
	}
	return s
}

// gaussian evaluates the one-dimensional normal distribution at distance x from the centre.
func gaussian(x, sigma float32) float32 {
	s2 := sigma * sigma
	return (1 / math32.Sqrt(2*math32.Pi*s2)) * math32.Exp(-(x*x)/(2*s2))
}
