package config

import "sync"

// Blur sigma bounds. Above MaxBlurSigma the kernel no longer fits the blur program's taps.
const (
	MinBlurSigma float32 = 0.1
	MaxBlurSigma float32 = 5.0

	MaxFPSLimit = 1000
)

// RenderSettings holds render configuration that may change while running
type RenderSettings struct {
	mu        sync.RWMutex
	fpsLimit  int
	blurSigma float32
}

var globalRenderSettings = &RenderSettings{
	fpsLimit:  0, // uncapped
	blurSigma: 2.0,
}

// GetFPSLimit returns the frame rate cap, 0 when uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > MaxFPSLimit {
		limit = MaxFPSLimit
	}

	globalRenderSettings.fpsLimit = limit
}

// GetBlurSigma returns the Gaussian blur coefficient
func GetBlurSigma() float32 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.blurSigma
}

// SetBlurSigma sets the Gaussian blur coefficient, clamped to [MinBlurSigma, MaxBlurSigma]
func SetBlurSigma(sigma float32) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// NaN fails both comparisons below
	if !(sigma >= MinBlurSigma) {
		sigma = MinBlurSigma
	}
	if sigma > MaxBlurSigma {
		sigma = MaxBlurSigma
	}

	globalRenderSettings.blurSigma = sigma
}
