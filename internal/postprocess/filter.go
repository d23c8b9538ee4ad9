package postprocess

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"shadeview/internal/graphics"
	"shadeview/internal/logging"
)

// FilterKind discriminates the closed set of post-processing filters.
type FilterKind int

const (
	// FilterPassthrough redraws the capture once through its program (e.g. monochrome).
	FilterPassthrough FilterKind = iota
	// FilterGaussianBlur applies a two-pass separable Gaussian blur.
	FilterGaussianBlur
)

func (k FilterKind) String() string {
	switch k {
	case FilterPassthrough:
		return "Passthrough"
	case FilterGaussianBlur:
		return "GaussianBlur"
	default:
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
}

// releaser is implemented by render targets that own GPU memory.
type releaser interface {
	Release()
}

// Filter redraws a captured color buffer into the current default target.
type Filter struct {
	kind    FilterKind
	dev     graphics.Device
	program graphics.Program

	// blur state
	sigma         float32
	width, height int
	horizontal    Kernel
	vertical      Kernel
	intermediate  graphics.RenderTarget
}

// NewPassthrough creates a single-pass filter that draws the capture through program.
func NewPassthrough(dev graphics.Device, program graphics.Program) (*Filter, error) {
	if dev == nil {
		return nil, graphics.ErrNilDevice
	}
	if program == nil {
		return nil, graphics.ErrNilProgram
	}
	return &Filter{kind: FilterPassthrough, dev: dev, program: program}, nil
}

// NewGaussianBlur creates a blur filter sized to the device viewport.
func NewGaussianBlur(dev graphics.Device, program graphics.Program, sigma float32) (*Filter, error) {
	if dev == nil {
		return nil, graphics.ErrNilDevice
	}
	if program == nil {
		return nil, graphics.ErrNilProgram
	}

	f := &Filter{kind: FilterGaussianBlur, dev: dev, program: program, sigma: sigma}
	w, h := dev.Viewport()
	if err := f.rebuild(w, h); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Filter) Kind() FilterKind                    { return f.kind }
func (f *Filter) Program() graphics.Program           { return f.program }
func (f *Filter) Sigma() float32                      { return f.sigma }
func (f *Filter) Horizontal() Kernel                  { return f.horizontal }
func (f *Filter) Vertical() Kernel                    { return f.vertical }
func (f *Filter) Intermediate() graphics.RenderTarget { return f.intermediate }

// SetSigma changes the blur coefficient and recomputes both kernels.
// It has no effect on passthrough filters. On error the filter is unchanged.
func (f *Filter) SetSigma(sigma float32) error {
	if f.kind != FilterGaussianBlur || sigma == f.sigma {
		return nil
	}
	h, v, err := kernels(sigma, f.width, f.height)
	if err != nil {
		return err
	}
	f.sigma, f.horizontal, f.vertical = sigma, h, v
	return nil
}

// Resize rebuilds the kernels and the intermediate target for a new viewport.
// Calls with unchanged dimensions are ignored.
func (f *Filter) Resize(width, height int) error {
	if f.kind != FilterGaussianBlur || (width == f.width && height == f.height && f.intermediate != nil) {
		return nil
	}
	return f.rebuild(width, height)
}

// rebuild allocates everything for the new size before touching the filter,
// so a failure leaves the previous state drawable.
func (f *Filter) rebuild(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("postprocess: invalid viewport %dx%d", width, height)
	}
	h, v, err := kernels(f.sigma, width, height)
	if err != nil {
		return err
	}
	target, err := f.dev.NewRenderTarget(width, height)
	if err != nil {
		return fmt.Errorf("postprocess: blur intermediate target: %w", err)
	}

	if r, ok := f.intermediate.(releaser); ok {
		r.Release()
	}
	f.intermediate = target
	f.width, f.height = width, height
	f.horizontal, f.vertical = h, v

	logging.Logger().Debug("blur filter rebuilt", "sigma", f.sigma, "width", width, "height", height, "taps", len(h.Weights))
	return nil
}

// Release frees the intermediate target. The filter must not be drawn afterwards.
func (f *Filter) Release() {
	if r, ok := f.intermediate.(releaser); ok {
		r.Release()
	}
	f.intermediate = nil
}

// kernels returns the horizontal and vertical kernels for a width x height target.
func kernels(sigma float32, width, height int) (Kernel, Kernel, error) {
	h, err := NewKernel(sigma, mgl32.Vec2{1 / float32(width), 0})
	if err != nil {
		return Kernel{}, Kernel{}, err
	}
	v, err := NewKernel(sigma, mgl32.Vec2{0, 1 / float32(height)})
	if err != nil {
		return Kernel{}, Kernel{}, err
	}
	return h, v, nil
}

// Draw runs the filter over source and leaves the result in the default target.
func (f *Filter) Draw(source graphics.RenderTarget) {
	if source == nil {
		return
	}

	switch f.kind {
	case FilterGaussianBlur:
		f.bindKernel(f.horizontal)
		f.dev.SetRenderTarget(f.intermediate)
		f.pass(source)
		f.dev.SetRenderTarget(nil)

		f.bindKernel(f.vertical)
		f.pass(f.intermediate)
	default:
		f.pass(source)
	}
}

func (f *Filter) pass(source graphics.RenderTarget) {
	f.dev.Clear(graphics.Black)
	f.dev.DrawFullscreen(f.program, source)
}

func (f *Filter) bindKernel(k Kernel) {
	caps := f.program.Params()
	if caps.Has(graphics.ParamOffsets) {
		f.program.SetVec2s(graphics.ParamOffsets, k.Offsets)
	}
	if caps.Has(graphics.ParamWeights) {
		f.program.SetFloats(graphics.ParamWeights, k.Weights)
	}
	if caps.Has(graphics.ParamTapCount) {
		f.program.SetInt(graphics.ParamTapCount, int32(len(k.Weights)))
	}
}
