// Package glyphs bakes a font into a single-channel atlas and lays out text
// as textured quads. It does no GL work; glbackend uploads the result.
package glyphs

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// First and last runes baked into the atlas (printable ASCII).
const (
	FirstRune rune = 32
	LastRune  rune = 126
)

const (
	atlasWidth = 512
	padding    = 1
)

var ErrNoGlyphs = errors.New("glyphs: font produced no glyphs")

// Glyph describes a single character's placement and metrics within the atlas.
type Glyph struct {
	// Pixel rectangle of the glyph bitmap in the atlas (top-left origin)
	X, Y, W, H int
	// Offset of the bitmap from the pen position on the baseline
	BearingX, BearingY int
	Advance            int
}

// Atlas is a baked glyph set.
type Atlas struct {
	Image  *image.Alpha
	Glyphs map[rune]Glyph
	// LineHeight is the font's ascent plus descent in pixels
	LineHeight int
}

// DefaultAtlas bakes the Go Regular font at the given pixel size.
func DefaultAtlas(pixels int) (*Atlas, error) {
	return BuildAtlas(goregular.TTF, pixels)
}

// BuildAtlas parses a TrueType/OpenType font and packs FirstRune..LastRune into rows.
func BuildAtlas(ttf []byte, pixels int) (*Atlas, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(pixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	type baked struct {
		r     rune
		mask  image.Image
		maskp image.Point
	}

	// First pass: measure and place every glyph
	var list []baked
	glyphs := make(map[rune]Glyph)
	x, y, rowH := 0, 0, 0
	for r := FirstRune; r <= LastRune; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		g := Glyph{
			BearingX: dr.Min.X,
			BearingY: -dr.Min.Y,
			Advance:  advance.Round(),
		}
		if mask != nil && dr.Dx() > 0 && dr.Dy() > 0 {
			if x+dr.Dx() > atlasWidth {
				x = 0
				y += rowH + padding
				rowH = 0
			}
			g.X, g.Y, g.W, g.H = x, y, dr.Dx(), dr.Dy()
			x += dr.Dx() + padding
			if dr.Dy() > rowH {
				rowH = dr.Dy()
			}
			list = append(list, baked{r: r, mask: mask, maskp: maskp})
		}
		glyphs[r] = g
	}
	if len(glyphs) == 0 {
		return nil, ErrNoGlyphs
	}

	// Second pass: copy the glyph masks into the atlas
	img := image.NewAlpha(image.Rect(0, 0, atlasWidth, nextPow2(y+rowH)))
	for _, b := range list {
		g := glyphs[b.r]
		draw.Draw(img, image.Rect(g.X, g.Y, g.X+g.W, g.Y+g.H), b.mask, b.maskp, draw.Src)
	}

	m := face.Metrics()
	return &Atlas{
		Image:      img,
		Glyphs:     glyphs,
		LineHeight: (m.Ascent + m.Descent).Ceil(),
	}, nil
}

// Layout returns two triangles per visible glyph as (x, y, u, v) floats, with
// (x, y) the left end of the baseline in pixels and y growing downwards.
// Runes missing from the atlas advance by the width of a space.
func (a *Atlas) Layout(text string, x, y float32) []float32 {
	w, h := float32(a.Image.Rect.Dx()), float32(a.Image.Rect.Dy())
	verts := make([]float32, 0, len(text)*6*4)

	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			x += float32(a.Glyphs[' '].Advance)
			continue
		}
		if g.W > 0 && g.H > 0 {
			x0 := x + float32(g.BearingX)
			y0 := y - float32(g.BearingY)
			x1, y1 := x0+float32(g.W), y0+float32(g.H)

			u0, v0 := float32(g.X)/w, float32(g.Y)/h
			u1, v1 := float32(g.X+g.W)/w, float32(g.Y+g.H)/h

			verts = append(verts,
				x0, y1, u0, v1,
				x1, y0, u1, v0,
				x0, y0, u0, v0,
				x0, y1, u0, v1,
				x1, y1, u1, v1,
				x1, y0, u1, v0,
			)
		}
		x += float32(g.Advance)
	}
	return verts
}

// Measure returns the advance width of text in pixels.
func (a *Atlas) Measure(text string) int {
	width := 0
	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			g = a.Glyphs[' ']
		}
		width += g.Advance
	}
	return width
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
