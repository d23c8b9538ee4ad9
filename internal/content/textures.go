package content

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

var (
	smileyFace    = color.RGBA{255, 220, 0, 255}
	smileyFeature = color.RGBA{40, 20, 0, 255}
	smileyBack    = color.RGBA{255, 255, 255, 255}
	woodLight     = color.RGBA{222, 184, 135, 255}
	woodDark      = color.RGBA{139, 90, 43, 255}
)

// Smiley draws a size x size yellow face on white, for projective texturing.
func Smiley(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float32(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// normalised coordinates in [-1, 1] with +v up
			u := (float32(x)+0.5)/s*2 - 1
			v := 1 - (float32(y)+0.5)/s*2
			img.SetRGBA(x, y, smileyPixel(u, v))
		}
	}
	return img
}

func smileyPixel(u, v float32) color.RGBA {
	r := math32.Hypot(u, v)
	switch {
	case r > 0.9:
		return smileyBack
	case r > 0.85:
		return smileyFeature
	case math32.Hypot(u+0.3, v-0.3) < 0.12, math32.Hypot(u-0.3, v-0.3) < 0.12:
		return smileyFeature
	}
	// mouth: lower arc between radii 0.45 and 0.55
	if v < -0.1 && r > 0.45 && r < 0.55 {
		return smileyFeature
	}
	return smileyFace
}

// WoodGrain draws concentric growth rings across a size x size image.
func WoodGrain(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float32(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := float32(x) / s
			v := float32(y) / s
			// rings centred off the texture with a gentle wobble along v
			d := math32.Hypot(u+0.3, v*0.35-0.2) + 0.015*math32.Sin(v*40)
			ring := 0.5 + 0.5*math32.Sin(d*80)
			img.SetRGBA(x, y, lerpColor(woodLight, woodDark, ring*ring))
		}
	}
	return img
}

func lerpColor(a, b color.RGBA, t float32) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}
