package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shadeview/internal/content"
	"shadeview/internal/graphics/glbackend"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestTextureFile(t *testing.T) {
	dir := t.TempDir()

	path, ok := textureFile(dir, content.WoodTexture)
	assert.False(t, ok, "missing file falls back to the generated image")
	assert.Equal(t, filepath.Join(dir, content.WoodTexture), path)

	require.NoError(t, os.Mkdir(filepath.Join(dir, content.SmileyTexture), 0o755))
	_, ok = textureFile(dir, content.SmileyTexture)
	assert.False(t, ok, "directories are not textures")

	writePNG(t, filepath.Join(dir, content.WoodTexture), content.WoodGrain(8))
	_, ok = textureFile(dir, content.WoodTexture)
	assert.True(t, ok)
}

func TestDecodeTextureFile(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	src.Set(3, 1, color.RGBA{R: 200, G: 10, B: 30, A: 255})
	writePNG(t, filepath.Join(dir, content.SmileyTexture), src)

	path, ok := textureFile(dir, content.SmileyTexture)
	require.True(t, ok)
	img, err := glbackend.DecodeImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	r, g, b, _ := img.At(3, 1).RGBA()
	assert.Equal(t, []uint32{200, 10, 30}, []uint32{r >> 8, g >> 8, b >> 8})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644))
	_, err = glbackend.DecodeImage(filepath.Join(dir, "broken.png"))
	assert.Error(t, err)
}
