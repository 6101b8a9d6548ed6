package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBlurHash(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 64, A: 255})
		}
	}

	hash, err := ComputeBlurHash(img)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	// 4x3 components produce a short placeholder string.
	assert.Less(t, len(hash), 40)
}

func TestComputeBlurHashSmallImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))

	hash, err := ComputeBlurHash(img)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestResizeForBlurHash(t *testing.T) {
	t.Run("keeps small images", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 32, 32))
		resized := resizeForBlurHash(img)
		assert.Equal(t, 32, resized.Bounds().Dx())
	})

	t.Run("shrinks wide images preserving aspect", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 640, 320))
		resized := resizeForBlurHash(img)
		assert.Equal(t, 64, resized.Bounds().Dx())
		assert.Equal(t, 32, resized.Bounds().Dy())
	})

	t.Run("shrinks tall images preserving aspect", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 320, 640))
		resized := resizeForBlurHash(img)
		assert.Equal(t, 32, resized.Bounds().Dx())
		assert.Equal(t, 64, resized.Bounds().Dy())
	})
}
