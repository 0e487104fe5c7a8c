package swatch

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(r image.Rectangle, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestParseMode(t *testing.T) {
	tables := []struct {
		in   string
		mode Mode
		ok   bool
	}{
		{"average", Average, true},
		{"center", Center, true},
		{"dominant", Dominant, true},
		{"", "", false},
		{"median", "", false},
		{"AVERAGE", "", false},
	}

	for _, table := range tables {
		m, err := ParseMode(table.in)
		if !table.ok {
			assert.Error(t, err, table.in)
			continue
		}
		require.NoError(t, err, table.in)
		assert.Equal(t, table.mode, m)
	}
}

func TestPickUniformRegion(t *testing.T) {
	c := color.NRGBA{R: 12, G: 200, B: 99, A: 255}
	img := solid(image.Rect(0, 0, 40, 40), c)

	// every policy agrees on a uniform region
	for _, mode := range []Mode{Average, Center, Dominant} {
		got, err := mode.Pick(img, img.Bounds())
		require.NoError(t, err, mode)
		assert.Equal(t, c, got, mode)
	}
}

func TestPickAverage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 255})

	got, err := Average.Pick(img, img.Bounds())
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 127, G: 0, B: 127, A: 255}, got)
}

func TestPickAverageGenericImage(t *testing.T) {
	// non-NRGBA sources take the slow path and must agree
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		img.Set(0, y, color.NRGBA{R: 100, G: 40, B: 20, A: 255})
		img.Set(1, y, color.NRGBA{R: 200, G: 60, B: 40, A: 255})
	}

	got, err := Average.Pick(img, img.Bounds())
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 150, G: 50, B: 30, A: 255}, got)
}

func TestPickCenter(t *testing.T) {
	img := solid(image.Rect(0, 0, 5, 5), color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	img.SetNRGBA(2, 2, color.NRGBA{R: 250, G: 1, B: 2, A: 255})

	got, err := Center.Pick(img, img.Bounds())
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 250, G: 1, B: 2, A: 255}, got)
}

func TestPickDominant(t *testing.T) {
	// three quarters red, one quarter blue
	img := solid(image.Rect(0, 0, 8, 8), color.NRGBA{R: 255, A: 255})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
		}
	}

	got, err := Dominant.Pick(img, img.Bounds())
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, got)
}

func TestPickDominantLargeRegion(t *testing.T) {
	// large enough to hit the thumbnail path
	img := solid(image.Rect(0, 0, 300, 200), color.NRGBA{G: 180, A: 255})

	got, err := Dominant.Pick(img, img.Bounds())
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{G: 180, A: 255}, got)
}

func TestPickSubRegion(t *testing.T) {
	img := solid(image.Rect(0, 0, 10, 10), color.NRGBA{R: 255, A: 255})
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			img.SetNRGBA(x, y, color.NRGBA{G: 255, A: 255})
		}
	}

	got, err := Average.Pick(img, image.Rect(5, 0, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, got)
}

func TestPickEmptyRegion(t *testing.T) {
	img := solid(image.Rect(0, 0, 4, 4), color.NRGBA{A: 255})

	_, err := Average.Pick(img, image.Rect(2, 2, 2, 4))
	assert.ErrorIs(t, err, ErrEmptyRegion)

	// outside the image entirely
	_, err = Average.Pick(img, image.Rect(10, 10, 20, 20))
	assert.ErrorIs(t, err, ErrEmptyRegion)
}

func TestPickUnknownMode(t *testing.T) {
	img := solid(image.Rect(0, 0, 4, 4), color.NRGBA{A: 255})

	_, err := Mode("mean").Pick(img, img.Bounds())
	assert.Error(t, err)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#1e1e1e", Hex(color.NRGBA{R: 30, G: 30, B: 30, A: 255}))
	assert.Equal(t, "#ff0080", Hex(color.NRGBA{R: 255, G: 0, B: 128, A: 255}))
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#1e1e1e")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 30, G: 30, B: 30, A: 255}, c)

	_, err = ParseHex("not-a-color")
	assert.Error(t, err)
}
