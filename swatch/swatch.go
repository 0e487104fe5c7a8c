/*
Package swatch reduces a region of an image to a single representative
color.

Three policies are available. Average is the arithmetic mean of the
region's channels and is what most people expect a tile to look like.
Center samples the pixel in the middle of the region. Dominant quantizes
the region with a median cut and keeps the palette entry covering the
most pixels, which preserves saturated accents that averaging washes out.
*/
package swatch

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// Mode selects how the representative color of a region is derived.
type Mode string

const (
	Average  Mode = "average"
	Center   Mode = "center"
	Dominant Mode = "dominant"
)

const (
	// dominantColors is the palette size handed to the median cut.
	dominantColors = 16

	// dominantMaxDim caps the region size quantized by Dominant. Larger
	// regions are thumbnailed down first.
	dominantMaxDim = 64
)

// ErrEmptyRegion is returned when the region to sample contains no pixels.
var ErrEmptyRegion = errors.New("swatch: empty region")

// ParseMode converts a mode name as accepted on the command line.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Average, Center, Dominant:
		return m, nil
	}
	return "", fmt.Errorf("swatch: unknown mode %q", s)
}

// Pick returns the representative color of the region r of img. The
// region is clipped to the image bounds first.
func (m Mode) Pick(img image.Image, r image.Rectangle) (color.NRGBA, error) {
	r = r.Canon().Intersect(img.Bounds())
	if r.Empty() {
		return color.NRGBA{}, ErrEmptyRegion
	}

	switch m {
	case Average:
		return average(img, r), nil
	case Center:
		return center(img, r), nil
	case Dominant:
		return dominant(img, r), nil
	}

	return color.NRGBA{}, fmt.Errorf("swatch: unknown mode %q", string(m))
}

// Hex formats c in web notation, e.g. "#1e1e1e".
func Hex(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// ParseHex parses web notation into an opaque color.
func ParseHex(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("swatch: %w", err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func average(img image.Image, r image.Rectangle) color.NRGBA {
	var rs, gs, bs, as uint64

	switch src := img.(type) {
	case *image.NRGBA:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			i := src.PixOffset(r.Min.X, y)
			for x := r.Min.X; x < r.Max.X; x++ {
				rs += uint64(src.Pix[i])
				gs += uint64(src.Pix[i+1])
				bs += uint64(src.Pix[i+2])
				as += uint64(src.Pix[i+3])
				i += 4
			}
		}
	default:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				rs += uint64(c.R)
				gs += uint64(c.G)
				bs += uint64(c.B)
				as += uint64(c.A)
			}
		}
	}

	n := uint64(r.Dx()) * uint64(r.Dy())

	return color.NRGBA{
		R: uint8(rs / n),
		G: uint8(gs / n),
		B: uint8(bs / n),
		A: uint8(as / n),
	}
}

func center(img image.Image, r image.Rectangle) color.NRGBA {
	c := img.At(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func dominant(img image.Image, r image.Rectangle) color.NRGBA {
	var region image.Image = extract(img, r)
	if b := region.Bounds(); b.Dx() > dominantMaxDim || b.Dy() > dominantMaxDim {
		region = resize.Thumbnail(dominantMaxDim, dominantMaxDim, region, resize.Bilinear)
	}

	q := quantize.MedianCutQuantizer{}
	palette := q.Quantize(make(color.Palette, 0, dominantColors), region)

	paletted := image.NewPaletted(region.Bounds(), palette)
	draw.Draw(paletted, paletted.Bounds(), region, region.Bounds().Min, draw.Src)

	counts := make([]int, len(palette))
	for _, i := range paletted.Pix {
		counts[i]++
	}

	best := 0
	for i, n := range counts {
		if n > counts[best] {
			best = i
		}
	}

	return color.NRGBAModel.Convert(palette[best]).(color.NRGBA)
}

// extract copies the region into a fresh image anchored at the origin.
func extract(img image.Image, r image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}
