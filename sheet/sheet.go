/*
Package sheet assembles the contact-sheet preview written alongside a
tiling run. Each grid cell gets a fixed-size swatch separated by padding
on a solid background, arranged in the same layout as the source grid.
*/
package sheet

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

const (
	// DefaultSwatch is the edge length of one preview swatch in pixels.
	DefaultSwatch = 32

	// DefaultPadding is the gap around swatches in pixels.
	DefaultPadding = 2
)

// DefaultBackground is the dark backdrop drawn behind the swatches.
var DefaultBackground = color.NRGBA{R: 30, G: 30, B: 30, A: 255}

var (
	ErrLayout  = errors.New("sheet: columns and rows must be positive")
	ErrSwatch  = errors.New("sheet: swatch size must be positive")
	ErrPadding = errors.New("sheet: padding must not be negative")
	ErrOutside = errors.New("sheet: cell outside sheet")
)

// Sheet is a contact sheet under assembly.
type Sheet struct {
	cols, rows int
	swatch     int
	padding    int
	canvas     *image.NRGBA
}

// New returns a sheet for a cols by rows grid, filled with the
// background color. The canvas is sized so that every swatch has padding
// on all sides, including the outer edge.
func New(cols, rows, swatch, padding int, background color.Color) (*Sheet, error) {
	if cols < 1 || rows < 1 {
		return nil, ErrLayout
	}
	if swatch < 1 {
		return nil, ErrSwatch
	}
	if padding < 0 {
		return nil, ErrPadding
	}

	canvas := image.NewNRGBA(image.Rect(0, 0,
		cols*swatch+(cols+1)*padding,
		rows*swatch+(rows+1)*padding))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	return &Sheet{
		cols:    cols,
		rows:    rows,
		swatch:  swatch,
		padding: padding,
		canvas:  canvas,
	}, nil
}

// Bounds returns the canvas extent.
func (s *Sheet) Bounds() image.Rectangle {
	return s.canvas.Bounds()
}

// Paste scales img into the swatch rectangle of the given cell.
func (s *Sheet) Paste(col, row int, img image.Image) error {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return ErrOutside
	}

	draw.ApproxBiLinear.Scale(s.canvas, s.cell(col, row), img, img.Bounds(), draw.Src, nil)

	return nil
}

// Image returns the assembled sheet.
func (s *Sheet) Image() *image.NRGBA {
	return s.canvas
}

func (s *Sheet) cell(col, row int) image.Rectangle {
	x := s.padding + col*(s.swatch+s.padding)
	y := s.padding + row*(s.swatch+s.padding)
	return image.Rect(x, y, x+s.swatch, y+s.swatch)
}
