/*
Package tile renders the solid-color squares written out by a tiling run.

A tile records the grid cell it stands in for, the single color chosen
for that cell and the pixel size of the square it renders to. Tiles know
their own output filename so a run lays out as tile_<row>_<col>.png.
*/
package tile

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// ErrSize is returned when rendering a tile with a non-positive size.
var ErrSize = errors.New("tile: size must be positive")

// Tile is one output unit: a grid cell reduced to a single color.
type Tile struct {
	Col, Row int
	Color    color.NRGBA
	Size     int
}

// Filename returns the output name encoding the tile's grid position,
// row first.
func (t Tile) Filename() string {
	return fmt.Sprintf("tile_%d_%d.png", t.Row, t.Col)
}

// Image renders the tile as a uniformly filled square.
func (t Tile) Image() (*image.NRGBA, error) {
	if t.Size < 1 {
		return nil, ErrSize
	}

	m := image.NewNRGBA(image.Rect(0, 0, t.Size, t.Size))
	draw.Draw(m, m.Bounds(), image.NewUniform(t.Color), image.Point{}, draw.Src)

	return m, nil
}

// Encode renders the tile and writes it to w as PNG.
func (t Tile) Encode(w io.Writer) error {
	m, err := t.Image()
	if err != nil {
		return err
	}
	return png.Encode(w, m)
}
