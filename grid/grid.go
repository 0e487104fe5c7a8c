/*
Package grid partitions an image into a lattice of rectangular cells.

Cell boundaries are computed by scaling, so an image that does not divide
evenly spreads its remainder pixels across the grid instead of piling
them onto the last column or row. A grid finer than the image produces
empty cells, which callers are expected to skip.
*/
package grid

import (
	"errors"
	"image"
	"math"
)

var (
	// ErrColumns is returned when a grid is requested with fewer than one column.
	ErrColumns = errors.New("grid: columns must be positive")

	// ErrRows is returned when a grid is requested with fewer than one row.
	ErrRows = errors.New("grid: rows must be positive")
)

// Grid divides an area into Cols by Rows cells.
type Grid struct {
	Cols, Rows int
}

// Cell is a single grid cell: its grid coordinates and the pixel
// rectangle it covers. Rect is empty when the grid is finer than the
// area being divided.
type Cell struct {
	Col, Row int
	Rect     image.Rectangle
}

// New returns a Grid, rejecting non-positive dimensions.
func New(cols, rows int) (Grid, error) {
	if cols < 1 {
		return Grid{}, ErrColumns
	}
	if rows < 1 {
		return Grid{}, ErrRows
	}
	return Grid{Cols: cols, Rows: rows}, nil
}

// Len returns the number of cells in the grid.
func (g Grid) Len() int {
	return g.Cols * g.Rows
}

// Cells returns the cells covering bounds in row-major order. Every
// pixel of bounds belongs to exactly one cell.
func (g Grid) Cells(bounds image.Rectangle) []Cell {
	b := bounds.Canon()

	cells := make([]Cell, 0, g.Len())
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cells = append(cells, Cell{
				Col: col,
				Row: row,
				Rect: image.Rect(
					b.Min.X+edge(col, g.Cols, b.Dx()),
					b.Min.Y+edge(row, g.Rows, b.Dy()),
					b.Min.X+edge(col+1, g.Cols, b.Dx()),
					b.Min.Y+edge(row+1, g.Rows, b.Dy()),
				),
			})
		}
	}

	return cells
}

// edge places boundary i of n along an axis of the given size. i == n
// always lands on size so the cells cover the axis exactly.
func edge(i, n, size int) int {
	return int(math.Round(float64(i) * float64(size) / float64(n)))
}
