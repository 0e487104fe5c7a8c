package navkiosk

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"github.com/SICTCCS/NavKiosk/grid"
	"github.com/SICTCCS/NavKiosk/sheet"
	"github.com/SICTCCS/NavKiosk/swatch"
	"github.com/SICTCCS/NavKiosk/tile"
	"github.com/disintegration/imaging"
)

const (
	folderPrefix    = "image_tiles_"
	timestampLayout = "20060102_150405"
	previewName     = "preview.png"
)

var (
	// ErrNoSource is returned when no source image path was given.
	ErrNoSource = errors.New("navkiosk: source image path is required")

	// ErrTileSize is returned for non-positive tile sizes.
	ErrTileSize = errors.New("navkiosk: tile size must be positive")
)

// Config captures one tiling invocation.
type Config struct {
	// Source is the path of the image to slice.
	Source string

	// Grid dimensions and the edge length of each output tile.
	Cols, Rows, TileSize int

	// Mode selects the representative color policy. Empty means average.
	Mode swatch.Mode

	// OutDir is the directory the run folder is created in. Empty means
	// the user's Desktop.
	OutDir string

	// Preview layout. Zero values fall back to the sheet defaults.
	Swatch     int
	Padding    int
	Background color.NRGBA

	// Archive also packs the run folder into <folder>.tar.gz.
	Archive bool
}

// Run describes one finished tiling invocation.
type Run struct {
	ID       int64
	Created  time.Time
	Source   string
	SHA1     string
	Cols     int
	Rows     int
	TileSize int
	Mode     string
	Tiles    int
	Folder   string
}

// Generate slices the configured source image into solid-color tiles,
// writing them and a preview contact sheet into a fresh timestamped
// folder. Nothing is written unless the configuration validates and the
// source image decodes.
func (g *Generator) Generate(cfg Config) (*Run, error) {
	if cfg.Source == "" {
		return nil, ErrNoSource
	}
	if cfg.TileSize < 1 {
		return nil, ErrTileSize
	}

	gr, err := grid.New(cfg.Cols, cfg.Rows)
	if err != nil {
		return nil, err
	}

	mode := cfg.Mode
	if mode == "" {
		mode = swatch.Average
	}
	if _, err := swatch.ParseMode(string(mode)); err != nil {
		return nil, err
	}

	swatchSize := cfg.Swatch
	if swatchSize == 0 {
		swatchSize = sheet.DefaultSwatch
	}
	padding := cfg.Padding
	if padding == 0 {
		padding = sheet.DefaultPadding
	}
	background := cfg.Background
	if background == (color.NRGBA{}) {
		background = sheet.DefaultBackground
	}

	src, err := imaging.Open(cfg.Source, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Source, err)
	}

	sh, err := sheet.New(cfg.Cols, cfg.Rows, swatchSize, padding, background)
	if err != nil {
		return nil, err
	}

	dir, err := makeRunDir(cfg.OutDir, time.Now())
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	g.logger.Infof("%s: %dx%d pixels into a %dx%d grid, %s mode",
		cfg.Source, bounds.Dx(), bounds.Dy(), cfg.Cols, cfg.Rows, mode)

	written := 0
	for _, cell := range gr.Cells(bounds) {
		if cell.Rect.Empty() {
			g.logger.Warnf("grid finer than image, skipping row %d, col %d", cell.Row, cell.Col)
			continue
		}

		c, err := mode.Pick(src, cell.Rect)
		if err != nil {
			return nil, err
		}

		t := tile.Tile{Col: cell.Col, Row: cell.Row, Color: c, Size: cfg.TileSize}

		img, err := t.Image()
		if err != nil {
			return nil, err
		}

		if err := imaging.Save(img, filepath.Join(dir, t.Filename())); err != nil {
			return nil, fmt.Errorf("write %s: %w", t.Filename(), err)
		}
		if err := sh.Paste(cell.Col, cell.Row, img); err != nil {
			return nil, err
		}

		g.logger.Debugf("%s %s", t.Filename(), swatch.Hex(c))
		written++
	}

	if err := imaging.Save(sh.Image(), filepath.Join(dir, previewName)); err != nil {
		return nil, fmt.Errorf("write %s: %w", previewName, err)
	}

	run := &Run{
		Created:  time.Now(),
		Source:   cfg.Source,
		Cols:     cfg.Cols,
		Rows:     cfg.Rows,
		TileSize: cfg.TileSize,
		Mode:     string(mode),
		Tiles:    written,
		Folder:   dir,
	}

	if run.SHA1, err = fileSHA1(cfg.Source); err != nil {
		g.logger.Warnf("can't hash %s: %v", cfg.Source, err)
	}

	g.record(run)

	if cfg.Archive {
		if err := archiveDir(dir, dir+".tar.gz"); err != nil {
			return nil, fmt.Errorf("archive %s: %w", dir, err)
		}
	}

	g.logger.Infof("wrote %d tiles and %s to %s", written, previewName, dir)

	return run, nil
}

// record files the run in the catalog. Catalog trouble is advisory and
// never fails a run that already produced its files.
func (g *Generator) record(run *Run) {
	if g.db == nil || run.SHA1 == "" {
		return
	}

	if prev, err := g.db.FindBySHA1(run.SHA1); err != nil {
		g.logger.Warnf("can't query run catalog: %v", err)
	} else if prev != nil {
		g.logger.Infof("source previously tiled into %s", prev.Folder)
	}

	if err := g.db.Record(run); err != nil {
		g.logger.Warnf("can't record run: %v", err)
	}
}
