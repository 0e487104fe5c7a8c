package navkiosk

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

const randomWorkers = 4

var (
	// ErrBlockDims is returned for non-positive block image dimensions.
	ErrBlockDims = errors.New("navkiosk: width, height and block size must be positive")

	// ErrBlockCount is returned for a non-positive image count.
	ErrBlockCount = errors.New("navkiosk: count must be positive")
)

// RandomConfig describes a batch of random block images.
type RandomConfig struct {
	// Width and Height are the block grid dimensions; BlockSize is the
	// rendered size of one block in pixels.
	Width, Height, BlockSize int

	// Count is how many images to write.
	Count int

	// OutDir is the output directory, created if needed. Empty means
	// the current directory.
	OutDir string

	// Prefix is the output filename prefix. Empty means random_image_.
	Prefix string

	// Seed makes the batch reproducible. Zero seeds from the clock.
	Seed int64
}

// RandomImage renders a width by height grid of blockSize squares, each
// filled with a color drawn from rnd.
func RandomImage(width, height, blockSize int, rnd *rand.Rand) (*image.NRGBA, error) {
	if width < 1 || height < 1 || blockSize < 1 {
		return nil, ErrBlockDims
	}

	img := image.NewNRGBA(image.Rect(0, 0, width*blockSize, height*blockSize))
	for by := 0; by < height; by++ {
		for bx := 0; bx < width; bx++ {
			c := color.NRGBA{
				R: uint8(rnd.Intn(256)),
				G: uint8(rnd.Intn(256)),
				B: uint8(rnd.Intn(256)),
				A: 255,
			}
			for y := by * blockSize; y < (by+1)*blockSize; y++ {
				for x := bx * blockSize; x < (bx+1)*blockSize; x++ {
					img.SetNRGBA(x, y, c)
				}
			}
		}
	}

	return img, nil
}

func (g *Generator) queueImages(ctx context.Context, count int) (<-chan int, <-chan error, error) {
	out := make(chan int)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i := 1; i <= count; i++ {
			select {
			case out <- i:
			case <-ctx.Done():
				errc <- errors.New("generation cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

func (g *Generator) imageWorker(ctx context.Context, cfg RandomConfig, seed int64, names []string, in <-chan int) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for i := range in {
			// each image draws from its own source so a batch is
			// reproducible regardless of worker scheduling
			img, err := RandomImage(cfg.Width, cfg.Height, cfg.BlockSize, rand.New(rand.NewSource(seed+int64(i))))
			if err != nil {
				errc <- err
				return
			}

			name := fmt.Sprintf("%s%d.png", cfg.Prefix, i)
			if err := imaging.Save(img, filepath.Join(cfg.OutDir, name)); err != nil {
				errc <- err
				return
			}

			names[i-1] = name
			g.logger.Debugf("wrote %s", name)
		}
	}()
	return errc, nil
}

// GenerateRandom writes cfg.Count random block images named
// <prefix><n>.png, numbered from one, and returns the filenames in
// order. Images are rendered and written by a small worker pool.
func (g *Generator) GenerateRandom(cfg RandomConfig) ([]string, error) {
	if cfg.Count < 1 {
		return nil, ErrBlockCount
	}
	if cfg.Width < 1 || cfg.Height < 1 || cfg.BlockSize < 1 {
		return nil, ErrBlockDims
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "random_image_"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	queue, errc, err := g.queueImages(ctx, cfg.Count)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	names := make([]string, cfg.Count)

	workers := randomWorkers
	if cfg.Count < workers {
		workers = cfg.Count
	}
	for i := 0; i < workers; i++ {
		errc, err := g.imageWorker(ctx, cfg, seed, names, queue)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	g.logger.Infof("wrote %d images to %s", cfg.Count, cfg.OutDir)

	return names, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
