package main

import (
	"errors"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"text/tabwriter"

	navkiosk "github.com/SICTCCS/NavKiosk"
	"github.com/SICTCCS/NavKiosk/sheet"
	"github.com/SICTCCS/NavKiosk/swatch"
	colorable "github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/webp"
)

const defaultDB = "runs.db"

var log = logrus.New()

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// loadConfig pulls defaults from an optional navkiosk.{yaml,json,toml}
// in the working directory or the user config directory, or an explicit
// file named by NAVKIOSK_CONFIG. A missing file is not an error.
func loadConfig() {
	viper.SetDefault("tiles.cols", 8)
	viper.SetDefault("tiles.rows", 5)
	viper.SetDefault("tiles.tile_size", 256)
	viper.SetDefault("tiles.mode", string(swatch.Average))
	viper.SetDefault("tiles.swatch", sheet.DefaultSwatch)
	viper.SetDefault("tiles.padding", sheet.DefaultPadding)
	viper.SetDefault("tiles.background", swatch.Hex(sheet.DefaultBackground))
	viper.SetDefault("random.width", 128)
	viper.SetDefault("random.height", 128)
	viper.SetDefault("random.block_size", 10)
	viper.SetDefault("random.count", 10)
	viper.SetDefault("random.prefix", "random_image_")

	if file := os.Getenv("NAVKIOSK_CONFIG"); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("navkiosk")
		viper.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "navkiosk"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			log.Warnf("can't load config file: %v", err)
		}
	}
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return defaultDB
	}
	return filepath.Join(dir, "navkiosk", defaultDB)
}

// openRunDB opens the run catalog, degrading to no catalog rather than
// failing a run over bookkeeping.
func openRunDB(file string) *navkiosk.RunDB {
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		log.Warnf("run catalog disabled: %v", err)
		return nil
	}

	db, err := navkiosk.OpenRunDB(file)
	if err != nil {
		log.Warnf("run catalog disabled: %v", err)
		return nil
	}

	return db
}

func main() {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	log.SetOutput(colorable.NewColorableStdout())

	loadConfig()

	app := cli.NewApp()

	app.Name = "navkiosk"
	app.Usage = "Navigation kiosk content utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"NAVKIOSK_DB"},
			Value:   defaultDBPath(),
			Usage:   "path to the run catalog",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Before = func(c *cli.Context) error {
		if c.Bool("verbose") {
			log.SetLevel(logrus.DebugLevel)
		}
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:      "tiles",
			Usage:     "Slice an image into a grid of solid-color tiles",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "source",
					Usage:    "path to the source image",
					Required: true,
				},
				&cli.IntFlag{
					Name:  "cols",
					Value: viper.GetInt("tiles.cols"),
					Usage: "grid columns",
				},
				&cli.IntFlag{
					Name:  "rows",
					Value: viper.GetInt("tiles.rows"),
					Usage: "grid rows",
				},
				&cli.IntFlag{
					Name:  "tile-size",
					Value: viper.GetInt("tiles.tile_size"),
					Usage: "tile edge length in pixels",
				},
				&cli.StringFlag{
					Name:  "mode",
					Value: viper.GetString("tiles.mode"),
					Usage: "color policy: average, center or dominant",
				},
				&cli.StringFlag{
					Name:  "out",
					Value: viper.GetString("tiles.out_dir"),
					Usage: "parent directory for the run folder (default: Desktop)",
				},
				&cli.IntFlag{
					Name:  "preview-swatch",
					Value: viper.GetInt("tiles.swatch"),
					Usage: "preview swatch size in pixels",
				},
				&cli.IntFlag{
					Name:  "preview-padding",
					Value: viper.GetInt("tiles.padding"),
					Usage: "preview gap between swatches in pixels",
				},
				&cli.StringFlag{
					Name:  "background",
					Value: viper.GetString("tiles.background"),
					Usage: "preview background color",
				},
				&cli.BoolFlag{
					Name:  "archive",
					Usage: "also pack the run folder into a tarball",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() > 0 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				mode, err := swatch.ParseMode(c.String("mode"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				background, err := swatch.ParseHex(c.String("background"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				db := openRunDB(c.String("db"))
				if db != nil {
					defer db.Close()
				}

				run, err := navkiosk.New(db, log).Generate(navkiosk.Config{
					Source:     c.String("source"),
					Cols:       c.Int("cols"),
					Rows:       c.Int("rows"),
					TileSize:   c.Int("tile-size"),
					Mode:       mode,
					OutDir:     c.String("out"),
					Swatch:     c.Int("preview-swatch"),
					Padding:    c.Int("preview-padding"),
					Background: background,
					Archive:    c.Bool("archive"),
				})
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Println(run.Folder)

				return nil
			},
		},
		{
			Name:      "random",
			Usage:     "Generate random block images for screen tests",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "width",
					Value: viper.GetInt("random.width"),
					Usage: "blocks across",
				},
				&cli.IntFlag{
					Name:  "height",
					Value: viper.GetInt("random.height"),
					Usage: "blocks down",
				},
				&cli.IntFlag{
					Name:  "block-size",
					Value: viper.GetInt("random.block_size"),
					Usage: "rendered block size in pixels",
				},
				&cli.IntFlag{
					Name:  "count",
					Value: viper.GetInt("random.count"),
					Usage: "number of images",
				},
				&cli.StringFlag{
					Name:  "out",
					Value: viper.GetString("random.out_dir"),
					Usage: "output directory",
				},
				&cli.StringFlag{
					Name:  "out-prefix",
					Value: viper.GetString("random.prefix"),
					Usage: "output filename prefix",
				},
				&cli.Int64Flag{
					Name:  "seed",
					Usage: "seed for reproducible batches",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() > 0 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				names, err := navkiosk.New(nil, log).GenerateRandom(navkiosk.RandomConfig{
					Width:     c.Int("width"),
					Height:    c.Int("height"),
					BlockSize: c.Int("block-size"),
					Count:     c.Int("count"),
					OutDir:    c.String("out"),
					Prefix:    c.String("out-prefix"),
					Seed:      c.Int64("seed"),
				})
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, name := range names {
					fmt.Println(name)
				}

				return nil
			},
		},
		{
			Name:      "runs",
			Usage:     "List catalogued tiling runs",
			ArgsUsage: " ",
			Action: func(c *cli.Context) error {
				if c.NArg() > 0 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := navkiosk.OpenRunDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				list, err := db.List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if len(list) == 0 {
					fmt.Println("no runs recorded")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
				fmt.Fprintln(w, "CREATED\tSOURCE\tGRID\tMODE\tTILES\tFOLDER")
				for _, r := range list {
					fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%d\t%s\n",
						r.Created.Format("2006-01-02 15:04:05"), r.Source, r.Cols, r.Rows, r.Mode, r.Tiles, r.Folder)
				}

				return w.Flush()
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
