/*
Package navkiosk implements the content pipeline behind the navigation
kiosk: slicing a source image into a grid of solid-color tiles with a
contact-sheet preview, generating random block images for screen tests,
and keeping a small catalog of past runs.
*/
package navkiosk

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Generator produces tile runs and test images. It is safe to reuse
// across runs.
type Generator struct {
	db     *RunDB
	logger *logrus.Logger
}

// New returns a Generator backed by the given run catalog, which may be
// nil to disable cataloging. A nil logger discards all output.
func New(db *RunDB, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &Generator{
		db:     db,
		logger: logger,
	}
}
