package navkiosk

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// desktopDir returns the user's Desktop directory.
func desktopDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Desktop"), nil
}

// makeRunDir creates a fresh image_tiles_<timestamp> directory under
// parent, defaulting to the Desktop. A second run within the same second
// gets a numeric suffix rather than sharing or clobbering the folder.
func makeRunDir(parent string, now time.Time) (string, error) {
	if parent == "" {
		var err error
		if parent, err = desktopDir(); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(parent, 0755); err != nil {
		return "", err
	}

	name := folderPrefix + now.Format(timestampLayout)
	for i := 1; ; i++ {
		dir := filepath.Join(parent, name)
		if i > 1 {
			dir = fmt.Sprintf("%s_%d", dir, i)
		}

		switch err := os.Mkdir(dir, 0755); {
		case err == nil:
			return dir, nil
		case !os.IsExist(err):
			return "", err
		}
	}
}
