package navkiosk

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
)

// fileSHA1 hashes the file contents, identifying a source image across
// runs regardless of where it lives.
func fileSHA1(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%X", h.Sum(nil)), nil
}
