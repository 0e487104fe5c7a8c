package navkiosk

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"

	gzip "github.com/klauspost/pgzip"
)

// archiveDir packs the regular files under dir into a gzipped tarball at
// dst, storing entries under the folder's base name so the archive
// unpacks the way the folder looks on disk.
func archiveDir(dir, dst string) error {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}

	zw, err := gzip.NewWriterLevel(f, gzip.DefaultCompression)
	if err != nil {
		f.Close()
		return err
	}
	tw := tar.NewWriter(zw)

	base := filepath.Base(dir)
	if err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(filepath.Join(base, rel))

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(tw, src); err != nil {
			src.Close()
			return err
		}

		return src.Close()
	}); err != nil {
		tw.Close()
		zw.Close()
		f.Close()
		return err
	}

	if err := tw.Close(); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
