package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// ZipBuilder writes deflate-compressed zip artifacts. This is the primary
// submission format.
type ZipBuilder struct{}

// Extension implements Builder.
func (ZipBuilder) Extension() string { return ".zip" }

// Create implements Builder.
func (ZipBuilder) Create(dest string, entries []Entry) (err error) {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(dest)
		}
	}()

	zw := zip.NewWriter(f)
	for _, entry := range entries {
		if err = addZipEntry(zw, entry); err != nil {
			return fmt.Errorf("adding %s: %w", entry.Rel, err)
		}
	}
	if err = zw.Close(); err != nil {
		return err
	}
	return f.Close()
}

func addZipEntry(zw *zip.Writer, entry Entry) error {
	src, err := os.Open(entry.Abs)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = entry.Rel
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
