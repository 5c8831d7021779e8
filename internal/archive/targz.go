package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// TarGzBuilder writes gzip-compressed tar artifacts. It is the fallback
// format when the zip artifact cannot be produced.
type TarGzBuilder struct{}

// Extension implements Builder.
func (TarGzBuilder) Extension() string { return ".tar.gz" }

// Create implements Builder.
func (TarGzBuilder) Create(dest string, entries []Entry) (err error) {
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

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for _, entry := range entries {
		if err = addTarEntry(tw, entry); err != nil {
			return fmt.Errorf("adding %s: %w", entry.Rel, err)
		}
	}

	if err = tw.Close(); err != nil {
		return err
	}
	if err = gz.Close(); err != nil {
		return err
	}
	return f.Close()
}

func addTarEntry(tw *tar.Writer, entry Entry) error {
	src, err := os.Open(entry.Abs)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = entry.Rel

	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err = io.Copy(tw, src)
	return err
}
