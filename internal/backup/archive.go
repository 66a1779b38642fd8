package backup

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writeArchive tars and gzips the given project-relative paths into w.
// Entry names stay relative to the project directory so a restore unpacks
// into the same layout the manifest references.
func writeArchive(w io.Writer, projectDir string, paths []string) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	for _, p := range paths {
		root := filepath.Join(projectDir, filepath.FromSlash(p))
		err := filepath.Walk(root, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() && !info.IsDir() {
				// Sockets and links (postgres leaves sockets behind) are
				// not restorable content.
				return nil
			}

			hdr, err := tar.FileInfoHeader(info, "")
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(projectDir, file)
			if err != nil {
				return err
			}
			hdr.Name = filepath.ToSlash(rel)

			if err := tw.WriteHeader(hdr); err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(tw, f)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to archive %s: %w", p, err)
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}
