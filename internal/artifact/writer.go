package artifact

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// WriteDir writes every artifact below dir, creating directories as needed.
func WriteDir(b *Bundle, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, a := range b.Artifacts {
		rel, err := cleanPath(a.Path)
		if err != nil {
			return err
		}
		filename := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", a.Path, err)
		}
		if err := writeFile(filename, a.Content); err != nil {
			return fmt.Errorf("failed to write %s: %w", a.Path, err)
		}
	}

	return nil
}

func writeFile(filename, content string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.WriteString(file, content)
	return err
}

// WriteZip writes every artifact into a zip archive on w.
func WriteZip(b *Bundle, w io.Writer) error {
	zw := zip.NewWriter(w)
	modified := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, a := range b.Artifacts {
		rel, err := cleanPath(a.Path)
		if err != nil {
			_ = zw.Close()
			return err
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: rel, Method: zip.Deflate, Modified: modified})
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("failed to add %s to archive: %w", a.Path, err)
		}
		if _, err := io.WriteString(fw, a.Content); err != nil {
			_ = zw.Close()
			return fmt.Errorf("failed to write %s to archive: %w", a.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

// WriteStream writes the artifacts one after another, each preceded by a
// header line naming its path. A single artifact is written bare.
func WriteStream(b *Bundle, w io.Writer) error {
	if len(b.Artifacts) == 1 {
		_, err := io.WriteString(w, b.Artifacts[0].Content)
		return err
	}
	for i, a := range b.Artifacts {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "==> %s <==\n", a.Path); err != nil {
			return err
		}
		if _, err := io.WriteString(w, a.Content); err != nil {
			return err
		}
		if !strings.HasSuffix(a.Content, "\n") {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// cleanPath rejects absolute paths and paths escaping the output root.
func cleanPath(p string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if clean == "." || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid artifact path %q", p)
	}
	return clean, nil
}
