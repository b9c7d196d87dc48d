package storage

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"pinscraper/pkg/config"
	"pinscraper/pkg/errors"
	"pinscraper/pkg/models"
)

// Manager owns the save folder: it names files, resolves collisions and
// streams media to disk
type Manager struct {
	outputDir string
	chunkSize int
}

// NewManager creates a new storage manager, creating outputDir if needed
func NewManager(outputDir string, chunkSize int) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeFilesystem, err, "failed to create save folder")
	}

	if chunkSize <= 0 {
		chunkSize = config.DefaultChunkSize
	}

	return &Manager{
		outputDir: outputDir,
		chunkSize: chunkSize,
	}, nil
}

// GetOutputDir returns the save folder path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}

// DeriveFilename picks the on-disk name for the item at position index of a
// download pass. The URL's last path segment is used when it has an
// extension; otherwise a name such as "video_3.mp4" is synthesized. An
// extension foreign to the item's kind is replaced with the kind's default.
func DeriveFilename(item models.MediaItem, index int) string {
	name := sanitize(lastSegment(item.URL))
	synthesized := fmt.Sprintf("%s_%d%s", item.Kind, index+1, item.Kind.DefaultExtension())

	if name == "" || !strings.Contains(name, ".") {
		return synthesized
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		return synthesized
	}
	if item.Kind.Accepts(ext) {
		return name
	}
	return stem + item.Kind.DefaultExtension()
}

func lastSegment(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	if p == "" || strings.HasSuffix(p, "/") {
		return ""
	}
	return path.Base(p)
}

// sanitize replaces characters that common filesystems reject
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		}
		if r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, name)
}

// ResolvePath returns a path in the save folder for name that does not exist
// yet, probing name_1.ext, name_2.ext and so on.
func (m *Manager) ResolvePath(name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := filepath.Join(m.outputDir, name)
	for i := 1; ; i++ {
		_, err := os.Lstat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", &errors.Error{
				Type:    errors.ErrorTypeFilesystem,
				Message: "failed to check existing file",
				URL:     candidate,
				Err:     err,
			}
		}
		candidate = filepath.Join(m.outputDir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}
}

// Save streams r into the save folder under name (or its collision-free
// variant) and returns the final path and number of bytes written. Data is
// copied in chunkSize pieces into a temporary file which is renamed into
// place once complete.
func (m *Manager) Save(r io.Reader, name string) (string, int64, error) {
	out, err := os.CreateTemp(m.outputDir, ".pinscraper-*.part")
	if err != nil {
		return "", 0, errors.Wrap(errors.ErrorTypeFilesystem, err, "failed to create temporary file")
	}
	tempFile := out.Name()

	written, err := m.copyChunks(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return "", written, err
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return "", written, errors.Wrap(errors.ErrorTypeFilesystem, closeErr, "failed to close file")
	}

	target, err := m.ResolvePath(name)
	if err != nil {
		os.Remove(tempFile)
		return "", written, err
	}

	if err := os.Rename(tempFile, target); err != nil {
		os.Remove(tempFile)
		return "", written, errors.Wrap(errors.ErrorTypeFilesystem, err, "failed to rename temporary file")
	}

	return target, written, nil
}

// copyChunks keeps at most one chunk of the payload in memory
func (m *Manager) copyChunks(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, m.chunkSize)
	var written int64

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			w, err := dst.Write(buf[:n])
			written += int64(w)
			if err != nil {
				return written, errors.Wrap(errors.ErrorTypeFilesystem, err, "failed to write media data")
			}
			if w != n {
				return written, errors.Wrap(errors.ErrorTypeFilesystem, io.ErrShortWrite, "failed to write media data")
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, errors.Wrap(errors.ErrorTypeNetwork, readErr, "failed to read media data")
		}
	}
}
