package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinscraper/pkg/errors"
	"pinscraper/pkg/models"
)

func TestNewManagerCreatesFolder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "pinterest_downloads")

	manager, err := NewManager(dir, 0)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, manager.GetOutputDir())
	assert.Equal(t, 8192, manager.chunkSize)
}

func TestNewManagerFailsOnFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := NewManager(file, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrorTypeFilesystem))
}

func TestDeriveFilename(t *testing.T) {
	tests := []struct {
		name     string
		item     models.MediaItem
		index    int
		expected string
	}{
		{"image keeps name", models.MediaItem{Kind: models.Image, URL: "https://i.pinimg.com/736x/ab/a.png"}, 0, "a.png"},
		{"video keeps name", models.MediaItem{Kind: models.Video, URL: "https://v.pinimg.com/c.mp4"}, 2, "c.mp4"},
		{"uppercase extension accepted", models.MediaItem{Kind: models.Image, URL: "https://i.pinimg.com/A.JPG"}, 0, "A.JPG"},
		{"no extension synthesizes image", models.MediaItem{Kind: models.Image, URL: "https://i.pinimg.com/originals/full"}, 0, "image_1.jpg"},
		{"no extension synthesizes video", models.MediaItem{Kind: models.Video, URL: "https://v.pinimg.com/stream"}, 4, "video_5.mp4"},
		{"empty path synthesizes", models.MediaItem{Kind: models.Image, URL: "https://i.pinimg.com"}, 1, "image_2.jpg"},
		{"trailing slash synthesizes", models.MediaItem{Kind: models.Video, URL: "https://v.pinimg.com/clips/"}, 0, "video_1.mp4"},
		{"video with playlist extension", models.MediaItem{Kind: models.Video, URL: "https://v.pinimg.com/hls/master.m3u8"}, 0, "master.mp4"},
		{"image kind with video extension", models.MediaItem{Kind: models.Image, URL: "https://i.pinimg.com/thumb.mp4"}, 0, "thumb.jpg"},
		{"multi dot replaces last extension", models.MediaItem{Kind: models.Image, URL: "https://i.pinimg.com/photo.jpg.svg"}, 0, "photo.jpg.jpg"},
		{"dot-only stem synthesizes", models.MediaItem{Kind: models.Image, URL: "https://i.pinimg.com/.svg"}, 6, "image_7.jpg"},
		{"dot-only accepted ext", models.MediaItem{Kind: models.Image, URL: "https://i.pinimg.com/.jpg"}, 2, "image_3.jpg"},
		{"dot-only accepted video ext", models.MediaItem{Kind: models.Video, URL: "https://v.pinimg.com/.webm"}, 0, "video_1.mp4"},
		{"escaped characters sanitized", models.MediaItem{Kind: models.Image, URL: "https://i.pinimg.com/a%3Ab%7Cc.png"}, 0, "a_b_c.png"},
		{"fragment ignored", models.MediaItem{Kind: models.Image, URL: "https://i.pinimg.com/d.webp#top"}, 0, "d.webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveFilename(tt.item, tt.index))
		})
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir, 0)
	require.NoError(t, err)

	path, err := manager.ResolvePath("photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photo.jpg"), path)

	for _, n := range []int{1, 3, 10} {
		t.Run(fmt.Sprintf("%d existing", n), func(t *testing.T) {
			sub := t.TempDir()
			m, err := NewManager(sub, 0)
			require.NoError(t, err)

			require.NoError(t, os.WriteFile(filepath.Join(sub, "photo.jpg"), nil, 0644))
			for i := 1; i < n; i++ {
				require.NoError(t, os.WriteFile(filepath.Join(sub, fmt.Sprintf("photo_%d.jpg", i)), nil, 0644))
			}

			path, err := m.ResolvePath("photo.jpg")
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(sub, fmt.Sprintf("photo_%d.jpg", n)), path)
		})
	}
}

func TestResolvePathWithoutExtension(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir, 0)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), nil, 0644))

	path, err := manager.ResolvePath("README")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "README_1"), path)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir, 0)
	require.NoError(t, err)

	data := bytes.Repeat([]byte("pin"), 10000)
	path, size, err := manager.Save(bytes.NewReader(data), "a.png")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "a.png"), path)
	assert.Equal(t, int64(len(data)), size)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, content)

	// Second save of the same name must not overwrite the first.
	path, _, err = manager.Save(strings.NewReader("second"), "a.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a_1.png"), path)

	content, err = os.ReadFile(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, data, content)

	assertNoTempFiles(t, dir)
}

// chunkRecorder records the size of every write it receives
type chunkRecorder struct {
	sizes []int
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	c.sizes = append(c.sizes, len(p))
	return len(p), nil
}

func TestCopyChunksBoundsWrites(t *testing.T) {
	manager := &Manager{outputDir: t.TempDir(), chunkSize: 8192}
	rec := &chunkRecorder{}

	written, err := manager.copyChunks(rec, bytes.NewReader(make([]byte, 3*8192+100)))
	require.NoError(t, err)

	assert.Equal(t, int64(3*8192+100), written)
	for _, s := range rec.sizes {
		assert.LessOrEqual(t, s, 8192)
	}
	assert.Equal(t, []int{8192, 8192, 8192, 100}, rec.sizes)
}

// failingReader returns some data and then an error
type failingReader struct {
	sent bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.sent {
		return 0, io.ErrUnexpectedEOF
	}
	f.sent = true
	return copy(p, "partial"), nil
}

func TestSaveRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir, 0)
	require.NoError(t, err)

	_, written, err := manager.Save(&failingReader{}, "broken.mp4")
	require.Error(t, err)

	assert.Equal(t, int64(len("partial")), written)
	assert.True(t, errors.Is(err, errors.ErrorTypeNetwork))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, statErr := os.Stat(filepath.Join(dir, "broken.mp4"))
	assert.True(t, os.IsNotExist(statErr))
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".part"), "leftover temp file %s", e.Name())
	}
}
