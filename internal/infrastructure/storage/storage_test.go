package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckUpload(t *testing.T) {
	const max = 10 << 20

	tests := []struct {
		name string
		file string
		size int64
		err  error
	}{
		{"pdf", "cv.pdf", 1024, nil},
		{"upper case docx", "CV.DOCX", 1024, nil},
		{"png", "photo.png", 1024, nil},
		{"exactly the limit", "cv.pdf", max, nil},
		{"over the limit", "cv.pdf", max + 1, ErrFileTooLarge},
		{"executable", "cv.exe", 1024, ErrFileType},
		{"no extension", "cv", 1024, ErrFileType},
		{"empty", "cv.pdf", 0, ErrEmptyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUpload(tt.file, tt.size, max, DocumentExtensions)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewKey(t *testing.T) {
	key := NewKey("applications", "My CV.PDF", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^applications/2024/03/[0-9a-f-]{36}\.pdf$`, key)
}

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), "applications/2024/01/a.pdf", []byte("%PDF"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/applications/2024/01/a.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "applications", "2024", "01", "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	require.NoError(t, s.Delete(context.Background(), "applications/2024/01/a.pdf"))
	_, err = os.Stat(filepath.Join(dir, "applications", "2024", "01", "a.pdf"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, s.Delete(context.Background(), "applications/2024/01/a.pdf"))
}

func TestLocalStorage_KeysStayInsideDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "uploads"), "/uploads")
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), "../../escape.txt", []byte("x"), "text/plain")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "uploads", "escape.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageProcessor_Thumbnail(t *testing.T) {
	p := NewImageProcessor(10 << 20)
	src := pngBytes(t, 800, 500)

	require.NoError(t, p.ValidateImage(src))

	thumb, err := p.Thumbnail(src)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, ThumbnailSize, cfg.Width)
	assert.Equal(t, ThumbnailSize, cfg.Height)
}

func TestImageProcessor_Rejects(t *testing.T) {
	p := NewImageProcessor(100)

	assert.ErrorIs(t, p.ValidateImage([]byte("not an image")), ErrFileType)
	assert.ErrorIs(t, p.ValidateImage(pngBytes(t, 200, 200)), ErrFileTooLarge)
}
