package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/domains/testimonial/model"
	"consulting-backend/internal/domains/testimonial/service"
	"consulting-backend/internal/infrastructure/filestore"
	"consulting-backend/internal/infrastructure/storage"
)

func newService(t *testing.T) (*service.Service, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := filestore.New[model.Testimonial](dir, model.Table)
	require.NoError(t, err)
	uploads := filepath.Join(dir, "uploads")
	local, err := storage.NewLocalStorage(uploads, "/uploads")
	require.NoError(t, err)
	return service.NewService(store, local, storage.NewImageProcessor(5<<20)), uploads
}

func valid(rating int) *model.Testimonial {
	return &model.Testimonial{Name: "Mai", Company: "Acme", Position: "CEO", Content: "Great advice", Rating: rating, IsActive: true}
}

func TestRatingRange(t *testing.T) {
	svc, _ := newService(t)

	for _, rating := range []int{0, -1, 6} {
		err := svc.Records().Create(context.Background(), valid(rating))
		assert.True(t, record.IsValidation(err), "rating %d", rating)
	}
	for _, rating := range []int{1, 5} {
		assert.NoError(t, svc.Records().Create(context.Background(), valid(rating)))
	}
}

func TestSetImage(t *testing.T) {
	svc, uploads := newService(t)
	ctx := context.Background()

	tm := valid(5)
	require.NoError(t, svc.Records().Create(ctx, tm))

	img := image.NewRGBA(image.Rect(0, 0, 600, 900))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	updated, err := svc.SetImage(ctx, tm.ID, buf.Bytes())
	require.NoError(t, err)
	require.NotNil(t, updated.Image)
	assert.True(t, strings.HasPrefix(*updated.Image, "/uploads/testimonials/"))

	data, err := os.ReadFile(filepath.Join(uploads, strings.TrimPrefix(*updated.Image, "/uploads/")))
	require.NoError(t, err)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, storage.ThumbnailSize, cfg.Width)
	assert.Equal(t, storage.ThumbnailSize, cfg.Height)
}

func TestSetImage_Errors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.SetImage(ctx, "missing", []byte("x"))
	assert.ErrorIs(t, err, record.ErrNotFound)

	tm := valid(4)
	require.NoError(t, svc.Records().Create(ctx, tm))
	_, err = svc.SetImage(ctx, tm.ID, []byte("not an image"))
	assert.True(t, record.IsValidation(err))
}
