package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/service"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestThumbnail_Bounds(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"landscape", 800, 600, 400, 300},
		{"portrait", 300, 1200, 100, 400},
		{"square", 1000, 1000, 400, 400},
		{"small is not enlarged", 120, 80, 120, 80},
		{"exactly bound", 400, 250, 400, 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := service.Thumbnail(pngBytes(t, tt.w, tt.h), service.AvatarBound)
			require.NoError(t, err)

			w, h := jpegSize(t, out)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
			assert.LessOrEqual(t, w, service.AvatarBound)
			assert.LessOrEqual(t, h, service.AvatarBound)
		})
	}
}

func TestThumbnail_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not an image", []byte("definitely not a picture")},
		{"too large", make([]byte, service.MaxAvatarBytes+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Thumbnail(tt.data, service.AvatarBound)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAvatarService_SaveGetRemove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	key, err := env.avatars.Save(ctx, pngBytes(t, 640, 480))
	require.NoError(t, err)
	assert.Contains(t, key, ".jpg")

	data, err := env.avatars.Get(ctx, key)
	require.NoError(t, err)
	w, h := jpegSize(t, data)
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)

	require.NoError(t, env.avatars.Remove(ctx, key))
	_, err = env.avatars.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, env.avatars.Remove(ctx, ""))
}
