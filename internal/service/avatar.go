package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/matchbook/matchbook/internal/domain"
	"golang.org/x/image/draw"
)

const (
	MaxAvatarBytes = 5 << 20 // 5MB
	// AvatarBound is the largest width or height a stored avatar can have.
	AvatarBound = 400

	maxSourcePixels = 40_000_000
)

// AvatarService turns uploaded pictures into bounded JPEG thumbnails and
// keeps them in a FileStore under random names.
type AvatarService struct {
	files domain.FileStore
}

// NewAvatarService creates a new AvatarService.
func NewAvatarService(files domain.FileStore) *AvatarService {
	return &AvatarService{files: files}
}

// Save thumbnails data and stores it, returning the new storage key.
func (s *AvatarService) Save(ctx context.Context, data []byte) (string, error) {
	thumb, err := Thumbnail(data, AvatarBound)
	if err != nil {
		return "", err
	}

	key := uuid.NewString() + ".jpg"
	if err := s.files.Save(ctx, key, thumb); err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	return key, nil
}

// Get returns the stored JPEG bytes for key.
func (s *AvatarService) Get(ctx context.Context, key string) ([]byte, error) {
	return s.files.Get(ctx, key)
}

// Remove deletes a stored avatar. Empty keys are ignored.
func (s *AvatarService) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.files.Delete(ctx, key)
}

// Thumbnail decodes a JPEG, PNG or GIF image and re-encodes it as JPEG so
// that neither side exceeds bound, keeping the aspect ratio. Smaller images
// are not enlarged.
func Thumbnail(data []byte, bound int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}
	if len(data) > MaxAvatarBytes {
		return nil, fmt.Errorf("%w: image exceeds 5MB limit", domain.ErrInvalidInput)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: only JPEG, PNG and GIF images are accepted", domain.ErrInvalidInput)
	}
	if cfg.Width*cfg.Height > maxSourcePixels {
		return nil, fmt.Errorf("%w: image dimensions are too large", domain.ErrInvalidInput)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode image", domain.ErrInvalidInput)
	}

	w, h := fitWithin(src.Bounds().Dx(), src.Bounds().Dy(), bound)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG has no alpha; flatten transparent areas onto white.
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func fitWithin(w, h, bound int) (int, int) {
	if w <= bound && h <= bound {
		return w, h
	}
	if w >= h {
		return bound, max(1, h*bound/w)
	}
	return max(1, w*bound/h), bound
}
