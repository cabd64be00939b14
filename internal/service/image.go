package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"lexapi/internal/storage"
)

// allowedImageExtensions mirrors the common web image formats accepted
// for staff profile pictures.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageService stores profile images in the S3-compatible object store
// and hands back a time-limited download URL.
type ImageService interface {
	Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error)
}

type imageService struct {
	store storage.ObjectStore
}

// NewImageService constructs an ImageService.
func NewImageService(store storage.ObjectStore) ImageService {
	return &imageService{store: store}
}

func (s *imageService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (string, error) {
	if r == nil {
		return "", ErrMissingParams
	}
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("%w: image type %q not allowed", ErrValidation, ext)
	}

	// Object keys are UUID-based; the original filename only contributes
	// its extension.
	key := "images/" + uuid.New().String() + ext
	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": originalFilename},
	}); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, 7*24*time.Hour)
	if err != nil {
		return "", fmt.Errorf("presign image url: %w", err)
	}
	return url, nil
}

func (s *imageService) Download(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	return s.store.Get(ctx, key)
}
