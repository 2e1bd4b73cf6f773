package service

import (
	"context"
	"fmt"
	"io"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type UploadService struct {
	uploader ImageUploader
	maxBytes int64
}

func NewUploadService(uploader ImageUploader, maxBytes int64) *UploadService {
	return &UploadService{uploader: uploader, maxBytes: maxBytes}
}

func (s *UploadService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if !allowedImageTypes[contentType] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return "", ErrImageTooLarge
	}
	return s.uploader.Upload(ctx, filename, r)
}
