package services

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Card images are normalized to this size before upload
const (
	cardImageWidth  = 800
	cardImageHeight = 600
	jpegQuality     = 85
)

// ImageService processes uploaded sweet images and stores them
type ImageService struct {
	storage StorageService
}

// NewImageService creates a new image service
func NewImageService(storage StorageService) *ImageService {
	return &ImageService{storage: storage}
}

// ProcessAndStore decodes an uploaded image, resizes it to the standard card
// size, and uploads the result. Returns the public URL of the stored image.
func (s *ImageService) ProcessAndStore(ctx context.Context, reader io.Reader) (string, error) {
	img, err := imaging.Decode(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Fill(img, cardImageWidth, cardImageHeight, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	key := fmt.Sprintf("sweets/%s.jpg", uuid.NewString())
	url, err := s.storage.Upload(ctx, key, &buf, "image/jpeg", int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	return url, nil
}
