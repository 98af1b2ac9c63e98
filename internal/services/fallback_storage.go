package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FallbackStorageService implements StorageService on the local filesystem,
// used when object storage credentials are not configured.
type FallbackStorageService struct {
	baseDir string
	baseURL string
}

// NewFallbackStorageService creates a local-disk storage service
func NewFallbackStorageService(baseDir, baseURL string) *FallbackStorageService {
	return &FallbackStorageService{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload writes the file under the base directory and returns its URL
func (f *FallbackStorageService) Upload(_ context.Context, key string, reader io.Reader, _ string, _ int64) (string, error) {
	key = strings.TrimPrefix(key, "/")
	path := filepath.Join(f.baseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return f.GetURL(key), nil
}

// Delete removes the file from disk
func (f *FallbackStorageService) Delete(_ context.Context, key string) error {
	key = strings.TrimPrefix(key, "/")
	path := filepath.Join(f.baseDir, filepath.FromSlash(key))

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetURL returns the public URL for a stored file
func (f *FallbackStorageService) GetURL(key string) string {
	return fmt.Sprintf("%s/%s", f.baseURL, strings.TrimPrefix(key, "/"))
}
