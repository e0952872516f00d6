package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ImageStore writes uploaded product images to a local directory and
// removes them again when a product is updated or deleted.
type ImageStore struct {
	dir string
}

// NewImageStore creates the upload directory if needed and returns a store
// rooted there.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save writes one uploaded file under the store directory, named after the
// owning product plus a fresh uuid, and returns the stored path.
func (s *ImageStore) Save(file *multipart.FileHeader, productID string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file %s: %w", file.Filename, err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s-%s%s", productID, uuid.New().String(), filepath.Ext(file.Filename))
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file %s: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes a stored image file. A missing file is an error: the
// update and delete workflows treat a failed delete as blocking.
func (s *ImageStore) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete image file %s: %w", path, err)
	}
	return nil
}
