// Package images provides the two-tier cover image cache: an in-memory LRU
// over a write-once file store on disk.
package images

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage is the disk tier of the image cache.
// Thread-safe for concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex // Protects file operations
}

// NewStorage creates a Storage rooted at basePath, creating the directory if
// needed. Images are stored as {basePath}/{id} with no extension; the id is
// the only name an image is ever known by.
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	return &Storage{
		basePath: basePath,
	}, nil
}

// Save stores image data under id. Files are write-once: ids are random and
// never reused, so an existing file means a duplicate id and is an error.
func (s *Storage) Save(id string, imgData []byte) error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}

	if len(imgData) == 0 {
		return fmt.Errorf("image data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.Path(id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("image %s already stored", id)
		}
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := f.Write(imgData); err != nil {
		f.Close()
		os.Remove(s.Path(id))
		return fmt.Errorf("failed to write image file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(s.Path(id))
		return fmt.Errorf("failed to close image file: %w", err)
	}

	return nil
}

// Get retrieves image data for an id.
func (s *Storage) Get(id string) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("ID cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found for %s: %w", id, err)
		}
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	return data, nil
}

// Exists checks if an image exists for an id.
func (s *Storage) Exists(id string) bool {
	if id == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(id))
	return err == nil
}

// Delete removes the image for an id. Deleting an absent id is not an error.
func (s *Storage) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(id)); err != nil {
		if os.IsNotExist(err) {
			// Already deleted, not an error.
			return nil
		}
		return fmt.Errorf("failed to delete image file: %w", err)
	}

	return nil
}

// Hash computes SHA256 hash of an image.
// Returns hex-encoded string for ETag/cache validation.
func (s *Storage) Hash(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("ID cannot be empty")
	}

	data, err := s.Get(id)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// Path returns the full filesystem path for an image id.
func (s *Storage) Path(id string) string {
	return filepath.Join(s.basePath, id)
}
