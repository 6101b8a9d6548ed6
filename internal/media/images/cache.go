package images

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ElenaBalahnina123/BookDiary/internal/errors"
)

// Cache is the two-tier image cache. The disk tier owns the bytes; the memory
// tier is a decode cache over it and never holds an image the disk does not.
type Cache struct {
	storage *Storage
	memory  *lruCache
	logger  *slog.Logger
}

// NewCache creates a Cache over the given disk storage with an in-memory LRU
// of memoryCapacity decoded images.
func NewCache(storage *Storage, memoryCapacity int, logger *slog.Logger) *Cache {
	return &Cache{
		storage: storage,
		memory:  newLRUCache(memoryCapacity),
		logger:  logger,
	}
}

// Store persists the image bytes read from r under a fresh random id and
// returns that id. The bytes must decode as an image; the decoded form seeds
// the memory tier so the first Fetch is a hit.
func (c *Cache) Store(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return c.StoreBytes(data)
}

// StoreBytes persists the image bytes under a fresh random id.
func (c *Cache) StoreBytes(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", errors.Validationf("not a valid image: %v", err)
	}

	id := uuid.NewString()

	// Disk first. The memory tier must never know an id the disk does not.
	if err := c.storage.Save(id, data); err != nil {
		return "", err
	}
	c.memory.Put(id, img)

	c.logger.Debug("image stored", "image_id", id, "bytes", len(data))
	return id, nil
}

// StoreImage encodes img as PNG and persists it under a fresh random id.
func (c *Cache) StoreImage(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	id := uuid.NewString()
	if err := c.storage.Save(id, buf.Bytes()); err != nil {
		return "", err
	}
	c.memory.Put(id, img)

	c.logger.Debug("image stored", "image_id", id, "bytes", buf.Len())
	return id, nil
}

// Fetch returns the decoded image for id, or (nil, nil) when it is absent.
// A blank id is absent by definition and never touches the disk. A disk hit
// re-seeds the memory tier.
func (c *Cache) Fetch(id string) (image.Image, error) {
	if id == "" {
		return nil, nil
	}

	if img, ok := c.memory.Get(id); ok {
		return img, nil
	}

	data, err := c.storage.Get(id)
	if err != nil {
		if !c.storage.Exists(id) {
			return nil, nil
		}
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", id, err)
	}

	c.memory.Put(id, img)
	return img, nil
}

// Raw returns the stored bytes for id, bypassing the decode cache. Used for
// serving images over HTTP unmodified.
func (c *Cache) Raw(id string) ([]byte, error) {
	if id == "" {
		return nil, errors.NotFound("image not found")
	}

	data, err := c.storage.Get(id)
	if err != nil {
		if !c.storage.Exists(id) {
			return nil, errors.NotFound("image not found")
		}
		return nil, err
	}
	return data, nil
}

// Exists reports whether an image is stored under id.
func (c *Cache) Exists(id string) bool {
	return c.storage.Exists(id)
}

// Hash returns the SHA256 of the stored bytes for ETag validation.
func (c *Cache) Hash(id string) (string, error) {
	if id == "" {
		return "", errors.NotFound("image not found")
	}
	return c.storage.Hash(id)
}

// Delete removes an image from both tiers. Memory goes first so a concurrent
// Fetch cannot resurrect an entry the disk no longer holds.
func (c *Cache) Delete(id string) error {
	if id == "" {
		return nil
	}

	c.memory.Remove(id)
	return c.storage.Delete(id)
}

// EvictMemory clears the memory tier. The disk tier is untouched.
func (c *Cache) EvictMemory() {
	c.memory.Clear()
}
