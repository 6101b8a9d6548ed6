package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElenaBalahnina123/BookDiary/internal/errors"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestCache(t *testing.T, capacity int) *Cache {
	t.Helper()
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	logger := slog.New(slog.DiscardHandler)
	return NewCache(storage, capacity, logger)
}

func TestCache_StoreAndFetch(t *testing.T) {
	c := newTestCache(t, 10)
	data := testPNG(t, 16, 16)

	id, err := c.StoreBytes(data)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	img, err := c.Fetch(id)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 16, img.Bounds().Dx())

	raw, err := c.Raw(id)
	require.NoError(t, err)
	assert.Equal(t, data, raw)
}

func TestCache_StoreReader(t *testing.T) {
	c := newTestCache(t, 10)
	data := testPNG(t, 8, 8)

	id, err := c.Store(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, c.Exists(id))
}

func TestCache_StoreRejectsGarbage(t *testing.T) {
	c := newTestCache(t, 10)

	_, err := c.StoreBytes([]byte("definitely not an image"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestCache_BlankIDIsAbsent(t *testing.T) {
	c := newTestCache(t, 10)

	img, err := c.Fetch("")
	require.NoError(t, err)
	assert.Nil(t, img)

	_, err = c.Raw("")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestCache_UnknownIDIsAbsent(t *testing.T) {
	c := newTestCache(t, 10)

	img, err := c.Fetch("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, img)

	_, err = c.Raw("no-such-id")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestCache_DiskFallbackAfterMemoryEviction(t *testing.T) {
	c := newTestCache(t, 10)

	id, err := c.StoreBytes(testPNG(t, 12, 12))
	require.NoError(t, err)

	c.EvictMemory()
	assert.Equal(t, 0, c.memory.Len())

	img, err := c.Fetch(id)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 12, img.Bounds().Dx())

	// The disk hit re-seeds the memory tier.
	assert.Equal(t, 1, c.memory.Len())
}

func TestCache_Delete(t *testing.T) {
	c := newTestCache(t, 10)

	id, err := c.StoreBytes(testPNG(t, 8, 8))
	require.NoError(t, err)

	require.NoError(t, c.Delete(id))
	assert.False(t, c.Exists(id))

	img, err := c.Fetch(id)
	require.NoError(t, err)
	assert.Nil(t, img)

	// Deleting again is a no-op, as is deleting a blank id.
	assert.NoError(t, c.Delete(id))
	assert.NoError(t, c.Delete(""))
}

func TestCache_MemoryEvictionKeepsDisk(t *testing.T) {
	c := newTestCache(t, 2)

	var ids []string
	for range 3 {
		id, err := c.StoreBytes(testPNG(t, 4, 4))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// Memory holds at most two entries, disk holds everything.
	assert.LessOrEqual(t, c.memory.Len(), 2)
	for _, id := range ids {
		assert.True(t, c.Exists(id))
		img, err := c.Fetch(id)
		require.NoError(t, err)
		assert.NotNil(t, img)
	}
}

func TestCache_StoreImage(t *testing.T) {
	c := newTestCache(t, 10)

	src := image.NewRGBA(image.Rect(0, 0, 6, 6))
	id, err := c.StoreImage(src)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	raw, err := c.Raw(id)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 6, decoded.Bounds().Dx())
}

func TestCache_StoreReadsAllBytes(t *testing.T) {
	c := newTestCache(t, 10)
	data := testPNG(t, 8, 8)

	// A reader that yields one byte at a time still round-trips.
	id, err := c.Store(&oneByteReader{data: data})
	require.NoError(t, err)

	raw, err := c.Raw(id)
	require.NoError(t, err)
	assert.Equal(t, data, raw)
}

// oneByteReader yields a single byte per Read call.
type oneByteReader struct {
	data []byte
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}
