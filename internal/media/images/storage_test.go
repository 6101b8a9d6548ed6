package images

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorage(t *testing.T) {
	t.Run("creates storage with valid path", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "images")

		storage, err := NewStorage(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, storage)

		info, err := os.Stat(tmpDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("returns error for empty path", func(t *testing.T) {
		storage, err := NewStorage("")
		assert.Error(t, err)
		assert.Nil(t, storage)
		assert.Contains(t, err.Error(), "base path cannot be empty")
	})

	t.Run("creates nested directories if needed", func(t *testing.T) {
		nestedPath := filepath.Join(t.TempDir(), "nested", "path")

		storage, err := NewStorage(nestedPath)
		require.NoError(t, err)
		require.NotNil(t, storage)

		info, err := os.Stat(nestedPath)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestStorage_Save(t *testing.T) {
	t.Run("saves image data successfully", func(t *testing.T) {
		storage, err := NewStorage(t.TempDir())
		require.NoError(t, err)

		data := []byte("fake image bytes")
		require.NoError(t, storage.Save("img-1", data))

		got, err := storage.Get("img-1")
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("rejects empty id", func(t *testing.T) {
		storage, err := NewStorage(t.TempDir())
		require.NoError(t, err)

		assert.Error(t, storage.Save("", []byte("data")))
	})

	t.Run("rejects empty data", func(t *testing.T) {
		storage, err := NewStorage(t.TempDir())
		require.NoError(t, err)

		assert.Error(t, storage.Save("img-1", nil))
	})

	t.Run("refuses to overwrite an existing id", func(t *testing.T) {
		storage, err := NewStorage(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, storage.Save("img-1", []byte("first")))
		err = storage.Save("img-1", []byte("second"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already stored")

		// The original bytes are untouched.
		got, err := storage.Get("img-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("first"), got)
	})
}

func TestStorage_Exists(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	assert.False(t, storage.Exists("img-1"))
	assert.False(t, storage.Exists(""))

	require.NoError(t, storage.Save("img-1", []byte("data")))
	assert.True(t, storage.Exists("img-1"))
}

func TestStorage_Delete(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, storage.Save("img-1", []byte("data")))
	require.NoError(t, storage.Delete("img-1"))
	assert.False(t, storage.Exists("img-1"))

	// Deleting an absent id is not an error.
	assert.NoError(t, storage.Delete("img-1"))
}

func TestStorage_Hash(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, storage.Save("img-1", []byte("data")))

	h1, err := storage.Hash("img-1")
	require.NoError(t, err)
	assert.Len(t, h1, 64)

	h2, err := storage.Hash("img-1")
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	_, err = storage.Hash("missing")
	assert.Error(t, err)
}
