package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/storage"
)

func TestLocalStoreStore(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("stores blob and returns reference", func(t *testing.T) {
		ref, err := store.Store(ctx, storage.Upload{
			Filename:    "pen.png",
			ContentType: "image/png",
			Data:        []byte("0123456789"),
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "/uploads/"))
		assert.True(t, strings.HasSuffix(ref, ".png"), "reference keeps the original extension")

		data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, "/uploads/")))
		require.NoError(t, err)
		assert.Equal(t, []byte("0123456789"), data)
	})

	t.Run("filename without extension", func(t *testing.T) {
		ref, err := store.Store(ctx, storage.Upload{Filename: "raw", Data: []byte("x")})
		require.NoError(t, err)
		assert.NotEmpty(t, ref)
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, entry := range entries {
			assert.False(t, strings.HasPrefix(entry.Name(), ".upload-"), "temp file %s not cleaned up", entry.Name())
		}
	})

	t.Run("canceled context stores nothing", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		before, err := os.ReadDir(dir)
		require.NoError(t, err)

		_, err = store.Store(canceled, storage.Upload{Filename: "late.png", Data: []byte("x")})
		require.Error(t, err)

		after, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})
}

func TestLocalStoreDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	ctx := context.Background()

	ref, err := store.Store(ctx, storage.Upload{Filename: "gone.jpg", Data: []byte("x")})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(ref, "/uploads/")))
	assert.True(t, os.IsNotExist(err))

	t.Run("rejects foreign references", func(t *testing.T) {
		assert.Error(t, store.Delete(ctx, "/etc/passwd"))
		assert.Error(t, store.Delete(ctx, "/uploads/../secret"))
	})
}

func TestNewLocalStoreDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store, err := storage.NewLocalStore(dir, "")
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	ref, err := store.Store(context.Background(), storage.Upload{Filename: "a.png", Data: []byte("x")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/"), "empty public base falls back to /uploads")
}
