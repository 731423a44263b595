package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	ctx := context.Background()

	// 1. Put a blob
	blobName := "trees/points.kdt"
	data := []byte("3,4,0,0\nNULL\nNULL\n")
	require.NoError(t, store.Put(ctx, blobName, data))

	// Verify file exists on disk
	_, err := os.Stat(filepath.Join(tmpDir, "trees", "points.kdt"))
	require.NoError(t, err)

	// 2. Get
	got, err := store.Get(ctx, blobName)
	require.NoError(t, err)
	require.Equal(t, data, got)

	// 3. Overwrite
	require.NoError(t, store.Put(ctx, blobName, []byte("1,0,0\nNULL\nNULL\n")))
	got, err = store.Get(ctx, blobName)
	require.NoError(t, err)
	require.Equal(t, "1,0,0\nNULL\nNULL\n", string(got))

	// 4. List ignores temporary files
	require.NoError(t, store.Put(ctx, "other.kdt", nil))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".hidden.tmp-1"), nil, 0o644))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"other.kdt", "trees/points.kdt"}, names)

	names, err = store.List(ctx, "trees/")
	require.NoError(t, err)
	require.Equal(t, []string{"trees/points.kdt"}, names)

	// 5. Delete, twice
	require.NoError(t, store.Delete(ctx, blobName))
	require.NoError(t, store.Delete(ctx, blobName))

	_, err = store.Get(ctx, blobName)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_InvalidName(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"../escape", "/abs", ""} {
		assert.Error(t, store.Put(ctx, name, []byte("x")), name)
		_, err := store.Get(ctx, name)
		assert.Error(t, err, name)
	}
}

func TestLocalBlobStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalBlobStore_CanceledContext(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "a", nil), context.Canceled)
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("hello")
	require.NoError(t, store.Put(ctx, "b", data))
	require.NoError(t, store.Put(ctx, "a/1", []byte("x")))
	data[0] = 'j'

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	got[0] = 'y'
	got, err = store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1", "b"}, names)

	require.NoError(t, store.Delete(ctx, "b"))
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
}
