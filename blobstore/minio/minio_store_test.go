package minio

import (
	"context"
	"os"
	"testing"

	"github.com/hupe1980/kdgo/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	notFound := minio.ErrorResponse{Code: "NoSuchKey", Message: "missing"}
	assert.ErrorIs(t, translate(notFound), blobstore.ErrNotFound)

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	assert.NotErrorIs(t, translate(denied), blobstore.ErrNotFound)
}

func TestKey(t *testing.T) {
	s := NewStore(nil, "b", "trees/")
	assert.Equal(t, "trees/a.kdt", s.key("a.kdt"))

	s = NewStore(nil, "b", "")
	assert.Equal(t, "a.kdt", s.key("a.kdt"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Set KDGO_MINIO_ENDPOINT (e.g. localhost:9000) to enable it.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("KDGO_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("KDGO_MINIO_ENDPOINT not set")
	}
	bucket := "test-kdgo"

	store, err := New(endpoint, bucket, Credentials{
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Prefix:    "test-prefix/",
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("3,4,0,0\nNULL\nNULL\n")
	require.NoError(t, store.Put(ctx, "tree.kdt", data))

	got, err := store.Get(ctx, "tree.kdt")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "tree.kdt")

	require.NoError(t, store.Delete(ctx, "tree.kdt"))

	_, err = store.Get(ctx, "tree.kdt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
