package storage

import (
	"context"
	"strings"
	"testing"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *blobImageStore {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Uploads: &config.UploadsConfig{
			BucketURL:     "file://" + dir,
			LocalDir:      dir,
			PublicBaseURL: "/uploads/",
		},
	}

	store, closeFn, err := openBlobImageStore(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	return store.(*blobImageStore)
}

func TestBlobImageStore_SaveAndDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	key, err := store.Save(ctx, "lamp.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "lamp.png", key)

	require.NoError(t, store.Delete(ctx, "lamp.png"))
}

func TestBlobImageStore_DeleteMissingKeyIsNoop(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	assert.NoError(t, store.Delete(context.Background(), "never-existed.png"))
}

func TestBlobImageStore_URL(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	// Trailing slash on the base URL is normalized away.
	assert.Equal(t, "/uploads/lamp.png", store.URL("lamp.png"))
	assert.Empty(t, store.URL(""))
}
