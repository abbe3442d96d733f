package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rijan-rayamajhi/gem-business/internal/config"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(config.StorageConfig{
		BaseDir:       t.TempDir(),
		PublicBaseURL: "http://localhost:8080/files/",
	})
	require.NoError(t, err)
	return store
}

func TestDiskStore_PutReturnsPublicURL(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Put(context.Background(), "listings/m1/a.png", "image/png", []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/listings/m1/a.png", url)

	data, err := os.ReadFile(filepath.Join(store.BaseDir(), "listings", "m1", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestDiskStore_PutRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Put(context.Background(), "../../etc/passwd", "text/plain", []byte("x"))
	require.NoError(t, err, "traversal segments are stripped, not fatal")
	assert.Equal(t, "http://localhost:8080/files/etc/passwd", url)

	// the object lands inside the base dir despite the dotdot prefix
	_, statErr := os.Stat(filepath.Join(store.BaseDir(), "etc", "passwd"))
	assert.NoError(t, statErr)
}

func TestDiskStore_PutRejectsEmptyPath(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Put(context.Background(), "", "text/plain", []byte("x"))
	assert.Error(t, err)

	_, err = store.Put(context.Background(), "..", "text/plain", []byte("x"))
	assert.Error(t, err)
}

func TestDiskStore_DeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Put(context.Background(), "kyc/m1/doc.png", "image/png", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "kyc/m1/doc.png"))
	assert.NoError(t, store.Delete(context.Background(), "kyc/m1/doc.png"),
		"deleting a missing object is not an error")
}

func TestDiskStore_CancelledContext(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, "a.png", "image/png", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Delete(ctx, "a.png"), context.Canceled)
}
