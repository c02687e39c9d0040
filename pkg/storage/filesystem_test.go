package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoragePutAndDelete(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStorage(base, "/uploads")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "events/banner.png", "image/png", strings.NewReader("payload"), 7)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/events/banner.png", url)

	_, err = os.Stat(filepath.Join(base, "events", "banner.png"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "events/banner.png"))
	_, err = os.Stat(filepath.Join(base, "events", "banner.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageDeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStorage(filepath.Join(t.TempDir(), "uploads"), "")
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "events/gone.png"))
}

func TestLocalStorageDeleteStaysInsideBaseDir(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "uploads")
	store, err := NewLocalStorage(base, "")
	require.NoError(t, err)

	victim := filepath.Join(root, "victim.txt")
	require.NoError(t, os.WriteFile(victim, []byte("keep me"), 0o644))

	err = store.Delete(context.Background(), "../victim.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes the upload directory")

	_, statErr := os.Stat(victim)
	assert.NoError(t, statErr)
}

func TestLocalStoragePutRejectsEscapingKey(t *testing.T) {
	store, err := NewLocalStorage(filepath.Join(t.TempDir(), "uploads"), "")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../outside.png", "image/png", strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes the upload directory")
}
