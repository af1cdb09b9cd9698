package upload

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storedNameRe = regexp.MustCompile(`^[0-9a-f]{32}\.[a-z0-9]+$`)

func TestFileStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	name, err := store.Save(context.Background(), "Permis.PNG", []byte("data"))
	require.NoError(t, err)
	assert.Regexp(t, storedNameRe, name)
	assert.Equal(t, ".png", filepath.Ext(name))

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)
}

func TestFileStoreSaveUniqueNames(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(context.Background(), "permis.jpg", []byte("a"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "permis.jpg", []byte("a"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestStoredExt(t *testing.T) {
	assert.Equal(t, ".jpg", storedExt("scan"))
	assert.Equal(t, ".jpeg", storedExt("SCAN.JPEG"))
	assert.Equal(t, ".jpg", storedExt("evil.p/hp"))
	assert.Equal(t, ".jpg", storedExt("x.verylongextension"))
	assert.Equal(t, ".jpg", storedExt(""))
}

func TestFileStoreSaveCancelled(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, "a.png", []byte("x"))
	require.ErrorIs(t, err, context.Canceled)
}
