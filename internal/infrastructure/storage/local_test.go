package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	s, err := NewLocalStorage(root, "/media/")
	require.NoError(t, err)

	key := "recipes/images/abc.jpg"
	require.NoError(t, s.Upload(ctx, key, []byte("jpeg"), "image/jpeg"))

	data, err := os.ReadFile(filepath.Join(root, "recipes", "images", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
	assert.Equal(t, "/media/recipes/images/abc.jpg", s.URL(key))

	require.NoError(t, s.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(root, "recipes", "images", "abc.jpg"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is not an error
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStorage_KeyStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root, "/media")
	require.NoError(t, err)

	require.NoError(t, s.Upload(context.Background(), "../../escape.txt", []byte("x"), "text/plain"))
	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.NoError(t, err)

	assert.Error(t, s.Upload(context.Background(), "", []byte("x"), "text/plain"))
	assert.Equal(t, "", s.URL(""))
}
