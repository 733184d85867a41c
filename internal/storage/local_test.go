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

func TestLocalStoreUpload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore("http://localhost:8080/", dir)
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "receipt-1.jpg", "image/jpeg", strings.NewReader("payload"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/receipt-1.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "receipt-1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestLocalStoreUploadSanitizesKey(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore("http://localhost:8080", dir)
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "../../etc/passwd", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/passwd", url)

	_, err = os.Stat(filepath.Join(dir, "passwd"))
	assert.NoError(t, err)
}

func TestLocalStoreUploadCancelledContext(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore("http://localhost:8080", dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Upload(ctx, "receipt.jpg", "image/jpeg", strings.NewReader("x"))
	assert.Error(t, err)
}
