package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore persists uploads on the local filesystem and serves them from a
// static route. It stands in for a hosted object store.
type LocalStore struct {
	baseURL    string
	uploadsDir string
}

// NewLocalStore creates the uploads directory if needed.
func NewLocalStore(baseURL, uploadsDir string) (*LocalStore, error) {
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		uploadsDir: uploadsDir,
	}, nil
}

// Upload writes the stream under the given key and returns its public URL.
func (s *LocalStore) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Strip any path separators so keys cannot escape the uploads dir.
	clean := filepath.Base(filepath.Clean(key))
	path := filepath.Join(s.uploadsDir, clean)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.baseURL + "/uploads/" + clean, nil
}
