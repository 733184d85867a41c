package storage

import (
	"context"
	"io"
)

// Store accepts a byte stream and returns a retrievable URL. Implementations
// may target a local directory or a cloud bucket.
type Store interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}
