package service

import (
	"context"
	"io"
)

// ImageStore defines the interface for storing uploaded product images and
// resolving their public URLs.
type ImageStore interface {
	// Save writes the image under the given object key and returns the key.
	Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error)

	// Delete removes the image with the given key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// URL resolves an object key to the public URL clients can fetch.
	URL(key string) string
}
