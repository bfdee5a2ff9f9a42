package service

import "context"

// ImageStore persists product images and returns the public URL they are
// served from.
type ImageStore interface {
	// SaveImage writes the image content under a generated object name and
	// returns its public URL.
	SaveImage(ctx context.Context, filename, contentType string, content []byte) (string, error)

	// Close releases the underlying bucket.
	Close() error
}
