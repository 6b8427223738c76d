package repository

import (
	"context"
	"io"
)

// ImageStore persists uploaded item images and returns the reference that
// is stored on the item.
type ImageStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
	// Delete removes the image behind a reference returned by Save.
	Delete(ctx context.Context, ref string) error
}
