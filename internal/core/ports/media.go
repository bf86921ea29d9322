package ports

import (
	"context"
	"io"
)

// MediaUploader stores an image and returns its public HTTPS URL.
type MediaUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}
