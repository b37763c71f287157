// Package upload abstracts the image host behind a single interface: hand
// it bytes, get back a retrievable URL. The catalog only ever stores that
// URL.
package upload

import (
	"context"
	"io"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename, contentType string) (string, error)
}
