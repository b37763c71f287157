package upload

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/velora-shop/velora-api/pkg/helpers"
)

// GCSUploader stores images in a Google Cloud Storage bucket under
// products/<uuid><ext> and returns the public object URL.
type GCSUploader struct {
	Client *storage.Client
	Bucket string
}

func NewGCSUploader(client *storage.Client, bucket string) *GCSUploader {
	return &GCSUploader{Client: client, Bucket: bucket}
}

func (g *GCSUploader) Upload(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", uuid.NewString()+ext))
	return helpers.UploadObject(ctx, g.Client, g.Bucket, objectPath, contentType, r)
}

var _ Uploader = (*GCSUploader)(nil)
