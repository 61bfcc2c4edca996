package ports

import (
	"context"
	"io"
)

type ObjectStorage interface {
	// Upload stores the object and returns the URL it can be fetched from.
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error)
	EnsureBucket(ctx context.Context, bucket string) error
}
