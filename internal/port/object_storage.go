package port

import (
	"context"
	"io"
)

// UploadInput carries the data for an object upload.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
}

// UploadOutput holds upload result metadata.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts object storage for report archival.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}
