package storage

import (
	"context"
	"io"
)

// Uploader stores user media and returns the public URL plus the object name
// needed to delete it later.
type Uploader interface {
	Upload(ctx context.Context, folder string, contentType string, r io.Reader) (url string, objectName string, err error)
	Delete(ctx context.Context, objectName string) error
}
