package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// GCSUploader implements Uploader on a Google Cloud Storage bucket
type GCSUploader struct {
	client *gcs.Client
	bucket string
}

// NewGCSUploader creates an uploader for the given bucket
func NewGCSUploader(ctx context.Context, bucket string) (*GCSUploader, error) {
	c, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSUploader{client: c, bucket: bucket}, nil
}

func (u *GCSUploader) Close() error { return u.client.Close() }

// Upload writes the stream under a random object name inside folder and
// makes it publicly readable.
func (u *GCSUploader) Upload(ctx context.Context, folder string, contentType string, r io.Reader) (string, string, error) {
	objectName := path.Join(folder, uuid.NewString())
	obj := u.client.Bucket(u.bucket).Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", "", err
	}
	if err := w.Close(); err != nil {
		return "", "", err
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", "", err
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, objectName)
	return url, objectName, nil
}

// Delete removes a stored object. A missing object is not an error; the
// media may already have been cleaned up.
func (u *GCSUploader) Delete(ctx context.Context, objectName string) error {
	err := u.client.Bucket(u.bucket).Object(objectName).Delete(ctx)
	if err == gcs.ErrObjectNotExist {
		return nil
	}
	return err
}
