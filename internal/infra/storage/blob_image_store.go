// Package storage provides the blob-backed implementation of the ImageStore
// domain interface. The bucket is addressed by URL, so swapping the local
// filesystem for S3 or GCS is a configuration change.
package storage

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Drivers are registered by import; the file driver backs local and
	// development deployments.
	_ "gocloud.dev/blob/fileblob"

	"storefront/config"
	"storefront/internal/domain/service"
)

const (
	defaultBucketURL     = "file://./uploads"
	defaultLocalDir      = "./uploads"
	defaultPublicBaseURL = "/uploads"
)

// blobImageStore stores product images in a gocloud.dev bucket.
type blobImageStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
}

// NewBlobImageStore opens the configured bucket and returns it as a
// service.ImageStore. The bucket is closed through the application lifecycle.
func NewBlobImageStore(params Params) (service.ImageStore, error) {
	store, closeFn, err := openBlobImageStore(params.Ctx, params.Config)
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closeFn()
		},
	})

	return store, nil
}

// openBlobImageStore opens the configured bucket and returns the store with
// its close function.
func openBlobImageStore(ctx context.Context, cfg *config.Config) (service.ImageStore, func() error, error) {
	bucketURL := defaultBucketURL
	publicBaseURL := defaultPublicBaseURL
	localDir := defaultLocalDir

	if cfg.Uploads != nil {
		if cfg.Uploads.BucketURL != "" {
			bucketURL = cfg.Uploads.BucketURL
		}
		if cfg.Uploads.PublicBaseURL != "" {
			publicBaseURL = cfg.Uploads.PublicBaseURL
		}
		if cfg.Uploads.LocalDir != "" {
			localDir = cfg.Uploads.LocalDir
		}
	}

	// The file driver refuses to open a missing directory.
	if strings.HasPrefix(bucketURL, "file://") {
		if err := os.MkdirAll(localDir, 0o755); err != nil {
			return nil, nil, errors.Wrap(err, "failed to create uploads directory")
		}
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open bucket %q", bucketURL)
	}

	store := &blobImageStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}

	return store, bucket.Close, nil
}

// Save writes the image under the given object key and returns the key.
func (s *blobImageStore) Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to open writer for %q", key)
	}

	if _, err := io.Copy(w, r); err != nil {
		// Abort the write by closing; the partial object is discarded by the driver.
		_ = w.Close()

		return "", errors.Wrapf(err, "failed to write object %q", key)
	}

	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to finalize object %q", key)
	}

	return key, nil
}

// Delete removes the image with the given key. Deleting a missing key is not
// an error.
func (s *blobImageStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete object %q", key)
	}

	return nil
}

// URL resolves an object key to the public URL clients can fetch.
func (s *blobImageStore) URL(key string) string {
	if key == "" {
		return ""
	}

	return s.publicBaseURL + "/" + key
}
