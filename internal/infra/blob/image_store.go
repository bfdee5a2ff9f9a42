// Package blob stores uploaded product images in a bucket behind the
// portable gocloud blob API, so local disk and GCS deployments share one
// code path.
package blob

import (
	"context"
	"fmt"
	"path"
	"strings"

	"pixelstore/config"
	"pixelstore/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers registered by URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
)

type imageStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// Params holds dependencies for the image store, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
}

// NewImageStore opens the configured bucket and returns it as an ImageStore.
func NewImageStore(params Params) (service.ImageStore, error) {
	cfg := params.Config.Blob
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("blob bucket URL must be configured")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	store := &imageStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return store, nil
}

// SaveImage writes the image under a fresh key and returns its public URL.
// The original filename only contributes its extension; the key itself is
// random so uploads can never overwrite each other.
func (s *imageStore) SaveImage(ctx context.Context, filename, contentType string, content []byte) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("products/%s%s", uuid.NewString(), ext)

	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, content, opts); err != nil {
		return "", errors.Wrapf(err, "failed to store image %s", key)
	}

	return s.publicBaseURL + "/" + key, nil
}

// Close releases the underlying bucket.
func (s *imageStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}
