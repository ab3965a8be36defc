// internal/adapters/out/gcs/photo_url_resolver.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	gcscommon "github.com/komekovv/zen-moda-client-sub000/internal/adapters/out/gcs/common"
)

const defaultPhotoBucket = "zen-moda-product-photos"

// signFunc matches (*storage.BucketHandle).SignedURL.
type signFunc func(bucket, object string, opts *storage.SignedURLOptions) (string, error)

// PhotoURLResolver turns stored photo references into URLs for mall responses.
//
// A reference can be:
//   - http(s)://... outside GCS (returned as-is)
//   - gs://bucket/object or https://storage.googleapis.com/... (parsed)
//   - objectPath (treated as object path within Bucket)
//
// With signing enabled, GCS objects get a V4 signed GET URL valid for TTL.
type PhotoURLResolver struct {
	Bucket string
	TTL    time.Duration

	sign signFunc
	now  func() time.Time
}

func NewPhotoURLResolver(bucket string) *PhotoURLResolver {
	return &PhotoURLResolver{Bucket: strings.TrimSpace(bucket), now: time.Now}
}

// NewSignedPhotoURLResolver signs through the given storage client.
func NewSignedPhotoURLResolver(client *storage.Client, bucket string, ttl time.Duration) (*PhotoURLResolver, error) {
	if client == nil {
		return nil, errors.New("gcs: storage client is nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("gcs: signed url ttl must be positive, got %s", ttl)
	}
	r := NewPhotoURLResolver(bucket)
	r.TTL = ttl
	r.sign = func(b, object string, opts *storage.SignedURLOptions) (string, error) {
		return client.Bucket(b).SignedURL(object, opts)
	}
	return r, nil
}

func (r *PhotoURLResolver) bucket() string {
	if b := strings.TrimSpace(r.Bucket); b != "" {
		return b
	}
	return defaultPhotoBucket
}

func (r *PhotoURLResolver) ResolvePhotoURL(_ context.Context, ref string) (string, error) {
	p := strings.TrimSpace(ref)
	if p == "" {
		return "", nil
	}

	bucket, object, ok := gcscommon.ParseGCSURL(p)
	if !ok {
		if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
			return p, nil
		}
		bucket, object = r.bucket(), strings.TrimLeft(p, "/")
	}
	if object == "" {
		return "", fmt.Errorf("gcs: empty object path in %q", ref)
	}

	if r.sign == nil {
		return gcscommon.GCSPublicURL(bucket, object, defaultPhotoBucket), nil
	}

	now := time.Now
	if r.now != nil {
		now = r.now
	}
	u, err := r.sign(bucket, object, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: now().Add(r.TTL),
	})
	if err != nil {
		return "", fmt.Errorf("gcs: sign %s/%s: %w", bucket, object, err)
	}
	return u, nil
}
