// internal/adapters/out/gcs/common/gcs_url.go
package common

import (
	"fmt"
	"net/url"
	"strings"
)

// GCSPublicURL builds a public GCS URL.
// An empty bucket falls back to defaultBucket; leading "/" on objectPath is dropped.
func GCSPublicURL(bucket, objectPath, defaultBucket string) string {
	b := strings.TrimSpace(bucket)
	if b == "" {
		b = strings.TrimSpace(defaultBucket)
	}
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b, obj)
}

// ParseGCSURL returns (bucket, objectPath, ok) for
//   - gs://<bucket>/<object>
//   - https://storage.googleapis.com/<bucket>/<object>
//   - https://storage.cloud.google.com/<bucket>/<object>
func ParseGCSURL(u string) (string, string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil {
		return "", "", false
	}

	if strings.EqualFold(parsed.Scheme, "gs") {
		obj, err := url.PathUnescape(strings.TrimLeft(parsed.EscapedPath(), "/"))
		if err != nil || parsed.Host == "" || obj == "" {
			return "", "", false
		}
		return parsed.Host, obj, true
	}

	host := strings.ToLower(parsed.Host)
	if host != "storage.googleapis.com" && host != "storage.cloud.google.com" {
		return "", "", false
	}

	p := strings.TrimLeft(parsed.EscapedPath(), "/")
	parts := strings.SplitN(p, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	objectPath, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", "", false
	}
	return parts[0], objectPath, true
}
