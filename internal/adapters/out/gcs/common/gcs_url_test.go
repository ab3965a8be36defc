package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGCSPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/b/x/y.jpg", GCSPublicURL("b", "/x/y.jpg", "d"))
	assert.Equal(t, "https://storage.googleapis.com/d/y.jpg", GCSPublicURL(" ", "y.jpg", "d"))
}

func TestParseGCSURL(t *testing.T) {
	cases := []struct {
		in     string
		bucket string
		object string
		ok     bool
	}{
		{"gs://photos/polo/black.jpg", "photos", "polo/black.jpg", true},
		{"https://storage.googleapis.com/photos/polo/black%20m.jpg", "photos", "polo/black m.jpg", true},
		{"https://storage.cloud.google.com/photos/a.jpg", "photos", "a.jpg", true},
		{"https://cdn.example.com/photos/a.jpg", "", "", false},
		{"https://storage.googleapis.com/photos", "", "", false},
		{"gs://photos", "", "", false},
		{"polo/black.jpg", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			b, obj, ok := ParseGCSURL(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.bucket, b)
			assert.Equal(t, tc.object, obj)
		})
	}
}
