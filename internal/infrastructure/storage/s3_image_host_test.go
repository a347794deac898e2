package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	listingapp "github.com/homefinder/backend/internal/application/listing"
	"github.com/homefinder/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// fakeS3 is a minimal path-style S3 endpoint for a single bucket
type fakeS3 struct {
	mu           sync.Mutex
	bucket       string
	bucketExists bool
	objects      map[string][]byte
	contentTypes map[string]string
	failPuts     bool
}

func newFakeS3(bucket string) *fakeS3 {
	return &fakeS3{
		bucket:       bucket,
		bucketExists: true,
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := strings.TrimPrefix(r.URL.Path, "/")
	bucket, key, _ := strings.Cut(p, "/")
	if bucket != f.bucket {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if key == "" {
		switch r.Method {
		case http.MethodHead:
			if !f.bucketExists {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusOK)
		case http.MethodPut:
			f.bucketExists = true
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		if f.failPuts {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		f.contentTypes[key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeS3) object(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	return data, ok
}

func newTestHost(t *testing.T, fake *fakeS3) *S3ImageHost {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := s3.New(s3.Options{
		Region:           "us-east-1",
		BaseEndpoint:     aws.String(server.URL),
		UsePathStyle:     true,
		Credentials:      credentials.NewStaticCredentialsProvider("key", "secret", ""),
		RetryMaxAttempts: 1,
	})
	return NewS3ImageHostWithClient(client, fake.bucket, "https://cdn.example.com/", "", zaptest.NewLogger(t))
}

func jpeg(content string) listingapp.ImageFile {
	return listingapp.ImageFile{
		Filename:    "front.JPG",
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
		Content:     strings.NewReader(content),
	}
}

func TestNewS3ImageHost_Validation(t *testing.T) {
	logger := zap.NewNop()

	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ImageHost(nil, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ImageHost(&config.StorageConfig{AccessKey: "k", SecretKey: "s"}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3ImageHost(&config.StorageConfig{Bucket: "b", SecretKey: "s"}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3ImageHost(&config.StorageConfig{Bucket: "b", AccessKey: "k"}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config uses the public base url", func(t *testing.T) {
		host, err := NewS3ImageHost(&config.StorageConfig{
			Bucket:        "homes",
			AccessKey:     "k",
			SecretKey:     "s",
			Endpoint:      "localhost:9000",
			UsePathStyle:  true,
			PublicBaseURL: "https://cdn.example.com/",
			KeyPrefix:     "/photos/",
		}, logger)
		require.NoError(t, err)
		assert.Equal(t, "homes", host.GetBucket())
		assert.Equal(t, "photos", host.keyPrefix)
		assert.Equal(t, "https://cdn.example.com/photos/x.jpg", host.PublicURL("photos/x.jpg"))
	})
}

func TestDefaultPublicBaseURL(t *testing.T) {
	tests := []struct {
		name      string
		endpoint  string
		pathStyle bool
		expected  string
	}{
		{name: "aws", endpoint: "", expected: "https://homes.s3.eu-west-1.amazonaws.com"},
		{name: "path style", endpoint: "http://minio:9000/", pathStyle: true, expected: "http://minio:9000/homes"},
		{name: "virtual host", endpoint: "https://r2.example.com", expected: "https://homes.r2.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, defaultPublicBaseURL(tt.endpoint, "eu-west-1", "homes", tt.pathStyle))
		})
	}
}

func TestS3ImageHost_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the object under the listing prefix", func(t *testing.T) {
		fake := newFakeS3("homes")
		host := newTestHost(t, fake)

		ref, err := host.Upload(ctx, jpeg("jpeg-bytes"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref.PublicID, "listings/"))
		assert.True(t, strings.HasSuffix(ref.PublicID, ".jpg"))
		assert.Equal(t, "https://cdn.example.com/"+ref.PublicID, ref.URL)

		data, ok := fake.object(ref.PublicID)
		require.True(t, ok)
		assert.Equal(t, "jpeg-bytes", string(data))
		assert.Equal(t, "image/jpeg", fake.contentTypes[ref.PublicID])
	})

	t.Run("every upload gets a distinct key", func(t *testing.T) {
		host := newTestHost(t, newFakeS3("homes"))

		a, err := host.Upload(ctx, jpeg("a"))
		require.NoError(t, err)
		b, err := host.Upload(ctx, jpeg("b"))
		require.NoError(t, err)
		assert.NotEqual(t, a.PublicID, b.PublicID)
	})

	t.Run("host errors are returned", func(t *testing.T) {
		fake := newFakeS3("homes")
		fake.failPuts = true
		host := newTestHost(t, fake)

		_, err := host.Upload(ctx, jpeg("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload image")
	})

	t.Run("missing content is rejected", func(t *testing.T) {
		host := newTestHost(t, newFakeS3("homes"))

		_, err := host.Upload(ctx, listingapp.ImageFile{ContentType: "image/png"})
		require.Error(t, err)
	})
}

func TestS3ImageHost_Delete(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3("homes")
	host := newTestHost(t, fake)

	ref, err := host.Upload(ctx, jpeg("bytes"))
	require.NoError(t, err)

	require.NoError(t, host.Delete(ctx, ref.PublicID))
	_, ok := fake.object(ref.PublicID)
	assert.False(t, ok)

	// deleting again is not an error
	assert.NoError(t, host.Delete(ctx, ref.PublicID))
	assert.Error(t, host.Delete(ctx, ""))
}

func TestS3ImageHost_EnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("existing bucket", func(t *testing.T) {
		host := newTestHost(t, newFakeS3("homes"))
		assert.NoError(t, host.EnsureBucket(ctx))
	})

	t.Run("creates a missing bucket", func(t *testing.T) {
		fake := newFakeS3("homes")
		fake.bucketExists = false
		host := newTestHost(t, fake)

		require.NoError(t, host.EnsureBucket(ctx))
		assert.True(t, fake.bucketExists)
	})
}
