package storage

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amontes/portfolio-backend/errs"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectClient struct {
	putErr    error
	deleteErr error

	putCalls    int
	deleteCalls int
	lastPut     *s3.PutObjectInput
	lastDelete  *s3.DeleteObjectInput
}

func (f *fakeObjectClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putCalls++
	f.lastPut = params
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectClient) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleteCalls++
	f.lastDelete = params
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &s3.DeleteObjectOutput{}, nil
}

func newTestStore(client *fakeObjectClient, cfg Config) *S3ImageStore {
	if cfg.Bucket == "" {
		cfg.Bucket = "project-images"
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "https://blob.example.com/project-images/"
	}
	return newS3ImageStore(client, cfg)
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads under a fresh uuid name with the original extension", func(t *testing.T) {
		client := &fakeObjectClient{}
		store := newTestStore(client, Config{})

		stored, err := store.Store(ctx, []byte("png-bytes"), "image/png", "Cover Photo.PNG")
		require.NoError(t, err)

		require.True(t, strings.HasSuffix(stored.Name, ".png"), "name %q should keep a lowercased extension", stored.Name)
		_, err = uuid.Parse(strings.TrimSuffix(stored.Name, ".png"))
		assert.NoError(t, err, "name %q should start with a uuid", stored.Name)

		assert.Equal(t, "https://blob.example.com/project-images/"+stored.Name, stored.URL)
		assert.Equal(t, int64(len("png-bytes")), stored.Size)

		require.Equal(t, 1, client.putCalls)
		assert.Equal(t, "project-images", *client.lastPut.Bucket)
		assert.Equal(t, stored.Name, *client.lastPut.Key)
		assert.Equal(t, "image/png", *client.lastPut.ContentType)

		body := new(bytes.Buffer)
		_, err = body.ReadFrom(client.lastPut.Body)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", body.String())
	})

	t.Run("derives the extension from the MIME type when the name has none", func(t *testing.T) {
		client := &fakeObjectClient{}
		store := newTestStore(client, Config{})

		stored, err := store.Store(ctx, []byte("jpeg-bytes"), "image/jpeg", "upload")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(stored.Name, ".jpg"))
	})

	t.Run("MIME parameters are ignored when matching the allow-list", func(t *testing.T) {
		client := &fakeObjectClient{}
		store := newTestStore(client, Config{})

		_, err := store.Store(ctx, []byte("webp-bytes"), "image/webp; charset=binary", "a.webp")
		require.NoError(t, err)
		assert.Equal(t, "image/webp", *client.lastPut.ContentType)
	})

	t.Run("rejects a disallowed type before any network call", func(t *testing.T) {
		client := &fakeObjectClient{}
		store := newTestStore(client, Config{})

		_, err := store.Store(ctx, []byte("%PDF-1.7"), "application/pdf", "resume.pdf")
		require.Error(t, err)

		assert.True(t, errs.IsUnsupportedImageType(err))
		assert.Zero(t, client.putCalls)
	})

	t.Run("rejects an oversized payload before any network call", func(t *testing.T) {
		client := &fakeObjectClient{}
		store := newTestStore(client, Config{MaxBytes: 8})

		_, err := store.Store(ctx, []byte("way past eight"), "image/png", "big.png")
		require.Error(t, err)

		assert.True(t, errs.IsImageTooLarge(err))
		assert.Zero(t, client.putCalls)
	})

	t.Run("a payload exactly at the limit is accepted", func(t *testing.T) {
		client := &fakeObjectClient{}
		store := newTestStore(client, Config{MaxBytes: 9})

		_, err := store.Store(ctx, []byte("nine byte"), "image/png", "fit.png")
		assert.NoError(t, err)
	})

	t.Run("a put failure surfaces as an upload error", func(t *testing.T) {
		client := &fakeObjectClient{putErr: errors.New("access denied")}
		store := newTestStore(client, Config{})

		_, err := store.Store(ctx, []byte("png-bytes"), "image/png", "a.png")
		require.Error(t, err)
		assert.True(t, errs.IsUploadFailed(err))
	})

	t.Run("a custom allow-list replaces the default", func(t *testing.T) {
		client := &fakeObjectClient{}
		store := newTestStore(client, Config{AllowedTypes: []string{"image/svg+xml"}})

		_, err := store.Store(ctx, []byte("<svg/>"), "image/svg+xml", "icon.svg")
		assert.NoError(t, err)

		_, err = store.Store(ctx, []byte("png-bytes"), "image/png", "a.png")
		assert.True(t, errs.IsUnsupportedImageType(err))
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes by name", func(t *testing.T) {
		client := &fakeObjectClient{}
		store := newTestStore(client, Config{})

		require.NoError(t, store.Remove(ctx, "abc.png"))
		require.Equal(t, 1, client.deleteCalls)
		assert.Equal(t, "abc.png", *client.lastDelete.Key)
		assert.Equal(t, "project-images", *client.lastDelete.Bucket)
	})

	t.Run("propagates the failure to the caller", func(t *testing.T) {
		client := &fakeObjectClient{deleteErr: errors.New("not reachable")}
		store := newTestStore(client, Config{})

		assert.Error(t, store.Remove(ctx, "abc.png"))
	})
}

func TestFileNameFromURL(t *testing.T) {
	cases := []struct {
		rawURL   string
		expected string
	}{
		{"https://blob.example.com/project-images/abc.png", "abc.png"},
		{"https://blob.example.com/project-images/abc.png?token=xyz", "abc.png"},
		{"https://blob.example.com/project-images/abc.png#fragment", "abc.png"},
		{"https://blob.example.com/project-images/abc.png/", "abc.png"},
		{"abc.png", "abc.png"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, FileNameFromURL(tc.rawURL), "url %q", tc.rawURL)
	}
}
