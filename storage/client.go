// Package storage wraps the S3-compatible object store (Cloudflare R2) that
// holds player photos and release logos.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

// URLTTL is how long presigned download links stay valid.
const URLTTL = 1 * time.Hour

type Client interface {
	// Upload stores the data under a fresh unique key and returns it.
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
	// FileURL returns a presigned, time-limited GET link for the key. An
	// empty key resolves to an empty URL rather than an error so callers
	// can pass through optional photo references unconditionally.
	FileURL(ctx context.Context, key string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]model.File, error)
}

type client struct {
	mc     *minio.Client
	bucket string
}

func New(endpoint, accessKey, secretKey, bucket string) (Client, error) {
	return newClient(endpoint, accessKey, secretKey, bucket, true)
}

// NewForTest connects over plain http, for use against a local minio
// container or httptest server.
func NewForTest(endpoint, accessKey, secretKey, bucket string) (Client, error) {
	return newClient(endpoint, accessKey, secretKey, bucket, false)
}

func newClient(endpoint, accessKey, secretKey, bucket string, secure bool) (Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("error parsing storage endpoint: %w", err)
	}
	host := u.Host
	if host == "" {
		host = endpoint
	}

	mc, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
		Region: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("error creating storage client: %w", err)
	}

	return &client{mc: mc, bucket: bucket}, nil
}

func (c *client) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := fmt.Sprintf("%s-%s", uuid.NewString(), filename)

	_, err := c.mc.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("error uploading %s: %w", filename, err)
	}
	return key, nil
}

func (c *client) FileURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	u, err := c.mc.PresignedGetObject(ctx, c.bucket, key, URLTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("error presigning url for %s: %w", key, err)
	}
	return u.String(), nil
}

func (c *client) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	obj, err := c.mc.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("error fetching %s: %w", key, err)
	}

	// GetObject is lazy, Stat forces the request so missing keys fail here.
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, "", fmt.Errorf("error reading object %s: %w", key, err)
	}
	return obj, info.ContentType, nil
}

func (c *client) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := c.mc.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("error deleting %s: %w", key, err)
	}
	return nil
}

func (c *client) List(ctx context.Context, prefix string) ([]model.File, error) {
	results := make([]model.File, 0, 16)
	for obj := range c.mc.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", obj.Err)
		}
		results = append(results, model.File{
			Key:      obj.Key,
			Filename: obj.Key,
			Size:     obj.Size,
		})
	}
	return results, nil
}
