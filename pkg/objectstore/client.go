// Package objectstore wraps the S3-compatible blob store (Backblaze B2)
// behind the small interface the upload coordinator needs.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Error kinds for the three storage failure categories. Put wraps its
// return values in exactly one of these.
var (
	ErrCredentialsMissing = errors.New("object storage credentials are not configured")
	ErrClient             = errors.New("object storage rejected the request")
	ErrUnknown            = errors.New("object storage request failed")
)

// Uploader is the part of the blob store the upload coordinator
// depends on.
type Uploader interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

// Config holds the storage connection details.
type Config struct {
	KeyID    string
	AppKey   string
	Bucket   string
	Region   string
	S3Domain string // e.g. "backblazeb2.com"
}

// Client is a minio-backed Uploader.
type Client struct {
	cfg   Config
	minio *minio.Client
}

// NewClient creates a storage client. Construction never fails on
// missing credentials; Put reports them at call time instead.
func NewClient(cfg Config) (*Client, error) {
	endpoint := fmt.Sprintf("s3.%s.%s", cfg.Region, cfg.S3Domain)
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.KeyID, cfg.AppKey, ""),
		Secure: true,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}
	return &Client{cfg: cfg, minio: mc}, nil
}

// Put uploads one object under key. The error is classified into the
// package's three kinds so callers can map each to its own response.
func (c *Client) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if c.cfg.KeyID == "" || c.cfg.AppKey == "" || c.cfg.Bucket == "" {
		return ErrCredentialsMissing
	}

	_, err := c.minio.PutObject(ctx, c.cfg.Bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code != "" {
			return fmt.Errorf("%w: %s", ErrClient, resp.Code)
		}
		return fmt.Errorf("%w: %v", ErrUnknown, err)
	}
	return nil
}

// PublicURL builds the public URL for an uploaded key following the
// bucket/region/domain convention of the provider.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.%s/%s", c.cfg.Bucket, c.cfg.Region, c.cfg.S3Domain, key)
}
