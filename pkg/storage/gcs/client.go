package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/fixnest/fixnest-backend/pkg/config"
	"github.com/fixnest/fixnest-backend/pkg/logger"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const pingTimeout = 5 * time.Second

// Client wraps the Cloud Storage SDK with the bucket configured for media.
type Client struct {
	raw           *storage.Client
	defaultBucket string
	publicBase    string
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// NewClient builds the storage client using explicit credentials when
// configured, otherwise application-default credentials.
func NewClient(ctx context.Context, cfg config.GCSConfig, gcp config.GCPConfig, logg *logger.Logger) (*Client, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("gcs bucket name is required")
	}

	var opts []option.ClientOption
	switch {
	case gcp.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(gcp.CredentialsJSON)))
	case gcp.ApplicationCredentials != "":
		opts = append(opts, option.WithCredentialsFile(gcp.ApplicationCredentials))
	}

	raw, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gcs client: %w", err)
	}

	client := &Client{
		raw:           raw,
		defaultBucket: cfg.BucketName,
		publicBase:    cfg.PublicBase,
	}

	if err := client.Ping(ctx); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("gcs health check failed: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "gcs client initialized")
	}

	return client, nil
}

// DefaultBucket returns the configured media bucket name.
func (c *Client) DefaultBucket() string {
	if c == nil {
		return ""
	}
	return c.defaultBucket
}

// Ping lists a single object to verify bucket access.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.raw == nil {
		return errors.New("gcs client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	it := c.raw.Bucket(c.defaultBucket).Objects(ctx, nil)
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("gcs object check failed: %w", err)
	}
	return nil
}

// Upload streams the reader into the default bucket under the given key and
// returns the public object URL.
func (c *Client) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if c == nil || c.raw == nil {
		return "", errors.New("gcs client not initialized")
	}
	if key == "" {
		return "", errors.New("object key is required")
	}

	w := c.raw.Bucket(c.defaultBucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("writing object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing object %s: %w", key, err)
	}

	return c.ObjectURL(key), nil
}

// Delete removes the object at the given key, ignoring objects that are
// already gone.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.raw == nil {
		return errors.New("gcs client not initialized")
	}
	err := c.raw.Bucket(c.defaultBucket).Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

// ObjectURL returns the public URL for a stored object.
func (c *Client) ObjectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicBase, c.defaultBucket, key)
}

// Close releases the underlying SDK client.
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}
