// Package s3 provides an object store backed by any S3-compatible service
// (MinIO, AWS S3, R2) for the media gateway.
package s3

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	mediagate "github.com/cnyakundi/siddessocial-sub002"
)

// Config holds the connection settings for an S3-compatible backend.
type Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
}

// Store serves objects from a single bucket.
type Store struct {
	client *minio.Client
	bucket string
}

// NewStore creates a Store from the given configuration and verifies the
// bucket exists.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 store: %w: bucket cannot be empty", mediagate.ErrInvalidInput)
	}

	endpoint, secure, err := normalizeEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("s3 store: %w", err)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 store: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("s3 store: check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("s3 store: bucket does not exist: %s", cfg.Bucket)
	}

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// normalizeEndpoint accepts either "host:port" or a full http(s) URL and
// returns the bare host plus whether TLS should be used. A bare host is
// treated as insecure, the common case for a local MinIO.
func normalizeEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}

	if !strings.Contains(raw, "://") {
		return raw, false, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false, err
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid endpoint: %s", raw)
	}
	if u.Path != "" && u.Path != "/" {
		return "", false, fmt.Errorf("endpoint must not contain a path: %s", raw)
	}

	return u.Host, u.Scheme == "https", nil
}

// Fetch stats the object first, clamps the requested range against the
// actual size client-side, and only then issues the ranged read. Relying on
// our own effective range rather than the server's handling keeps the
// 200-versus-206 decision deterministic across S3 implementations, which
// differ in how they treat unsatisfiable ranges.
func (s *Store) Fetch(ctx context.Context, key string, rng *mediagate.RangeSpec) (*mediagate.ObjectHandle, error) {
	stat, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return nil, mediagate.ErrNotFound
		}
		return nil, fmt.Errorf("stat object: %w", err)
	}

	eff := rng.Clamp(stat.Size)

	opts := minio.GetObjectOptions{}
	if eff != nil {
		if err := opts.SetRange(eff.Offset, eff.Offset+eff.Length-1); err != nil {
			return nil, fmt.Errorf("set range: %w", err)
		}
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, opts)
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}

	metadata := make(map[string]string, len(stat.UserMetadata))
	for k, v := range stat.UserMetadata {
		metadata[k] = v
	}

	return &mediagate.ObjectHandle{
		Body:        obj,
		Size:        stat.Size,
		ETag:        quoteETag(stat.ETag),
		ContentType: stat.ContentType,
		Metadata:    metadata,
		Range:       eff,
	}, nil
}

// quoteETag wraps a bare etag in the quotes the ETag header requires; minio
// reports etags unquoted.
func quoteETag(etag string) string {
	if etag == "" || strings.HasPrefix(etag, `"`) {
		return etag
	}
	return `"` + etag + `"`
}
