// Package storage archives rendered inspection reports. The backend picks one
// backend at start-up: a local directory, Google Cloud Storage, or an
// S3-compatible bucket through MinIO.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// Archive stores a copy of a generated file under name and returns where it went.
type Archive interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

type Options struct {
	Kind      string
	Dir       string
	GCSBucket string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool
}

// New returns the archive selected by opts.Kind. "none" and "" return nil.
func New(ctx context.Context, opts Options) (Archive, error) {
	switch strings.ToLower(opts.Kind) {
	case "", "none":
		return nil, nil
	case "local":
		return NewLocal(opts.Dir)
	case "gcs":
		return NewGCS(ctx, opts.GCSBucket)
	case "s3", "minio":
		return NewS3(ctx, opts.S3Endpoint, opts.S3AccessKey, opts.S3SecretKey, opts.S3Bucket, opts.S3UseSSL)
	default:
		return nil, fmt.Errorf("unknown report storage %q", opts.Kind)
	}
}

// ObjectName is the archive key of a report: reports/<year>/<file>.
func ObjectName(year int, fileName string) string {
	return fmt.Sprintf("reports/%d/%s", year, fileName)
}
