// Package storage lists and reads the resume documents of an HR batch from a
// local directory or an S3 bucket.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
)

// Object is a document available from a source.
type Object struct {
	Key  string
	Name string
	Size int64
}

// DocumentSource lists and reads batch documents.
type DocumentSource interface {
	List(ctx context.Context) ([]Object, error)
	Read(ctx context.Context, key string) ([]byte, error)
	String() string
}

// Options configures Open.
type Options struct {
	// Region, Endpoint and static keys apply to s3:// locations only.
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Open returns the source for location: "s3://bucket/prefix" or a directory path.
func Open(ctx context.Context, location string, opts Options) (DocumentSource, error) {
	if strings.HasPrefix(location, "s3://") {
		bucket, prefix, err := ParseS3URL(location)
		if err != nil {
			return nil, err
		}
		return NewS3Source(ctx, bucket, prefix, opts)
	}
	return NewLocalSource(location)
}

// supported reports whether name has a document extension the analyzer can read.
func supported(name string) bool {
	_, err := ingestion.DetectFormat(name, "")
	return err == nil
}

// retry runs fn up to attempts times with a linear backoff, stopping early
// when ctx is done.
func retry[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(time.Duration(500*(i+1)) * time.Millisecond):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
