package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// downloadAttempts is how often a failed GetObject is tried.
const downloadAttempts = 3

// S3API is the subset of the S3 client used by S3Source.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads documents stored under a bucket prefix.
type S3Source struct {
	client S3API
	bucket string
	prefix string
}

// ParseS3URL splits "s3://bucket/prefix" into bucket and prefix.
func ParseS3URL(raw string) (bucket, prefix string, err error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid S3 location %q", raw)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// NewS3Source loads the default AWS configuration and returns a source for
// bucket/prefix. Static keys and a custom endpoint allow S3-compatible stores.
func NewS3Source(ctx context.Context, bucket, prefix string, opts Options) (*S3Source, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3SourceWithClient(client, bucket, prefix), nil
}

// NewS3SourceWithClient returns a source using an existing client.
func NewS3SourceWithClient(client S3API, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

// List returns the supported documents under the prefix, sorted by key.
func (s *S3Source) List(ctx context.Context) ([]Object, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(s.bucket)}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix)
	}

	var objects []Object
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list s3://%s/%s: %w", s.bucket, s.prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") || !supported(key) {
				continue
			}
			objects = append(objects, Object{Key: key, Name: path.Base(key), Size: aws.ToInt64(obj.Size)})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// Read downloads the object at key, retrying transient failures.
func (s *S3Source) Read(ctx context.Context, key string) ([]byte, error) {
	return retry(ctx, downloadAttempts, func() ([]byte, error) {
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get object: %w", err)
		}
		defer func() { _ = out.Body.Close() }()

		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, out.Body); err != nil {
			return nil, fmt.Errorf("failed to read object body: %w", err)
		}
		return buf.Bytes(), nil
	})
}

func (s *S3Source) String() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.prefix)
}
