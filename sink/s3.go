package sink

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/etnz/pefolio/config"
)

// Uploader is the subset of the S3 upload manager used by S3.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3 is a destination uploading to a bucket, under a key prefix.
type S3 struct {
	uploader Uploader
	bucket   string
	prefix   string
}

// NewS3 returns a destination for an S3 or S3-compatible bucket. Static
// credentials are used when an access key is configured, the default AWS
// credential chain otherwise.
func NewS3(ctx context.Context, cfg config.S3Config, prefix string) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket name is required")
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(normaliseEndpoint(cfg.Endpoint))
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})
	return NewS3WithUploader(manager.NewUploader(client), cfg.Bucket, prefix), nil
}

// NewS3WithUploader returns a destination using u.
func NewS3WithUploader(u Uploader, bucket, prefix string) *S3 {
	return &S3{uploader: u, bucket: bucket, prefix: prefix}
}

// Key returns the object key of a file name.
func (d *S3) Key(name string) string { return path.Join(d.prefix, name) }

// Put uploads data under the destination prefix.
func (d *S3) Put(ctx context.Context, name string, data []byte, contentType string) error {
	key := d.Key(name)
	_, err := d.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3: put object %s: %w", key, err)
	}
	return nil
}

// normaliseEndpoint makes sure the endpoint has a scheme, https by default.
func normaliseEndpoint(endpoint string) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	return "https://" + endpoint
}
