package output

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-weekend-pathtracer/pkg/config"
	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 30 * time.Second

// S3Publisher uploads rendered images to a bucket
type S3Publisher struct {
	client s3iface.S3API
	bucket string
	prefix string
	logger core.Logger
}

// NewS3Publisher creates a publisher from the publish settings. Static
// credentials are used when both keys are set, otherwise the default AWS chain.
func NewS3Publisher(cfg config.PublishConfig, logger core.Logger) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("creating aws session: %w", err)
	}
	return NewS3PublisherWithClient(s3.New(sess), cfg.Bucket, cfg.Prefix, logger), nil
}

// NewS3PublisherWithClient creates a publisher around an existing client
func NewS3PublisherWithClient(client s3iface.S3API, bucket, prefix string, logger core.Logger) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// Key returns the object key for a local file name
func (p *S3Publisher) Key(name string) string {
	return path.Join(p.prefix, filepath.Base(name))
}

// Publish uploads data under key
func (p *S3Publisher) Publish(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if p.logger != nil {
		p.logger.Printf("Uploaded s3://%s/%s (%d bytes)\n", p.bucket, key, size)
	}
	return nil
}

// PublishFile uploads a saved image, keyed by its base name under the prefix
func (p *S3Publisher) PublishFile(ctx context.Context, filePath string) (string, error) {
	format, err := FormatFromPath(filePath)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filePath, err)
	}

	key := p.Key(filePath)
	if err := p.Publish(ctx, key, data, format.ContentType()); err != nil {
		return "", err
	}
	return key, nil
}
