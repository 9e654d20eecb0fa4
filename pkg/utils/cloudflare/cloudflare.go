package cloudflare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"brotech_admin/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("blob store is not configured")

// ObjectAPI is the subset of the S3 client used here.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Client uploads to and deletes from an R2 bucket.
type Client struct {
	api     ObjectAPI
	bucket  string
	baseURL string
}

func getS3Client(ctx context.Context, cfg config.R2Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return client, nil
}

func NewClient(ctx context.Context, cfg config.R2Config) (*Client, error) {
	if cfg.AccountID == "" || cfg.BucketName == "" {
		return nil, ErrNotConfigured
	}
	api, err := getS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(api, cfg.BucketName, cfg.PublicBaseURL), nil
}

func New(api ObjectAPI, bucket, publicBaseURL string) *Client {
	return &Client{api: api, bucket: bucket, baseURL: strings.TrimRight(publicBaseURL, "/")}
}

// PublicURL escapes every segment of key, so names with spaces or non-ASCII
// characters stay valid URLs.
func (c *Client) PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return c.baseURL + "/" + strings.Join(segments, "/")
}

// Upload stores body under key and returns the public URL. progress, if not
// nil, receives 0 before the transfer and 100 once it completed.
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string, progress func(pct int)) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("could not read upload: %w", err)
	}
	// Gönderilen uzunluk her zaman okunan veridir
	if size > 0 && size != int64(len(data)) {
		zap.L().Warn("Upload size differs from body", zap.String("key", key), zap.Int64("declared", size), zap.Int("actual", len(data)))
	}
	size = int64(len(data))

	pr := newProgressReader(bytes.NewReader(data), progress)
	pr.report()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          pr,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	// Gövde imzalanmaz, böylece ilerleme tek okumada raporlanır
	_, err = c.api.PutObject(ctx, input, s3.WithAPIOptions(v4.SwapComputePayloadSHA256ForUnsignedPayloadMiddleware))
	if err != nil {
		return "", fmt.Errorf("could not upload file to R2: %w", err)
	}
	pr.done()

	publicURL := c.PublicURL(key)
	zap.L().Info("Uploaded object", zap.String("file", GetFileNameFromURL(publicURL)), zap.String("key", key), zap.Int64("size", size))
	return publicURL, nil
}

// Delete removes the object behind a URL returned by Upload.
func (c *Client) Delete(ctx context.Context, fullURL string) error {
	objectKey, ok := c.objectKeyFromURL(fullURL)
	if !ok {
		return fmt.Errorf("url %q does not belong to this bucket", fullURL)
	}

	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("could not delete file from R2: %w", err)
	}
	return nil
}

// GetFileNameFromURL sadece dosya adını döndürür
func GetFileNameFromURL(rawURL string) string {
	parts := strings.Split(rawURL, "/")
	name := parts[len(parts)-1]
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

func (c *Client) objectKeyFromURL(rawURL string) (string, bool) {
	escaped, ok := strings.CutPrefix(rawURL, c.baseURL+"/")
	if !ok || escaped == "" {
		return "", false
	}
	key, err := url.PathUnescape(escaped)
	if err != nil {
		return "", false
	}
	return key, true
}
