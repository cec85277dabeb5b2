// Package s3 implements blob storage against any S3-compatible endpoint.
package s3

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/AryanGore/LabDrop/internal/domain/services"
)

const pingTimeout = 30 * time.Second

// Config holds the connection settings for the blob store
type Config struct {
	Endpoint  string // optional, empty means AWS
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

// Client stores and serves file bytes in a single bucket
type Client struct {
	client    *awss3.Client
	presigner *awss3.PresignClient
	bucket    string
}

var _ services.BlobStore = (*Client)(nil)

// NewClient builds the S3 client and verifies the bucket is reachable
func NewClient(ctx context.Context, conf Config) (*Client, error) {
	if conf.AccessKey == "" || conf.SecretKey == "" || conf.Bucket == "" {
		return nil, fmt.Errorf("missing required configuration: access key, secret key, and bucket are required")
	}

	creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		conf.AccessKey,
		conf.SecretKey,
		"",
	))

	opts := awss3.Options{
		Region:           conf.Region,
		Credentials:      creds,
		RetryMode:        aws.RetryModeAdaptive,
		RetryMaxAttempts: 3,
	}
	if conf.Endpoint != "" {
		opts.BaseEndpoint = aws.String(conf.Endpoint)
		// MinIO and most self-hosted gateways only route path-style requests
		opts.UsePathStyle = true
	}

	client := awss3.New(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	_, err := client.HeadBucket(pingCtx, &awss3.HeadBucketInput{
		Bucket: aws.String(conf.Bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to access bucket %s: %w", conf.Bucket, err)
	}

	return &Client{
		client:    client,
		presigner: awss3.NewPresignClient(client),
		bucket:    conf.Bucket,
	}, nil
}

// Put streams the body into the bucket under key
func (c *Client) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	_, err := c.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return nil
}

// PresignGet returns a time-limited URL for downloading the object
func (c *Client) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", key, err)
	}
	return req.URL, nil
}

// Delete removes the object, treating a missing key as success
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}
