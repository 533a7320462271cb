// Package storage archives uploaded study documents in an S3-compatible
// object store.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	now = time.Now
)

// Store keeps document originals.
type Store interface {
	// Put stores data and returns its key. An empty key means nothing was
	// stored.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Config describes the S3 endpoint.
type Config struct {
	Bucket       string
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
}

// NopStore is used when no bucket is configured.
type NopStore struct{}

func (NopStore) Put(context.Context, string, string, []byte) (string, error) { return "", nil }

func (NopStore) PresignGet(context.Context, string, time.Duration) (string, error) {
	return "", fmt.Errorf("storage: no bucket configured")
}

// S3Store talks to S3 or MinIO with static credentials and path-style
// addressing.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// New returns an S3Store, or NopStore when cfg.Bucket is empty.
func New(ctx context.Context, cfg Config) (Store, error) {
	if cfg.Bucket == "" {
		return NopStore{}, nil
	}

	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Store{client: client, presign: s3.NewPresignClient(client), bucket: cfg.Bucket}, nil
}

// Put uploads data under key.
func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	err := putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

// PresignGet returns a temporary download URL for key.
func (s *S3Store) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}
	return req.URL, nil
}

// DocumentKey builds a unique key for a user's document.
func DocumentKey(userID, filename string) string {
	d := now()
	name := strings.ReplaceAll(path.Base(strings.ReplaceAll(filename, `\`, "/")), " ", "_")
	if name == "." || name == "/" || name == "" {
		name = "document"
	}
	return fmt.Sprintf("documents/%s/%d/%02d/%02d/%v-%s", userID, d.Year(), d.Month(), d.Day(), uuid.New(), name)
}
