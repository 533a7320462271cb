package storage

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubAWS(t *testing.T) *s3.Options {
	t.Helper()
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-west-1", lo.Region)
		return aws.Config{Region: lo.Region}, nil
	}

	captured := &s3.Options{}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(captured)
		}
		return s3.New(s3.Options{Region: cfg.Region})
	}
	return captured
}

func testConfig() Config {
	return Config{Bucket: "docs", Region: "eu-west-1", AccessKey: "a", SecretKey: "s", BaseEndpoint: "http://127.0.0.1:9000"}
}

func TestNew_WithoutBucketIsNop(t *testing.T) {
	st, err := New(context.Background(), Config{})
	require.NoError(t, err)
	assert.IsType(t, NopStore{}, st)

	key, err := st.Put(context.Background(), "k", "text/plain", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, key)

	_, err = st.PresignGet(context.Background(), "k", time.Minute)
	assert.Error(t, err)
}

func TestNew_ConfiguresClient(t *testing.T) {
	opts := stubAWS(t)

	st, err := New(context.Background(), testConfig())
	require.NoError(t, err)
	assert.IsType(t, &S3Store{}, st)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNew_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := New(context.Background(), testConfig())
	assert.ErrorContains(t, err, "no config")
}

func TestS3Store_Put(t *testing.T) {
	stubAWS(t)
	orig := putObject
	t.Cleanup(func() { putObject = orig })

	var got *s3.PutObjectInput
	var body []byte
	putObject = func(_ *s3.Client, _ context.Context, in *s3.PutObjectInput) error {
		got = in
		body, _ = io.ReadAll(in.Body)
		return nil
	}

	st, err := New(context.Background(), testConfig())
	require.NoError(t, err)

	key, err := st.Put(context.Background(), "documents/a.txt", "text/plain", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "documents/a.txt", key)
	assert.Equal(t, "docs", *got.Bucket)
	assert.Equal(t, "text/plain", *got.ContentType)
	assert.Equal(t, int64(5), *got.ContentLength)
	assert.Equal(t, "hello", string(body))

	putObject = func(*s3.Client, context.Context, *s3.PutObjectInput) error { return errors.New("denied") }
	_, err = st.Put(context.Background(), "k", "text/plain", nil)
	assert.ErrorContains(t, err, "denied")
}

func TestS3Store_PresignGet(t *testing.T) {
	stubAWS(t)
	orig := presignGetObject
	t.Cleanup(func() { presignGetObject = orig })

	presignGetObject = func(_ *s3.PresignClient, _ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "http://signed/" + *in.Bucket + "/" + *in.Key}, nil
	}

	st, err := New(context.Background(), testConfig())
	require.NoError(t, err)

	url, err := st.PresignGet(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "http://signed/docs/k", url)

	presignGetObject = func(*s3.PresignClient, context.Context, *s3.GetObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign failed")
	}
	_, err = st.PresignGet(context.Background(), "k", time.Minute)
	assert.ErrorContains(t, err, "sign failed")
}

func TestDocumentKey(t *testing.T) {
	orig := now
	t.Cleanup(func() { now = orig })
	now = func() time.Time { return time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC) }

	key := DocumentKey("u1", `C:\notes\my notes.md`)
	assert.Regexp(t, regexp.MustCompile(`^documents/u1/2024/03/07/[0-9a-f-]{36}-my_notes\.md$`), key)

	assert.Regexp(t, `-document$`, DocumentKey("u1", ""))
}
