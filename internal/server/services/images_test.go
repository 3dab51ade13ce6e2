package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/dmitrijs2005/ballotkeeper/internal/server/config"
)

func newImageStore() *S3ImageStore {
	s := NewS3ImageStore(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "candidates",
	})
	s.now = func() time.Time { return time.Date(2026, 4, 7, 12, 0, 0, 0, time.UTC) }
	return s
}

// stubAWS replaces the SDK seams and restores them when the test ends.
func stubAWS(t *testing.T, loadErr error) *s3.Options {
	t.Helper()
	origLoad, origNewS3, origNewPre, origPut := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient, presignPutObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, loadErr
	}

	captured := &s3.Options{}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(captured)
		}
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	return captured
}

func TestS3ImageStore_PresignUpload(t *testing.T) {
	opts := stubAWS(t, nil)

	var gotIn *s3.PutObjectInput
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotIn = in
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/candidates/" + *in.Key + "?sig=1"}, nil
	}

	got, err := newImageStore().PresignUpload(context.Background(), "image/png")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^candidates/2026/04/07/[0-9a-f-]{36}$`), got.Key)
	assert.Equal(t, "http://127.0.0.1:9000/candidates/"+got.Key, got.ImageURL)
	assert.Contains(t, got.UploadURL, "sig=1")

	require.NotNil(t, gotIn)
	assert.Equal(t, "candidates", *gotIn.Bucket)
	assert.Equal(t, "image/png", *gotIn.ContentType)

	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestS3ImageStore_LoadConfigError(t *testing.T) {
	stubAWS(t, errors.New("load-fail"))

	_, err := newImageStore().PresignUpload(context.Background(), "image/png")
	assert.EqualError(t, err, "load-fail")
}

func TestS3ImageStore_PresignError(t *testing.T) {
	stubAWS(t, nil)
	presignPutObject = func(*s3.PresignClient, context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-put-fail")
	}

	_, err := newImageStore().PresignUpload(context.Background(), "image/jpeg")
	assert.ErrorContains(t, err, "presign-put-fail")
}
