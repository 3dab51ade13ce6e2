package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/dmitrijs2005/ballotkeeper/internal/server/config"
)

const presignTTL = 15 * time.Minute

// UploadTarget tells the console where to PUT an image and where it will be
// served from afterwards.
type UploadTarget struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
}

type ImageStore interface {
	PresignUpload(ctx context.Context, contentType string) (*UploadTarget, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// S3ImageStore presigns PUTs against an S3 compatible bucket (MinIO in
// development).
type S3ImageStore struct {
	config *sc.Config
	now    func() time.Time
}

func NewS3ImageStore(cfg *sc.Config) *S3ImageStore {
	return &S3ImageStore{config: cfg, now: time.Now}
}

// storageKey is candidates/yyyy/mm/dd/<uuid>.
func (s *S3ImageStore) storageKey() string {
	d := s.now()
	return fmt.Sprintf("candidates/%d/%02d/%02d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *S3ImageStore) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})
	return newS3PresignClient(client), nil
}

func (s *S3ImageStore) PresignUpload(ctx context.Context, contentType string) (*UploadTarget, error) {
	pc, err := s.presignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := s.storageKey()

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &UploadTarget{
		Key:       key,
		UploadURL: req.URL,
		ImageURL:  s.config.ImageBaseURL() + "/" + key,
	}, nil
}
