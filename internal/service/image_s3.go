package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// S3ImageStore stores images in an S3 bucket under an uploads/ prefix.
// Returned URLs point at the public bucket endpoint, so the bucket must allow
// public reads for the client to load them.
type S3ImageStore struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger
}

// NewS3ImageStore builds an S3-backed store from the default AWS credential
// chain.
func NewS3ImageStore(ctx context.Context, bucket, region string, logger zerolog.Logger) (*S3ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &S3ImageStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: bucket,
		logger: logger.With().Str("component", "s3_image_store").Logger(),
	}, nil
}

// Save uploads the image to the bucket and returns its public URL.
func (s *S3ImageStore) Save(ctx context.Context, r io.Reader, originalName, contentType string, size int64) (string, error) {
	if err := validateUpload(contentType, size); err != nil {
		return "", err
	}

	key := "uploads/" + imageFileName(originalName)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	s.logger.Info().Str("key", key).Msg("image uploaded to S3")
	return url, nil
}

// Delete removes the object behind a previously returned URL.
func (s *S3ImageStore) Delete(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("https://%s.s3.amazonaws.com/", s.bucket)
	key := strings.TrimPrefix(url, prefix)
	if key == url || key == "" {
		return fmt.Errorf("invalid image URL: %q", url)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	s.logger.Info().Str("key", key).Msg("image removed from S3")
	return nil
}
