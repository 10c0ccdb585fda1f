// Package storage implements the object-store side of the vault: uploading
// document bytes to an S3-compatible backend (AWS S3 or minio).
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/docvault/docvault/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

type S3Uploader struct {
	config *sc.Config
}

func NewS3Uploader(cfg *sc.Config) *S3Uploader {
	return &S3Uploader{config: cfg}
}

// ObjectKey builds a collision-free storage key for a user's file,
// "user_<ownerID>/<uuid><ext>". The original filename only contributes its
// extension; the uuid keeps two identically named uploads apart.
func ObjectKey(ownerID, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("user_%s/%s%s", ownerID, uuid.New(), ext)
}

func (u *S3Uploader) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(u.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.config.S3AccessKey,
			u.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(u.config.S3BaseEndpoint)
	})

	return client, nil
}

// Upload stores the content under a fresh object key and returns the key.
func (u *S3Uploader) Upload(ctx context.Context, ownerID, filename string, content io.Reader) (string, error) {

	client, err := u.getClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := u.config.S3Bucket
	key := ObjectKey(ownerID, filename)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   content,
	})
	if err != nil {
		return "", fmt.Errorf("error uploading object: %w", err)
	}

	return key, nil
}
