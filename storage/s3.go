package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

const minMultipartSize = 5 << 20

type S3 struct {
	C       *s3.Client
	Bucket  *string
	BaseURL string
}

func NewS3() (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("aws.access_key_id"),
			viper.GetString("aws.secret_access_key"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(viper.GetString("aws.bucket"))
	region := viper.GetString("aws.region")

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Region = region
	})

	_, err = client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return nil, fmt.Errorf("bucket '%s' does not exist", *bucket)
			}
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	baseURL := viper.GetString("aws.public_base_url")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", *bucket, region)
	}

	return &S3{
		C:       client,
		Bucket:  bucket,
		BaseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *S3) Upload(ctx context.Context, sourcePath, key string) (string, error) {
	f, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to open source file, %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat source file, %w", err)
	}

	contentType := "application/octet-stream"
	if mime, err := mimetype.DetectFile(sourcePath); err == nil {
		contentType = mime.String()
	}

	input := &s3.PutObjectInput{
		Bucket:        s.Bucket,
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(stat.Size()),
		ContentType:   aws.String(contentType),
	}

	if stat.Size() > minMultipartSize {
		uploader := manager.NewUploader(s.C, func(u *manager.Uploader) {
			u.Concurrency = 5
			u.PartSize = 5 << 20
		})

		_, err = uploader.Upload(ctx, input)
	} else {
		_, err = s.C.PutObject(ctx, input)
	}
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3, %w", err)
	}

	return s.BaseURL + "/" + key, nil
}

func (s *S3) Delete(ctx context.Context, fileURL string) (bool, error) {
	key, err := s.keyFor(fileURL)
	if err != nil {
		return false, err
	}

	ok, err := s.Exists(ctx, fileURL)
	if err != nil {
		return false, err
	}

	if !ok {
		return false, nil
	}

	_, err = s.C.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: s.Bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete file from S3, %w", err)
	}

	return true, nil
}

func (s *S3) Exists(ctx context.Context, fileURL string) (bool, error) {
	key, err := s.keyFor(fileURL)
	if err != nil {
		return false, err
	}

	_, err = s.C.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: s.Bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return false, nil
			}
		}

		return false, fmt.Errorf("failed to check if file exists, %w", err)
	}

	return true, nil
}

func (s *S3) keyFor(fileURL string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("malformed file URL, %w", err)
	}

	return strings.TrimPrefix(u.Path, "/"), nil
}
