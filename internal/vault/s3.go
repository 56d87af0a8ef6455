package vault

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const s3AccessibilityMeta = "accessibility"

// S3Config holds the settings for the S3/MinIO backend.
type S3Config struct {
	Region          string
	BaseEndpoint    string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string

	// Prefix namespaces object keys inside a shared bucket.
	Prefix string
}

// S3 stores entries as objects in an S3-compatible bucket (AWS or MinIO),
// one object per key. The accessibility policy rides along as object
// metadata so it survives a round trip.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // токен (не нужен)
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true // MinIO
		}
	})

	return &S3{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *S3) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

func (s *S3) Add(ctx context.Context, key string, payload []byte, acc Accessibility) error {
	exists, err := s.head(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}

	return s.put(ctx, key, payload, acc)
}

func (s *S3) Query(ctx context.Context, key string, wantData bool) ([]byte, error) {
	if !wantData {
		exists, err := s.head(ctx, key)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrNotFound
		}
		return nil, nil
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if s3IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, s3BackendErr(err)
	}
	defer out.Body.Close()

	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, s3BackendErr(err)
	}
	return payload, nil
}

func (s *S3) Update(ctx context.Context, key string, payload []byte, acc Accessibility) error {
	exists, err := s.head(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	return s.put(ctx, key, payload, acc)
}

func (s *S3) Delete(ctx context.Context, key string) error {
	// DeleteObject is idempotent in S3, so probe first to report absence.
	exists, err := s.head(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return s3BackendErr(err)
	}
	return nil
}

func (s *S3) put(ctx context.Context, key string, payload []byte, acc Accessibility) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:   aws.String(s.bucket),
		Key:      aws.String(s.objectKey(key)),
		Body:     bytes.NewReader(payload),
		Metadata: map[string]string{s3AccessibilityMeta: strconv.Itoa(int(acc))},
	})
	if err != nil {
		return s3BackendErr(err)
	}
	return nil
}

func (s *S3) head(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if s3IsNotFound(err) {
			return false, nil
		}
		return false, s3BackendErr(err)
	}
	return true, nil
}

// s3IsNotFound matches the shapes S3 uses for a missing object: NoSuchKey
// from GetObject, NotFound from HeadObject, and the bare "NotFound" API code
// some S3-compatible servers return.
func s3IsNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound"
}

func s3BackendErr(err error) *BackendError {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return backendErr("s3", apiErr.ErrorCode(), err)
	}
	return backendErr("s3", "", err)
}
