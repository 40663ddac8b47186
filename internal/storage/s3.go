package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
)

const uploadURLExpiry = 15 * time.Minute

// AttachmentStorage hands out direct-upload URLs for message attachments.
// The URL is bound to the declared size and content type, so the upload
// cannot exceed what was validated when the attachment was created.
type AttachmentStorage interface {
	PresignUpload(ctx context.Context, key, contentType string, size int64) (url string, expiresAt time.Time, err error)
}

type S3Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Client builds a path-style client for Supabase storage's S3 endpoint.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = true
	}), nil
}

// removeDisableGzip works around S3 signature errors on Supabase storage.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}

type s3AttachmentStorage struct {
	bucket    string
	presigner *s3.PresignClient
	now       func() time.Time
}

func NewS3AttachmentStorage(client *s3.Client, bucket string) AttachmentStorage {
	return &s3AttachmentStorage{
		bucket:    bucket,
		presigner: s3.NewPresignClient(client),
		now:       time.Now,
	}
}

func (s *s3AttachmentStorage) PresignUpload(ctx context.Context, key, contentType string, size int64) (string, time.Time, error) {
	if size <= 0 {
		return "", time.Time{}, fmt.Errorf("presign upload for %s: invalid size %d", key, size)
	}
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}, s3.WithPresignExpires(uploadURLExpiry))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("presign upload for %s: %w", key, err)
	}
	return req.URL, s.now().Add(uploadURLExpiry), nil
}

// AttachmentKey is the object key for an attachment. The file name is
// reduced to its base name so callers cannot escape the message prefix.
func AttachmentKey(messageID, attachmentID, fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "file"
	}
	return fmt.Sprintf("messages/%s/%s/%s", messageID, attachmentID, base)
}
