package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "s3.key"
	otelAttrBucket    = "s3.bucket"
	otelAttrSize      = "s3.size"
)

// S3 stores room photos, slider images, guest documents and archived reports.
// An empty bucket name selects the configured default bucket.
type S3 interface {
	UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error)
	UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error)
	DeleteFile(ctx context.Context, bucketName, directory, objectName string) error
	GetObjectNameFromURL(bucketName, url string) (objectName string)
}

// ObjectName returns a unique object name that keeps the extension of fileName.
func ObjectName(fileName string) string {
	return uuid.NewString() + strings.ToLower(path.Ext(fileName))
}

type s3Impl struct {
	client *s3.Client
	cfg    *config.Config
	otel   otel.Otel
}

type target struct {
	bucket string
	key    string
}

func (svc *s3Impl) target(bucket, directory, name string) target {
	if bucket == "" {
		bucket = svc.cfg.External.S3.BucketName
	}

	return target{bucket: bucket, key: path.Join(directory, name)}
}

func (svc *s3Impl) publicURL(key string) string {
	return strings.TrimSuffix(svc.cfg.External.S3.PublicDomain, "/") + "/" + key
}

func (svc *s3Impl) UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (string, error) {
	contentType := fileHeader.Header.Get(constant.RequestHeaderContentType)

	// multipart.File is seekable, so the SDK can compute the payload hash without buffering.
	return svc.put(ctx, "UploadFile", svc.target(bucketName, directory, fileName), contentType, file, fileHeader.Size)
}

func (svc *s3Impl) UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (string, error) {
	return svc.put(ctx, "UploadFileBytes", svc.target(bucketName, directory, fileName), contentType, bytes.NewReader(fileData), int64(len(fileData)))
}

func (svc *s3Impl) put(ctx context.Context, op string, dst target, contentType string, body io.ReadSeeker, size int64) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+"."+op)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrBucket:    dst.bucket,
		otelAttrObjectKey: dst.key,
		otelAttrSize:      size,
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(dst.bucket),
		Key:           aws.String(dst.key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", dst.bucket).Str("key", dst.key).Msg("failed to upload object")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.publicURL(dst.key), nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, bucketName, directory, objectName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	dst := svc.target(bucketName, directory, objectName)

	scope.SetAttributes(map[string]any{
		otelAttrBucket:    dst.bucket,
		otelAttrObjectKey: dst.key,
	})

	if _, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(dst.bucket),
		Key:    aws.String(dst.key),
	}); err != nil {
		log.Error().Err(err).Str("bucket", dst.bucket).Str("key", dst.key).Msg("failed to delete object")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// GetObjectNameFromURL recovers the object key from a public URL or a path style endpoint URL.
// URLs pointing anywhere else yield an empty name.
func (svc *s3Impl) GetObjectNameFromURL(bucketName, url string) string {
	dst := svc.target(bucketName, "", "")
	s3Cfg := svc.cfg.External.S3

	for _, base := range []string{s3Cfg.PublicDomain, strings.TrimSuffix(s3Cfg.APIEndpoint, "/") + "/" + dst.bucket} {
		base = strings.TrimSuffix(base, "/")
		if base == "" {
			continue
		}

		if name, found := strings.CutPrefix(url, base+"/"); found {
			return name
		}
	}

	return constant.Empty
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	s3Cfg := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s3Cfg.AccessKeyID, s3Cfg.SecretAccessKey, "")),
		awsConfig.WithRegion(s3Cfg.Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load S3 configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3Cfg.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(s3Cfg.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}
