package storage

import (
	"bytes"
	"context"
	"path"
	"strings"

	"github.com/amontes/portfolio-backend/errs"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultMaxUploadBytes = 10 << 20 // 10 MiB

// DefaultAllowedImageTypes is the MIME allow-list applied when none is
// configured.
var DefaultAllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// extensions used when the original file name carries none
var mimeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// objectClient is the slice of the S3 API the store uses.
type objectClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Config holds the connection settings for an S3-compatible blob store, such
// as Supabase Storage's S3 endpoint.
type Config struct {
	Endpoint      string // empty for plain AWS S3
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // prefix from which stored objects are publicly served
	MaxBytes      int64
	AllowedTypes  []string
}

// S3ImageStore implements ImageStore against an S3-compatible bucket.
type S3ImageStore struct {
	client        objectClient
	bucket        string
	publicBaseURL string
	maxBytes      int64
	allowedTypes  []string
	logger        zerolog.Logger
}

func NewS3ImageStore(ctx context.Context, cfg Config) (*S3ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// Supabase and most S3-compatible stores require path-style addressing
			o.UsePathStyle = true
		}
	})

	return newS3ImageStore(client, cfg), nil
}

func newS3ImageStore(client objectClient, cfg Config) *S3ImageStore {
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	allowed := cfg.AllowedTypes
	if len(allowed) == 0 {
		allowed = DefaultAllowedImageTypes
	}

	return &S3ImageStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxBytes:      maxBytes,
		allowedTypes:  allowed,
		logger:        log.With().Str("component", "imageStore").Logger(),
	}
}

// Store validates the payload, uploads it under a fresh unique name and
// returns the name alongside the public URL. Nothing is written when
// validation fails.
func (s *S3ImageStore) Store(ctx context.Context, data []byte, mimeType, originalName string) (*StoredImage, error) {
	mimeType = normalizeMIME(mimeType)
	if !s.typeAllowed(mimeType) {
		return nil, errs.NewUnsupportedImageTypeError(mimeType, s.allowedTypes)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, errs.NewImageTooLargeError(int64(len(data)), s.maxBytes)
	}

	name := uuid.New().String() + extensionFor(originalName, mimeType)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return nil, errs.NewUploadFailedError(err)
	}

	return &StoredImage{
		Name: name,
		URL:  s.publicBaseURL + "/" + name,
		Size: int64(len(data)),
	}, nil
}

// Remove deletes a stored object by name. Callers treat failures as
// best-effort and only log them; the error is still returned so they can.
func (s *S3ImageStore) Remove(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to delete stored image")
	}
	return err
}

func (s *S3ImageStore) typeAllowed(mimeType string) bool {
	for _, allowed := range s.allowedTypes {
		if allowed == mimeType {
			return true
		}
	}
	return false
}

// normalizeMIME strips parameters such as "; charset=binary"
func normalizeMIME(mimeType string) string {
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func extensionFor(originalName, mimeType string) string {
	if ext := strings.ToLower(path.Ext(originalName)); ext != "" {
		return ext
	}
	return mimeExtensions[mimeType]
}
