package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/dmitrijs2005/docscan/internal/logging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is the subset of the S3 client the store uses; a narrow interface
// keeps tests free of a live endpoint.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Config holds the settings for an S3-compatible image backend
// (MinIO included).
type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// S3Store keeps captured images in an S3-compatible bucket under
// images/<document id>. Used by installs that back scans up off-device.
type S3Store struct {
	cfg    S3Config
	client s3API
	log    logging.Logger
}

func NewS3Store(ctx context.Context, cfg S3Config, log logging.Logger) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Store{cfg: cfg, client: client, log: log.With("component", "imagestore")}, nil
}

func (s *S3Store) key(documentID, ext string) string {
	return path.Join("images", documentID+ext)
}

func (s *S3Store) uri(key string) string {
	return fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, key)
}

func (s *S3Store) Add(ctx context.Context, sourceURI, documentID string) (string, int64, error) {
	var payload []byte
	ext := ".jpg"

	if IsDataURI(sourceURI) {
		data, mediaType, err := DecodeDataURI(sourceURI)
		if err != nil {
			return "", 0, fmt.Errorf("decoding inline image: %w", err)
		}
		payload = data
		if strings.HasSuffix(mediaType, "png") {
			ext = ".png"
		}
	} else {
		data, err := os.ReadFile(sourceURI)
		if err != nil {
			return "", 0, fmt.Errorf("reading image: %w", err)
		}
		payload = data
		if e := path.Ext(sourceURI); e != "" {
			ext = e
		}
	}

	key := s.key(documentID, ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(payload),
	})
	if err != nil {
		return "", 0, fmt.Errorf("uploading image: %w", err)
	}

	return s.uri(key), int64(len(payload)), nil
}

func (s *S3Store) Remove(ctx context.Context, uri string) error {
	prefix := fmt.Sprintf("s3://%s/", s.cfg.Bucket)
	key, ok := strings.CutPrefix(uri, prefix)
	if !ok {
		s.log.Warn(ctx, "refusing to remove image outside bucket", "uri", uri)
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}
	return nil
}

func (s *S3Store) Clear(ctx context.Context) error {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String("images/"),
	})
	if err != nil {
		return fmt.Errorf("listing images: %w", err)
	}

	for _, obj := range out.Contents {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    obj.Key,
		})
		if err != nil {
			return fmt.Errorf("deleting image %s: %w", aws.ToString(obj.Key), err)
		}
	}
	return nil
}
