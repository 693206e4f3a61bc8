package filehost

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"trading_journal/internal/platform/config"
)

// PresignedUpload is a browser form upload to S3. The form posts Fields followed by
// the file to URL; S3 enforces the policy carried in Fields.
type PresignedUpload struct {
	URL     string
	Method  string
	Fields  map[string]string
	Expires time.Duration
}

// S3 stores chart images in a bucket. File keys are flat names; the configured
// prefix is applied when talking to S3.
type S3 struct {
	client        *s3.Client
	presign       *s3.PresignClient
	bucket        string
	region        string
	prefix        string
	publicBaseURL string
	expiry        time.Duration
}

// NewS3 loads AWS credentials from the default chain and returns an S3 file host.
func NewS3(ctx context.Context, cfg config.S3) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newS3(awsCfg, cfg), nil
}

func newS3(awsCfg aws.Config, cfg config.S3, optFns ...func(*s3.Options)) *S3 {
	client := s3.NewFromConfig(awsCfg, optFns...)
	region := cfg.Region
	if region == "" {
		region = awsCfg.Region
	}
	return &S3{
		client:        client,
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		region:        region,
		prefix:        strings.Trim(cfg.Prefix, "/"),
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		expiry:        cfg.PresignExpiry,
	}
}

// ObjectKey maps a file key to its key inside the bucket.
func (s *S3) ObjectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

// DeleteFiles deletes each key. Every key is attempted; failures are joined.
func (s *S3) DeleteFiles(ctx context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		objectKey := s.ObjectKey(key)
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(objectKey),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("s3 delete object bucket=%s key=%s: %w", s.bucket, objectKey, err))
		}
	}
	return errors.Join(errs...)
}

// Presign returns a POST policy for key that only accepts contentType and
// 1..maxBytes bytes.
func (s *S3) Presign(ctx context.Context, key, contentType string, maxBytes int64) (PresignedUpload, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.ObjectKey(key)),
	}
	expiry := s.expiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	out, err := s.presign.PresignPostObject(ctx, input, func(opts *s3.PresignPostOptions) {
		opts.Expires = expiry
		opts.Conditions = []interface{}{
			[]interface{}{"content-length-range", 1, maxBytes},
			map[string]string{"Content-Type": contentType},
		}
	})
	if err != nil {
		return PresignedUpload{}, fmt.Errorf("s3 presign post bucket=%s key=%s: %w", s.bucket, key, err)
	}

	fields := make(map[string]string, len(out.Values)+1)
	for k, v := range out.Values {
		fields[k] = v
	}
	fields["Content-Type"] = contentType

	return PresignedUpload{URL: out.URL, Method: http.MethodPost, Fields: fields, Expires: expiry}, nil
}

// PublicURL is where the uploaded file can be read from. Its last path segment is key.
func (s *S3) PublicURL(key string) string {
	escaped := url.PathEscape(key)
	if s.prefix != "" {
		escaped = s.prefix + "/" + escaped
	}
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}
