package upload

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures the S3 uploader. Empty keys fall back to the default credential chain.
type S3Options struct {
	Bucket    string
	Region    string
	Prefix    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// S3 uploads images to an S3 bucket using the multipart upload manager.
type S3 struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewS3 loads AWS configuration and returns an S3 uploader.
func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{
		uploader: manager.NewUploader(client),
		bucket:   opts.Bucket,
		prefix:   opts.Prefix,
	}, nil
}

func (s *S3) Upload(ctx context.Context, file File) (Result, error) {
	key := s.prefix + objectName(file.Name)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   file.Body,
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}

	out, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return Result{}, fmt.Errorf("s3 upload: %w", err)
	}

	return Result{URL: out.Location, PublicID: key}, nil
}
