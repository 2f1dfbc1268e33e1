package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Bucket implements Bucket using AWS S3. It uses the version 1 ListObjects
// API because that one paginates with a plain key marker.
type S3Bucket struct {
	client     *s3.Client
	bucket     string
	publicBase string
	pageSize   int32
}

// NewS3Client builds an S3 client. Static credentials are used when both keys
// are given, otherwise the SDK default chain applies. A non-empty endpoint
// switches to path-style addressing for S3-compatible servers.
func NewS3Client(ctx context.Context, endpoint, region, accessKey, secretKey string) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load SDK config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// maxS3PageSize is the most keys S3 returns from one ListObjects call.
const maxS3PageSize = 1000

// NewS3Bucket returns an S3Bucket. When publicBase is empty the direct URL is
// derived from endpoint (path style) or the regional virtual-host name.
// pageSize outside 1..1000 is clamped to 1000.
func NewS3Bucket(client *s3.Client, bucket, region, endpoint, publicBase string, pageSize int) *S3Bucket {
	if pageSize <= 0 || pageSize > maxS3PageSize {
		pageSize = maxS3PageSize
	}
	if publicBase == "" {
		if endpoint != "" {
			publicBase = strings.TrimRight(endpoint, "/") + "/" + bucket
		} else {
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
		}
	}
	return &S3Bucket{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		pageSize:   int32(pageSize),
	}
}

func (s *S3Bucket) Name() string { return s.bucket }

func (s *S3Bucket) Put(ctx context.Context, in PutInput) (*PutResult, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(in.Key),
		Body:        in.Body,
		ContentType: aws.String(in.ContentType),
	}
	if in.Size >= 0 {
		input.ContentLength = aws.Int64(in.Size)
	}
	if in.ACL != "" {
		input.ACL = types.ObjectCannedACL(in.ACL)
	}

	out, err := s.client.PutObject(ctx, input)
	if err != nil {
		return nil, err
	}
	return &PutResult{ETag: aws.ToString(out.ETag), URL: s.publicBase + "/" + in.Key}, nil
}

func (s *S3Bucket) Head(ctx context.Context, key string) (*ObjectInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s3Error(err)
	}
	return &ObjectInfo{
		Key:         key,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
		ETag:        aws.ToString(out.ETag),
	}, nil
}

func (s *S3Bucket) Get(ctx context.Context, key string) (*Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s3Error(err)
	}
	return &Object{
		ObjectInfo: ObjectInfo{
			Key:         key,
			Size:        aws.ToInt64(out.ContentLength),
			ContentType: aws.ToString(out.ContentType),
			ETag:        aws.ToString(out.ETag),
		},
		Body: out.Body,
	}, nil
}

func (s *S3Bucket) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Bucket) ListPage(ctx context.Context, prefix, marker string) (*Page, error) {
	input := &s3.ListObjectsInput{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(s.pageSize),
	}
	if marker != "" {
		input.Marker = aws.String(marker)
	}

	out, err := s.client.ListObjects(ctx, input)
	if err != nil {
		return nil, err
	}
	page := &Page{
		Keys:        make([]string, 0, len(out.Contents)),
		IsTruncated: aws.ToBool(out.IsTruncated),
	}
	for _, obj := range out.Contents {
		page.Keys = append(page.Keys, aws.ToString(obj.Key))
	}
	return page, nil
}

// s3Error maps the SDK's not-found shapes to ErrNotFound. HeadObject has no
// body, so it reports a bare NotFound; GetObject reports NoSuchKey.
func s3Error(err error) error {
	var nf *types.NotFound
	var nsk *types.NoSuchKey
	if errors.As(err, &nf) || errors.As(err, &nsk) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey") {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
