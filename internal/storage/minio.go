package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// MinioBucket implements Bucket using a MinIO (or any S3-compatible) backend.
// Listing goes through minio.Core so the marker loop stays under our control.
type MinioBucket struct {
	core       *minio.Core
	bucket     string
	publicBase string
	pageSize   int
}

// NewMinioCore creates the low-level MinIO client shared by every bucket.
func NewMinioCore(endpoint, accessKey, secretKey, region string, useSSL bool) (*minio.Core, error) {
	core, err := minio.NewCore(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return core, nil
}

// NewMinioBucket ensures bucket exists and returns a MinioBucket over it.
// When publicPrefix is non-empty, anonymous GET is granted on that prefix:
// MinIO ignores per-object ACLs, so a bucket policy is the only way to make
// direct public URLs work.
func NewMinioBucket(ctx context.Context, core *minio.Core, bucket, region, publicBase, publicPrefix string, pageSize int) (*MinioBucket, error) {
	exists, err := core.Client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := core.Client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
		log.WithField("bucket", bucket).Info("storage: created bucket")
	}

	if publicPrefix != "" {
		if err := core.Client.SetBucketPolicy(ctx, bucket, publicReadPolicy(bucket, publicPrefix)); err != nil {
			return nil, fmt.Errorf("set bucket policy: %w", err)
		}
	}

	if publicBase == "" {
		publicBase = core.Client.EndpointURL().String() + "/" + bucket
	}
	return &MinioBucket{
		core:       core,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		pageSize:   pageSize,
	}, nil
}

func (s *MinioBucket) Name() string { return s.bucket }

// Put streams in.Body to MinIO. in.Size must be the exact byte count
// (pass -1 only if the size is genuinely unknown, MinIO will buffer it).
func (s *MinioBucket) Put(ctx context.Context, in PutInput) (*PutResult, error) {
	opts := minio.PutObjectOptions{ContentType: in.ContentType}
	if in.ACL != "" {
		opts.UserMetadata = map[string]string{"x-amz-acl": in.ACL}
	}
	info, err := s.core.Client.PutObject(ctx, s.bucket, in.Key, in.Body, in.Size, opts)
	if err != nil {
		return nil, fmt.Errorf("put object %q: %w", in.Key, err)
	}
	return &PutResult{ETag: info.ETag, URL: s.publicBase + "/" + in.Key}, nil
}

func (s *MinioBucket) Head(ctx context.Context, key string) (*ObjectInfo, error) {
	info, err := s.core.Client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, minioError(err)
	}
	return minioInfo(info), nil
}

// Get opens key for streaming. GetObject is lazy, so Stat forces the request
// and surfaces a missing key before any byte is written to the client.
func (s *MinioBucket) Get(ctx context.Context, key string) (*Object, error) {
	obj, err := s.core.Client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minioError(err)
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, minioError(err)
	}
	return &Object{ObjectInfo: *minioInfo(info), Body: obj}, nil
}

// Delete removes the object at key from the bucket.
func (s *MinioBucket) Delete(ctx context.Context, key string) error {
	return s.core.Client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *MinioBucket) ListPage(ctx context.Context, prefix, marker string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := s.core.ListObjects(s.bucket, prefix, marker, "", s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	page := &Page{Keys: make([]string, 0, len(res.Contents)), IsTruncated: res.IsTruncated}
	for _, obj := range res.Contents {
		page.Keys = append(page.Keys, obj.Key)
	}
	return page, nil
}

func minioInfo(info minio.ObjectInfo) *ObjectInfo {
	return &ObjectInfo{
		Key:         info.Key,
		Size:        info.Size,
		ContentType: info.ContentType,
		ETag:        info.ETag,
	}
}

// minioError maps MinIO's missing-object responses to ErrNotFound.
func minioError(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET
// on every object under prefix.
func publicReadPolicy(bucket, prefix string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/%s*", bucket, prefix),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
