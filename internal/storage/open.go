package storage

import (
	"context"
	"fmt"

	"github.com/imagehost/service/internal/config"
)

// Open builds the Client described by cfg, one Bucket per location. When both
// locations share a bucket name they share one Bucket value.
func Open(ctx context.Context, cfg *config.Config) (*Client, error) {
	var newBucket func(name, publicPrefix string) (Bucket, error)

	switch cfg.StorageDriver {
	case config.DriverS3:
		client, err := NewS3Client(ctx, cfg.StorageEndpoint, cfg.Region, cfg.AWSAccessKey, cfg.AWSSecretKey)
		if err != nil {
			return nil, err
		}
		newBucket = func(name, _ string) (Bucket, error) {
			return NewS3Bucket(client, name, cfg.Region, cfg.StorageEndpoint, cfg.PublicBaseURL, cfg.ListPageSize), nil
		}
	case config.DriverMinio:
		core, err := NewMinioCore(cfg.StorageEndpoint, cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.Region, cfg.StorageUseSSL)
		if err != nil {
			return nil, err
		}
		newBucket = func(name, publicPrefix string) (Bucket, error) {
			return NewMinioBucket(ctx, core, name, cfg.Region, cfg.PublicBaseURL, publicPrefix, cfg.ListPageSize)
		}
	case config.DriverMemory:
		newBucket = func(name, _ string) (Bucket, error) {
			return NewMemoryBucket(name, cfg.PublicBaseURL, cfg.ListPageSize), nil
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	public, err := newBucket(cfg.PublicBucket, cfg.PublicKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("open public bucket: %w", err)
	}
	private := public
	if cfg.PrivateBucket != cfg.PublicBucket {
		if private, err = newBucket(cfg.PrivateBucket, ""); err != nil {
			return nil, fmt.Errorf("open private bucket: %w", err)
		}
	}

	return NewClient(
		Binding{Bucket: public, Prefix: cfg.PublicKeyPrefix},
		Binding{Bucket: private, Prefix: cfg.PrivateKeyPrefix},
	), nil
}
