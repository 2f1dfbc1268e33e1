// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// ErrMissingPort is returned by Load when PORT is not set. The service
// refuses to start without it.
var ErrMissingPort = errors.New("PORT is required")

// MaxListPageSize is the largest page S3 serves for a single list call.
const MaxListPageSize = 1000

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverS3     = "s3"
	DriverMinio  = "minio"
	DriverMemory = "memory"
)

// Config holds all runtime configuration for the service. It is built once at
// startup and never mutated afterwards.
type Config struct {
	Port           string
	AppEnv         string
	APIPrefix      string
	AllowedHosts   []string
	MaxUploadBytes int64

	// Object storage
	StorageDriver    string
	StorageEndpoint  string // empty means the AWS default endpoint
	StorageUseSSL    bool
	AWSAccessKey     string
	AWSSecretKey     string
	Region           string
	ObjectACL        string // canned ACL applied to every put, "" disables it
	ListPageSize     int
	PublicBucket     string
	PrivateBucket    string
	PublicKeyPrefix  string
	PrivateKeyPrefix string
	PublicBaseURL    string // browser-accessible base for public objects
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, reading from environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		return nil, ErrMissingPort
	}

	bucket := getEnv("BUCKET_NAME", "")
	cfg := &Config{
		Port:         port,
		AppEnv:       getEnv("APP_ENV", "development"),
		APIPrefix:    strings.Trim(getEnv("API_PREFIX", ""), "/"),
		AllowedHosts: splitList(getEnv("ALLOWED_HOSTS", "*")),

		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", DriverS3)),
		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", ""),
		StorageUseSSL:    getEnv("STORAGE_USE_SSL", "true") == "true",
		AWSAccessKey:     getEnv("AWS_ACCESS_KEY", ""),
		AWSSecretKey:     getEnv("AWS_SECRET_ACCESS_KEY", ""),
		Region:           getEnv("BUCKETS_REGION", "us-east-1"),
		ObjectACL:        lookupEnv("OBJECT_ACL", "public-read"),
		PublicBucket:     getEnv("PUBLIC_BUCKET_NAME", bucket),
		PrivateBucket:    getEnv("PRIVATE_BUCKET_NAME", bucket),
		PublicKeyPrefix:  lookupEnv("PUBLIC_KEY_PREFIX", "public/"),
		PrivateKeyPrefix: lookupEnv("PRIVATE_KEY_PREFIX", "private/"),
		PublicBaseURL:    strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
	}
	var err error
	if cfg.MaxUploadBytes, err = getInt64("MAX_UPLOAD_BYTES", 32<<20); err != nil {
		return nil, err
	}
	pageSize, err := getInt64("LIST_PAGE_SIZE", MaxListPageSize)
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 || pageSize > MaxListPageSize {
		return nil, fmt.Errorf("LIST_PAGE_SIZE must be between 1 and %d, got %d", MaxListPageSize, pageSize)
	}
	cfg.ListPageSize = int(pageSize)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverS3, DriverMemory:
	case DriverMinio:
		if c.StorageEndpoint == "" {
			return errors.New("STORAGE_ENDPOINT is required for the minio driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.StorageDriver != DriverMemory && (c.PublicBucket == "" || c.PrivateBucket == "") {
		return errors.New("bucket names are required: set BUCKET_NAME or PUBLIC_BUCKET_NAME and PRIVATE_BUCKET_NAME")
	}
	if c.ListPageSize <= 0 || c.ListPageSize > MaxListPageSize {
		return fmt.Errorf("LIST_PAGE_SIZE must be between 1 and %d, got %d", MaxListPageSize, c.ListPageSize)
	}
	if c.PublicBucket == c.PrivateBucket && c.PublicKeyPrefix == c.PrivateKeyPrefix {
		return errors.New("public and private locations share a bucket and need distinct key prefixes")
	}
	return nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// lookupEnv is getEnv for variables where an explicitly empty value is meaningful.
func lookupEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
