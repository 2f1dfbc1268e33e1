package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads so the host environment cannot
// leak into a test case. t.Setenv restores the original values afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "APP_ENV", "API_PREFIX", "ALLOWED_HOSTS", "MAX_UPLOAD_BYTES",
		"STORAGE_DRIVER", "STORAGE_ENDPOINT", "STORAGE_USE_SSL",
		"AWS_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY", "BUCKETS_REGION",
		"BUCKET_NAME", "PUBLIC_BUCKET_NAME", "PRIVATE_BUCKET_NAME",
		"PUBLIC_KEY_PREFIX", "PRIVATE_KEY_PREFIX", "PUBLIC_BASE_URL",
		"LIST_PAGE_SIZE", "OBJECT_ACL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadRequiresPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("BUCKET_NAME", "images")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingPort)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8000")
	t.Setenv("BUCKET_NAME", "images")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, DriverS3, cfg.StorageDriver)
	assert.Equal(t, "images", cfg.PublicBucket)
	assert.Equal(t, "images", cfg.PrivateBucket)
	assert.Equal(t, "public/", cfg.PublicKeyPrefix)
	assert.Equal(t, "private/", cfg.PrivateKeyPrefix)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, []string{"*"}, cfg.AllowedHosts)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
	assert.Equal(t, MaxListPageSize, cfg.ListPageSize)
	assert.Equal(t, "public-read", cfg.ObjectACL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadPerLocationBuckets(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8000")
	t.Setenv("BUCKET_NAME", "shared")
	t.Setenv("PRIVATE_BUCKET_NAME", "vault")
	t.Setenv("API_PREFIX", "/poc_api/")
	t.Setenv("ALLOWED_HOSTS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shared", cfg.PublicBucket)
	assert.Equal(t, "vault", cfg.PrivateBucket)
	assert.Equal(t, "poc_api", cfg.APIPrefix)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedHosts)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "ftp", "BUCKET_NAME": "b"}},
		{"minio without endpoint", map[string]string{"STORAGE_DRIVER": "minio", "BUCKET_NAME": "b"}},
		{"missing buckets", map[string]string{"STORAGE_DRIVER": "s3"}},
		{"bad page size", map[string]string{"BUCKET_NAME": "b", "LIST_PAGE_SIZE": "0"}},
		{"page size over the S3 limit", map[string]string{"BUCKET_NAME": "b", "LIST_PAGE_SIZE": "4294967297"}},
		{"shared bucket without distinct prefixes", map[string]string{
			"BUCKET_NAME": "b", "PUBLIC_KEY_PREFIX": "", "PRIVATE_KEY_PREFIX": "",
		}},
		{"non-numeric upload limit", map[string]string{"BUCKET_NAME": "b", "MAX_UPLOAD_BYTES": "lots"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", "8000")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadMemoryDriverNeedsNoBucket(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8000")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
}

func TestLoadEmptyKeyPrefix(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8000")
	t.Setenv("PUBLIC_BUCKET_NAME", "cdn")
	t.Setenv("PRIVATE_BUCKET_NAME", "vault")
	t.Setenv("PUBLIC_KEY_PREFIX", "")
	t.Setenv("PRIVATE_KEY_PREFIX", "")
	t.Setenv("OBJECT_ACL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.PublicKeyPrefix)
	assert.Empty(t, cfg.PrivateKeyPrefix)
	assert.Empty(t, cfg.ObjectACL)
}
