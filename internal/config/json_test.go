package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_OverlaysConfig(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	path := filepath.Join(t.TempDir(), "conf.json")
	data := `{
  "backend": "s3",
  "namespace": "team-a",
  "s3_region": "eu-central-1",
  "s3_base_endpoint": "http://localhost:9000",
  "s3_access_key_id": "minio",
  "s3_secret_access_key": "minio123",
  "s3_bucket": "secrets"
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	os.Args = []string{"lockbox", "-c", path}

	cfg := defaultConfig()
	parseJSON(cfg)

	assert.Equal(t, "s3", cfg.Backend)
	assert.Equal(t, "team-a", cfg.Namespace)
	assert.Equal(t, "eu-central-1", cfg.S3Region)
	assert.Equal(t, "http://localhost:9000", cfg.S3BaseEndpoint)
	assert.Equal(t, "minio", cfg.S3AccessKeyID)
	assert.Equal(t, "minio123", cfg.S3SecretAccessKey)
	assert.Equal(t, "secrets", cfg.S3Bucket)

	// untouched fields keep defaults
	assert.Equal(t, ".lockbox", cfg.FileVaultDir)
	assert.Equal(t, "lockbox.db", cfg.SQLitePath)
}

func TestParseJSON_NoFileIsNoop(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"lockbox"}

	cfg := defaultConfig()
	parseJSON(cfg)

	assert.Equal(t, defaultConfig(), cfg)
}

func TestParseJSON_BadFilePanics(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	os.Args = []string{"lockbox", "-c", path}

	assert.Panics(t, func() {
		parseJSON(defaultConfig())
	})
}
