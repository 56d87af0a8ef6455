package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/lockbox/internal/flagx"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the corresponding Config values untouched.
type JSONConfig struct {
	Backend      string `json:"backend"`
	Namespace    string `json:"namespace"`
	FileVaultDir string `json:"file_vault_dir"`
	SQLitePath   string `json:"sqlite_path"`
	PostgresDSN  string `json:"postgres_dsn"`

	S3Region          string `json:"s3_region"`
	S3BaseEndpoint    string `json:"s3_base_endpoint"`
	S3AccessKeyID     string `json:"s3_access_key_id"`
	S3SecretAccessKey string `json:"s3_secret_access_key"`
	S3Bucket          string `json:"s3_bucket"`
}

// parseJSON overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. When no file is named it returns without touching cfg.
// Read or unmarshal errors panic; this runs before any vault is opened.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JSONConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Backend != "" {
		cfg.Backend = jc.Backend
	}
	if jc.Namespace != "" {
		cfg.Namespace = jc.Namespace
	}
	if jc.FileVaultDir != "" {
		cfg.FileVaultDir = jc.FileVaultDir
	}
	if jc.SQLitePath != "" {
		cfg.SQLitePath = jc.SQLitePath
	}
	if jc.PostgresDSN != "" {
		cfg.PostgresDSN = jc.PostgresDSN
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.S3AccessKeyID != "" {
		cfg.S3AccessKeyID = jc.S3AccessKeyID
	}
	if jc.S3SecretAccessKey != "" {
		cfg.S3SecretAccessKey = jc.S3SecretAccessKey
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
}
