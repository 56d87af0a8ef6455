// Package config loads runtime settings for the lockbox CLI. Values are
// resolved in three stages, later stages overriding earlier ones:
// built-in defaults, an optional JSON file (-c/-config), command-line flags.
package config

// Backend names accepted by the -b flag and the "backend" JSON field.
const (
	BackendMemory   = "memory"
	BackendKeyring  = "keyring"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Config holds the resolved settings.
//
// Fields:
//   - Backend: which vault backend to open (see Backend* constants).
//   - Namespace: logical vault namespace; the keyring service name and the
//     S3 object prefix.
//   - FileVaultDir: directory for the encrypted file backend.
//   - SQLitePath: database file for the sqlite backend.
//   - PostgresDSN: connection string for the postgres backend.
//   - S3*: settings for the S3/MinIO backend.
type Config struct {
	Backend      string
	Namespace    string
	FileVaultDir string
	SQLitePath   string
	PostgresDSN  string

	S3Region          string
	S3BaseEndpoint    string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Bucket          string
}

func defaultConfig() *Config {
	return &Config{
		Backend:      BackendKeyring,
		Namespace:    "lockbox",
		FileVaultDir: ".lockbox",
		SQLitePath:   "lockbox.db",
	}
}

// LoadConfig resolves the configuration: defaults -> JSON -> flags.
func LoadConfig() *Config {
	cfg := defaultConfig()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
