// Package config provides configuration management for driftfs.
// It handles loading and validating configuration from YAML/JSON files and
// environment variables.
package config

import "time"

// AppConfig represents the complete application configuration
type AppConfig struct {
	Server  ServerConfig  `koanf:"server"`
	Auth    AuthConfig    `koanf:"auth"`
	Log     LogConfig     `koanf:"log"`
	Backend BackendConfig `koanf:"backend"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	ListenAddr        string        `koanf:"listen_addr"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	FileOpTimeout     time.Duration `koanf:"file_op_timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	RequestBurst      int           `koanf:"request_burst"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	APIKeys []string `koanf:"api_keys"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// BackendConfig holds backend storage configuration
type BackendConfig struct {
	DefaultBackend  string `koanf:"default_backend"` // "localfs" or "s3"
	LocalFSRootPath string `koanf:"localfs_root_path"`
	S3AccessKey     string `koanf:"s3_access_key"`
	S3SecretKey     string `koanf:"s3_secret_key"`
	S3Region        string `koanf:"s3_region"`
	S3BucketName    string `koanf:"s3_bucket_name"`
	S3Endpoint      string `koanf:"s3_endpoint"`   // Custom S3 endpoint (e.g., for MinIO)
	S3KeyPrefix     string `koanf:"s3_key_prefix"` // Scope all keys under this prefix

	S3ServerSideEncryption string `koanf:"s3_server_side_encryption"` // SSE algorithm (AES256, aws:kms)
	S3ACL                  string `koanf:"s3_acl"`                    // Object ACL (private, public-read, etc.)
	S3KMSKeyID             string `koanf:"s3_kms_key_id"`             // KMS key ID for SSE-KMS
}
