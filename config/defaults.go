package config

import "time"

// DefaultAppConfig returns an AppConfig struct with sensible default values
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			ListenAddr:        ":8080",
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			FileOpTimeout:     10 * time.Second,
			RequestsPerSecond: 100,
			RequestBurst:      20,
		},
		Auth: AuthConfig{
			APIKeys: []string{"default-api-key"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Backend: BackendConfig{
			DefaultBackend:         "localfs",
			LocalFSRootPath:        "/var/lib/driftfs",
			S3Region:               "us-east-1",
			S3ServerSideEncryption: "AES256",
			S3ACL:                  "private",
		},
	}
}
