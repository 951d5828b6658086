package s3

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"

	"github.com/driftfs/driftfs/backends"
	"github.com/driftfs/driftfs/config"
	"github.com/driftfs/driftfs/internal/pathutil"
)

// Adapter implements the backends.Filesystem interface for AWS S3
type Adapter struct {
	backends.UnsupportedVisibility

	client               *s3.S3
	bucketName           string
	keyPrefix            pathutil.Prefix
	serverSideEncryption string
	acl                  string
	kmsKeyID             string
	logger               *zap.Logger
}

// New creates a new S3 storage adapter
func New(cfg config.BackendConfig, logger *zap.Logger) (*Adapter, error) {
	if cfg.S3BucketName == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.S3Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	// Set custom endpoint if provided (for MinIO compatibility)
	if cfg.S3Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.S3Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		awsConfig.DisableSSL = aws.Bool(strings.HasPrefix(cfg.S3Endpoint, "http://"))
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := s3.New(sess)

	// Verify bucket access
	_, err = client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(cfg.S3BucketName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access S3 bucket %s: %w", cfg.S3BucketName, err)
	}

	return &Adapter{
		client:               client,
		bucketName:           cfg.S3BucketName,
		keyPrefix:            pathutil.NewPrefix(cfg.S3KeyPrefix),
		serverSideEncryption: cfg.S3ServerSideEncryption,
		acl:                  cfg.S3ACL,
		kmsKeyID:             cfg.S3KMSKeyID,
		logger:               logger,
	}, nil
}

// Close closes any resources used by the S3 adapter
func (a *Adapter) Close() error {
	// No resources to close for S3
	return nil
}

// pathToKey converts a filesystem path to an S3 key under the configured
// key prefix
func (a *Adapter) pathToKey(path string) string {
	return strings.TrimPrefix(a.keyPrefix.Apply(path), "/")
}

// keyToPath converts an S3 key to a caller-facing path with the key
// prefix stripped
func (a *Adapter) keyToPath(key string) string {
	return a.keyPrefix.Strip("/" + key)
}

// isNotFound checks if an error indicates the object was not found
func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "NoSuchKey") || strings.Contains(err.Error(), "NotFound")
}
