package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"

	"github.com/driftfs/driftfs/backends"
)

// Metadata returns the entry for an object or a directory marker
func (a *Adapter) Metadata(ctx context.Context, path string) (*backends.Entry, error) {
	key := a.pathToKey(path)

	result, err := a.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	if err == nil {
		entry := &backends.Entry{
			Path: a.keyToPath(key),
			Type: backends.TypeFile,
		}
		if result.ContentLength != nil {
			entry.Size = *result.ContentLength
		}
		if result.ContentType != nil {
			entry.Mimetype = *result.ContentType
		}
		if result.LastModified != nil {
			entry.Timestamp = result.LastModified.Unix()
		}
		return entry, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("failed to stat object in S3: %w", err)
	}

	// Fall back to the directory marker
	_, err = a.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key + "/"),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, backends.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat directory marker in S3: %w", err)
	}

	return &backends.Entry{
		Path: a.keyToPath(key),
		Type: backends.TypeDir,
	}, nil
}

// Mimetype returns the full entry; callers extract the Mimetype field
func (a *Adapter) Mimetype(ctx context.Context, path string) (*backends.Entry, error) {
	return a.Metadata(ctx, path)
}

// Size returns the full entry; callers extract the Size field
func (a *Adapter) Size(ctx context.Context, path string) (*backends.Entry, error) {
	return a.Metadata(ctx, path)
}

// Timestamp returns the full entry; callers extract the Timestamp field
func (a *Adapter) Timestamp(ctx context.Context, path string) (*backends.Entry, error) {
	return a.Metadata(ctx, path)
}

// ListContents lists the contents of a directory
func (a *Adapter) ListContents(ctx context.Context, path string, recursive bool) ([]*backends.Entry, error) {
	// Normalize the key to a listing prefix
	prefix := a.pathToKey(path)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(a.bucketName),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	}

	entries := []*backends.Entry{}

	for {
		result, err := a.client.ListObjectsV2WithContext(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in S3: %w", err)
		}

		// Directory entries come from common prefixes
		for _, commonPrefix := range result.CommonPrefixes {
			if commonPrefix.Prefix == nil {
				continue
			}

			dirKey := strings.TrimSuffix(*commonPrefix.Prefix, "/")
			if strings.TrimPrefix(dirKey, prefix) == "" {
				continue
			}

			entry := &backends.Entry{
				Path: a.keyToPath(dirKey),
				Type: backends.TypeDir,
			}
			entries = append(entries, entry)

			if recursive {
				sub, err := a.ListContents(ctx, entry.Path, true)
				if err != nil {
					return nil, err
				}
				entries = append(entries, sub...)
			}
		}

		// File entries
		for _, object := range result.Contents {
			if object.Key == nil {
				continue
			}

			// Skip the directory marker itself
			if strings.HasSuffix(*object.Key, "/") {
				continue
			}

			entry := &backends.Entry{
				Path: a.keyToPath(*object.Key),
				Type: backends.TypeFile,
			}
			if object.Size != nil {
				entry.Size = *object.Size
			}
			if object.LastModified != nil {
				entry.Timestamp = object.LastModified.Unix()
			}
			entries = append(entries, entry)
		}

		if result.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = result.NextContinuationToken
	}

	return entries, nil
}

// CreateDir creates a directory marker (S3 has no true directories)
func (a *Adapter) CreateDir(ctx context.Context, path string, cfg *backends.Config) (*backends.Entry, error) {
	key := a.pathToKey(path)
	if !strings.HasSuffix(key, "/") {
		key += "/"
	}

	_, err := a.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader([]byte{}),
	})
	if err != nil {
		a.logger.Debug("S3 directory marker creation failed",
			zap.String("key", key),
			zap.Error(err))
		return nil, backends.ErrOperationFailed
	}

	a.logger.Debug("Directory created in S3",
		zap.String("bucket", a.bucketName),
		zap.String("key", key))

	return &backends.Entry{
		Path: a.keyToPath(strings.TrimSuffix(key, "/")),
		Type: backends.TypeDir,
	}, nil
}

// DeleteDir removes a directory marker and everything under it
func (a *Adapter) DeleteDir(ctx context.Context, path string) error {
	prefix := a.pathToKey(path)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucketName),
		Prefix: aws.String(prefix),
	}

	for {
		result, err := a.client.ListObjectsV2WithContext(ctx, input)
		if err != nil {
			a.logger.Debug("S3 directory listing for delete failed",
				zap.String("prefix", prefix),
				zap.Error(err))
			return backends.ErrOperationFailed
		}

		for _, object := range result.Contents {
			if object.Key == nil {
				continue
			}
			_, err := a.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(a.bucketName),
				Key:    object.Key,
			})
			if err != nil {
				a.logger.Debug("S3 object delete failed",
					zap.String("key", *object.Key),
					zap.Error(err))
				return backends.ErrOperationFailed
			}
		}

		if result.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = result.NextContinuationToken
	}

	return nil
}
