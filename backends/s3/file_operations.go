package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"

	"github.com/driftfs/driftfs/backends"
)

// Has reports whether an object or directory marker exists
func (a *Adapter) Has(ctx context.Context, path string) (bool, error) {
	_, err := a.Metadata(ctx, path)
	if err != nil {
		if errors.Is(err, backends.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Read fetches an object into memory
func (a *Adapter) Read(ctx context.Context, path string) (*backends.Entry, error) {
	entry, err := a.ReadStream(ctx, path)
	if err != nil {
		return nil, err
	}

	contents, err := io.ReadAll(entry.Stream)
	entry.Stream.Close()
	entry.Stream = nil
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", path, err)
	}

	entry.Contents = contents
	entry.Size = int64(len(contents))
	return entry, nil
}

// ReadStream fetches an object as a stream; the caller closes Entry.Stream
func (a *Adapter) ReadStream(ctx context.Context, path string) (*backends.Entry, error) {
	key := a.pathToKey(path)

	result, err := a.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, backends.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}

	a.logger.Debug("Object opened from S3",
		zap.String("bucket", a.bucketName),
		zap.String("key", key))

	entry := &backends.Entry{
		Path:   a.keyToPath(key),
		Type:   backends.TypeFile,
		Stream: result.Body,
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

// Write creates a new object; it fails when the key already exists
func (a *Adapter) Write(ctx context.Context, path string, contents []byte, cfg *backends.Config) (*backends.Entry, error) {
	if ok, err := a.Has(ctx, path); err != nil {
		return nil, err
	} else if ok {
		return nil, backends.ErrAlreadyExists
	}
	return a.put(ctx, path, contents, cfg)
}

// Update writes an object, overwriting existing content
func (a *Adapter) Update(ctx context.Context, path string, contents []byte, cfg *backends.Config) (*backends.Entry, error) {
	return a.put(ctx, path, contents, cfg)
}

// WriteStream creates a new object from a reader
func (a *Adapter) WriteStream(ctx context.Context, path string, r io.Reader, cfg *backends.Config) (*backends.Entry, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload stream: %w", err)
	}
	return a.Write(ctx, path, contents, cfg)
}

// UpdateStream writes an object from a reader, overwriting existing content
func (a *Adapter) UpdateStream(ctx context.Context, path string, r io.Reader, cfg *backends.Config) (*backends.Entry, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload stream: %w", err)
	}
	return a.put(ctx, path, contents, cfg)
}

func (a *Adapter) put(ctx context.Context, path string, contents []byte, cfg *backends.Config) (*backends.Entry, error) {
	key := a.pathToKey(path)

	contentType := cfg.GetMimetype()
	if contentType == "" {
		contentType = contentTypeFor(path)
	}

	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(a.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(contents),
		ContentType: aws.String(contentType),
	}

	// Set server-side encryption if configured
	if a.serverSideEncryption != "" {
		putInput.ServerSideEncryption = aws.String(a.serverSideEncryption)
		if a.serverSideEncryption == "aws:kms" && a.kmsKeyID != "" {
			putInput.SSEKMSKeyId = aws.String(a.kmsKeyID)
		}
	}

	if a.acl != "" {
		putInput.ACL = aws.String(a.acl)
	}

	if _, err := a.client.PutObjectWithContext(ctx, putInput); err != nil {
		return nil, fmt.Errorf("failed to put object to S3: %w", err)
	}

	a.logger.Debug("Object written to S3",
		zap.String("bucket", a.bucketName),
		zap.String("key", key),
		zap.Int("size", len(contents)))

	return &backends.Entry{
		Path:      a.keyToPath(key),
		Type:      backends.TypeFile,
		Size:      int64(len(contents)),
		Mimetype:  contentType,
		Timestamp: time.Now().Unix(),
	}, nil
}

// Rename moves an object via copy and delete. Failures surface as a bare
// ErrOperationFailed
func (a *Adapter) Rename(ctx context.Context, path, newPath string) error {
	if err := a.Copy(ctx, path, newPath); err != nil {
		return err
	}

	key := a.pathToKey(path)
	_, err := a.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		a.logger.Debug("S3 source delete after copy failed",
			zap.String("key", key),
			zap.Error(err))
		return backends.ErrOperationFailed
	}
	return nil
}

// Copy duplicates an object. Failures surface as a bare ErrOperationFailed
func (a *Adapter) Copy(ctx context.Context, path, newPath string) error {
	srcKey := a.pathToKey(path)
	dstKey := a.pathToKey(newPath)

	_, err := a.client.CopyObjectWithContext(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(a.bucketName),
		CopySource: aws.String(a.bucketName + "/" + srcKey),
		Key:        aws.String(dstKey),
	})
	if err != nil {
		a.logger.Debug("S3 copy failed",
			zap.String("source", srcKey),
			zap.String("destination", dstKey),
			zap.Error(err))
		return backends.ErrOperationFailed
	}
	return nil
}

// Delete removes an object
func (a *Adapter) Delete(ctx context.Context, path string) error {
	key := a.pathToKey(path)

	_, err := a.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		a.logger.Debug("S3 delete failed",
			zap.String("key", key),
			zap.Error(err))
		return backends.ErrOperationFailed
	}

	a.logger.Debug("Object deleted from S3",
		zap.String("bucket", a.bucketName),
		zap.String("key", key))
	return nil
}

// contentTypeFor returns the MIME type based on file extension
func contentTypeFor(path string) string {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".html", ".htm":
		return "text/html"
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".xml":
		return "application/xml"
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".txt":
		return "text/plain"
	case ".md":
		return "text/markdown"
	default:
		return "application/octet-stream"
	}
}
