package clouddrive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/driftfs/driftfs/backends"
)

// Has reports whether a file or directory exists by delegating to the
// metadata fetch.
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

// Read fetches a file into memory. The underlying stream is drained into
// Entry.Contents and released before returning.
func (a *Adapter) Read(ctx context.Context, path string) (*backends.Entry, error) {
	loc := a.location(path)

	stream, err := a.client.GetFile(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file %s: %w", path, err)
	}

	contents, err := io.ReadAll(stream)
	stream.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	a.logger.Debug("File read from cloud drive",
		zap.String("path", loc),
		zap.Int("bytes", len(contents)))

	return &backends.Entry{
		Path:     a.prefix.Strip(loc),
		Type:     backends.TypeFile,
		Size:     int64(len(contents)),
		Contents: contents,
	}, nil
}

// ReadStream fetches a file as a stream. The caller owns Entry.Stream and
// must close it.
func (a *Adapter) ReadStream(ctx context.Context, path string) (*backends.Entry, error) {
	loc := a.location(path)

	stream, err := a.client.GetFile(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file %s: %w", path, err)
	}

	return &backends.Entry{
		Path:   a.prefix.Strip(loc),
		Type:   backends.TypeFile,
		Stream: stream,
	}, nil
}

// Write uploads a new file. The service refuses to replace an existing
// file in this mode.
func (a *Adapter) Write(ctx context.Context, path string, contents []byte, cfg *backends.Config) (*backends.Entry, error) {
	return a.upload(ctx, path, contents, false)
}

// Update uploads a file, overwriting any existing content.
func (a *Adapter) Update(ctx context.Context, path string, contents []byte, cfg *backends.Config) (*backends.Entry, error) {
	return a.upload(ctx, path, contents, true)
}

// WriteStream uploads a new file from a reader.
func (a *Adapter) WriteStream(ctx context.Context, path string, r io.Reader, cfg *backends.Config) (*backends.Entry, error) {
	return a.uploadStream(ctx, path, r, false)
}

// UpdateStream uploads a file from a reader, overwriting any existing
// content.
func (a *Adapter) UpdateStream(ctx context.Context, path string, r io.Reader, cfg *backends.Config) (*backends.Entry, error) {
	return a.uploadStream(ctx, path, r, true)
}

func (a *Adapter) upload(ctx context.Context, path string, contents []byte, overwrite bool) (*backends.Entry, error) {
	loc := a.location(path)

	obj, err := a.client.PutFile(ctx, loc, contents, overwrite)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file %s: %w", path, err)
	}
	if obj == nil {
		return nil, backends.ErrOperationFailed
	}

	a.logger.Debug("File uploaded to cloud drive",
		zap.String("path", loc),
		zap.Bool("overwrite", overwrite),
		zap.Int("bytes", len(contents)))

	return a.normalizeEntry(obj), nil
}

func (a *Adapter) uploadStream(ctx context.Context, path string, r io.Reader, overwrite bool) (*backends.Entry, error) {
	loc := a.location(path)
	size := streamLength(r)

	obj, err := a.client.PutFileStream(ctx, loc, r, size, overwrite)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file %s: %w", path, err)
	}
	if obj == nil {
		return nil, backends.ErrOperationFailed
	}

	a.logger.Debug("File streamed to cloud drive",
		zap.String("path", loc),
		zap.Bool("overwrite", overwrite),
		zap.Int64("size_hint", size))

	return a.normalizeEntry(obj), nil
}

// streamLength computes an upload size hint from a seekable reader without
// consuming it. 0 means the length is unknown.
func streamLength(r io.Reader) int64 {
	s, ok := r.(io.Seeker)
	if !ok {
		return 0
	}
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0
	}
	if end < cur {
		return 0
	}
	return end - cur
}

// Rename moves a file or directory. Any client failure surfaces as a bare
// ErrOperationFailed; the cause is logged and discarded.
func (a *Adapter) Rename(ctx context.Context, path, newPath string) error {
	from, to := a.location(path), a.location(newPath)

	if _, err := a.client.Move(ctx, from, to); err != nil {
		a.logger.Debug("Cloud drive move failed",
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err))
		return backends.ErrOperationFailed
	}
	return nil
}

// Copy duplicates a file. Failure semantics match Rename.
func (a *Adapter) Copy(ctx context.Context, path, newPath string) error {
	from, to := a.location(path), a.location(newPath)

	if _, err := a.client.Copy(ctx, from, to); err != nil {
		a.logger.Debug("Cloud drive copy failed",
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err))
		return backends.ErrOperationFailed
	}
	return nil
}

// Delete removes a file. The removal counts only when the response object
// explicitly reports it.
func (a *Adapter) Delete(ctx context.Context, path string) error {
	loc := a.location(path)

	obj, err := a.client.Delete(ctx, loc)
	if err != nil {
		a.logger.Debug("Cloud drive delete failed",
			zap.String("path", loc),
			zap.Error(err))
		return backends.ErrOperationFailed
	}
	if obj == nil || !obj.IsDeleted {
		return backends.ErrOperationFailed
	}
	return nil
}

// DeleteDir removes a directory. The service uses a single delete call for
// files and folders alike.
func (a *Adapter) DeleteDir(ctx context.Context, path string) error {
	return a.Delete(ctx, path)
}
