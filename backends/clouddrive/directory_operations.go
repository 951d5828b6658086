package clouddrive

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/driftfs/driftfs/backends"
	"github.com/driftfs/driftfs/internal/pathutil"
)

// CreateDir creates a directory.
func (a *Adapter) CreateDir(ctx context.Context, path string, cfg *backends.Config) (*backends.Entry, error) {
	loc := a.location(path)

	obj, err := a.client.CreateFolder(ctx, loc)
	if err != nil {
		a.logger.Debug("Cloud drive folder creation failed",
			zap.String("path", loc),
			zap.Error(err))
		return nil, backends.ErrOperationFailed
	}
	if obj == nil {
		return nil, backends.ErrOperationFailed
	}

	return a.normalizeEntry(obj), nil
}

// Metadata fetches the normalized entry for a file or directory. A
// relocated resource is reported as not found; any other status-carrying
// failure propagates to the caller.
func (a *Adapter) Metadata(ctx context.Context, path string) (*backends.Entry, error) {
	loc := a.location(path)

	obj, err := a.client.Metadata(ctx, loc, false)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Relocated() {
			return nil, backends.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch metadata for %s: %w", path, err)
	}
	if obj == nil {
		return nil, backends.ErrNotFound
	}

	return a.normalizeEntry(obj), nil
}

// Mimetype returns the full entry; callers extract the Mimetype field.
func (a *Adapter) Mimetype(ctx context.Context, path string) (*backends.Entry, error) {
	return a.Metadata(ctx, path)
}

// Size returns the full entry; callers extract the Size field.
func (a *Adapter) Size(ctx context.Context, path string) (*backends.Entry, error) {
	return a.Metadata(ctx, path)
}

// Timestamp returns the full entry; callers extract the Timestamp field.
func (a *Adapter) Timestamp(ctx context.Context, path string) (*backends.Entry, error) {
	return a.Metadata(ctx, path)
}

// ListContents lists the children of a directory. The service lowercases
// portions of returned paths, so each child path is repaired against the
// requested directory before normalization. In recursive mode a child
// directory's contents are appended after its own entry.
func (a *Adapter) ListContents(ctx context.Context, path string, recursive bool) ([]*backends.Entry, error) {
	loc := a.location(path)

	obj, err := a.client.Metadata(ctx, loc, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", path, err)
	}
	if obj == nil {
		return []*backends.Entry{}, nil
	}

	entries := make([]*backends.Entry, 0, len(obj.Contents))
	for i := range obj.Contents {
		child := obj.Contents[i]
		child.Path = pathutil.RestoreCasing(child.Path, loc)

		entry := a.normalizeEntry(&child)
		entries = append(entries, entry)

		if child.IsDir && recursive {
			sub, err := a.ListContents(ctx, entry.Path, true)
			if err != nil {
				return nil, err
			}
			entries = append(entries, sub...)
		}
	}

	return entries, nil
}
