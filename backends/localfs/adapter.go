// Package localfs adapts the driftfs filesystem interface onto a local
// directory tree. Paths are confined to the configured root.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/driftfs/driftfs/backends"
	"github.com/driftfs/driftfs/internal/pathutil"
)

// Adapter implements the backends.Filesystem interface for the local filesystem
type Adapter struct {
	backends.UnsupportedVisibility

	rootPath string
}

// New creates a new local filesystem adapter rooted at rootPath
func New(rootPath string) (*Adapter, error) {
	if err := os.MkdirAll(rootPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root path %s: %w", rootPath, err)
	}
	if _, err := os.Stat(rootPath); err != nil {
		return nil, fmt.Errorf("root path %s is not accessible: %w", rootPath, err)
	}

	return &Adapter{rootPath: rootPath}, nil
}

// Close closes any resources used by the adapter
func (a *Adapter) Close() error {
	return nil
}

// abs resolves a caller path to an absolute path inside the root.
// Leading-slash paths are root-relative.
func (a *Adapter) abs(path string) (string, error) {
	return pathutil.SafeJoin(a.rootPath, strings.TrimPrefix(path, "/"))
}

// relPath converts an absolute path back to the caller-facing form
func (a *Adapter) relPath(fullPath string) string {
	rel, err := filepath.Rel(a.rootPath, fullPath)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

func (a *Adapter) entryFor(fullPath string, info os.FileInfo) *backends.Entry {
	entry := &backends.Entry{
		Path:      a.relPath(fullPath),
		Type:      backends.TypeFile,
		Timestamp: info.ModTime().Unix(),
	}
	if info.IsDir() {
		entry.Type = backends.TypeDir
	} else {
		entry.Size = info.Size()
		if mt := mime.TypeByExtension(filepath.Ext(fullPath)); mt != "" {
			entry.Mimetype = mt
		}
	}
	return entry
}

// Has reports whether a file or directory exists
func (a *Adapter) Has(ctx context.Context, path string) (bool, error) {
	fullPath, err := a.abs(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return true, nil
}

// Read fetches a file into memory
func (a *Adapter) Read(ctx context.Context, path string) (*backends.Entry, error) {
	entry, err := a.ReadStream(ctx, path)
	if err != nil {
		return nil, err
	}

	contents, err := io.ReadAll(entry.Stream)
	entry.Stream.Close()
	entry.Stream = nil
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	entry.Contents = contents
	entry.Size = int64(len(contents))
	return entry, nil
}

// ReadStream opens a file for reading; the caller closes Entry.Stream
func (a *Adapter) ReadStream(ctx context.Context, path string) (*backends.Entry, error) {
	fullPath, err := a.abs(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, backends.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	entry := &backends.Entry{
		Path:   a.relPath(fullPath),
		Type:   backends.TypeFile,
		Stream: file,
	}
	if info, err := file.Stat(); err == nil {
		entry.Size = info.Size()
		entry.Timestamp = info.ModTime().Unix()
	}
	if mt := mime.TypeByExtension(filepath.Ext(fullPath)); mt != "" {
		entry.Mimetype = mt
	}
	return entry, nil
}

// Write creates a new file; it fails when the path already exists
func (a *Adapter) Write(ctx context.Context, path string, contents []byte, cfg *backends.Config) (*backends.Entry, error) {
	return a.writeFile(ctx, path, func(fullPath string) (*os.File, error) {
		return os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	}, contents)
}

// Update writes a file, truncating existing content
func (a *Adapter) Update(ctx context.Context, path string, contents []byte, cfg *backends.Config) (*backends.Entry, error) {
	return a.writeFile(ctx, path, func(fullPath string) (*os.File, error) {
		return os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	}, contents)
}

// WriteStream creates a new file from a reader
func (a *Adapter) WriteStream(ctx context.Context, path string, r io.Reader, cfg *backends.Config) (*backends.Entry, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload stream: %w", err)
	}
	return a.Write(ctx, path, contents, cfg)
}

// UpdateStream writes a file from a reader, truncating existing content
func (a *Adapter) UpdateStream(ctx context.Context, path string, r io.Reader, cfg *backends.Config) (*backends.Entry, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload stream: %w", err)
	}
	return a.Update(ctx, path, contents, cfg)
}

func (a *Adapter) writeFile(ctx context.Context, path string, open func(string) (*os.File, error), contents []byte) (*backends.Entry, error) {
	fullPath, err := a.abs(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory: %w", err)
	}

	file, err := open(fullPath)
	if err != nil {
		if os.IsExist(err) {
			return nil, backends.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	if _, err := file.Write(contents); err != nil {
		file.Close()
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to write file content: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file %s: %w", path, err)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat written file %s: %w", path, err)
	}
	return a.entryFor(fullPath, info), nil
}

// Rename moves a file or directory. Failures surface as a bare
// ErrOperationFailed
func (a *Adapter) Rename(ctx context.Context, path, newPath string) error {
	src, err := a.abs(path)
	if err != nil {
		return err
	}
	dst, err := a.abs(newPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return backends.ErrOperationFailed
	}
	if err := os.Rename(src, dst); err != nil {
		return backends.ErrOperationFailed
	}
	return nil
}

// Copy duplicates a file. Failures surface as a bare ErrOperationFailed
func (a *Adapter) Copy(ctx context.Context, path, newPath string) error {
	src, err := a.abs(path)
	if err != nil {
		return err
	}
	dst, err := a.abs(newPath)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return backends.ErrOperationFailed
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return backends.ErrOperationFailed
	}
	out, err := os.Create(dst)
	if err != nil {
		return backends.ErrOperationFailed
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return backends.ErrOperationFailed
	}
	if err := out.Close(); err != nil {
		return backends.ErrOperationFailed
	}
	return nil
}

// Delete removes a file or empty directory
func (a *Adapter) Delete(ctx context.Context, path string) error {
	fullPath, err := a.abs(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		return backends.ErrOperationFailed
	}
	return nil
}

// DeleteDir removes a directory and its contents
func (a *Adapter) DeleteDir(ctx context.Context, path string) error {
	fullPath, err := a.abs(path)
	if err != nil {
		return err
	}
	if fullPath == filepath.Clean(a.rootPath) {
		return backends.ErrForbidden
	}
	if _, err := os.Stat(fullPath); err != nil {
		return backends.ErrOperationFailed
	}
	if err := os.RemoveAll(fullPath); err != nil {
		return backends.ErrOperationFailed
	}
	return nil
}

// CreateDir creates a directory along with any missing parents
func (a *Adapter) CreateDir(ctx context.Context, path string, cfg *backends.Config) (*backends.Entry, error) {
	fullPath, err := a.abs(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return nil, backends.ErrOperationFailed
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, backends.ErrOperationFailed
	}
	return a.entryFor(fullPath, info), nil
}

// Metadata returns the entry for a file or directory
func (a *Adapter) Metadata(ctx context.Context, path string) (*backends.Entry, error) {
	fullPath, err := a.abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, backends.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return a.entryFor(fullPath, info), nil
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

// ListContents lists the children of a directory, sorted by name
func (a *Adapter) ListContents(ctx context.Context, path string, recursive bool) ([]*backends.Entry, error) {
	fullPath, err := a.abs(path)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*backends.Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name() < dirEntries[j].Name()
	})

	entries := make([]*backends.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		childFull := filepath.Join(fullPath, de.Name())
		info, err := de.Info()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", de.Name(), err)
		}

		entry := a.entryFor(childFull, info)
		entries = append(entries, entry)

		if de.IsDir() && recursive {
			sub, err := a.ListContents(ctx, entry.Path, true)
			if err != nil {
				return nil, err
			}
			entries = append(entries, sub...)
		}
	}

	return entries, nil
}
