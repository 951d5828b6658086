// Package backends provides storage backend adapters and interfaces for driftfs.
// It includes implementations for a cloud drive client, S3 object storage,
// local filesystem, and others.
package backends

import (
	"context"
	"io"
)

// Filesystem defines the interface for backend storage operations.
// Every operation is stateless and independent; adapters hold only the
// handles and settings fixed at construction.
type Filesystem interface {
	// Has reports whether a file or directory exists at path.
	// A missing path is (false, nil), not an error.
	Has(ctx context.Context, path string) (bool, error)

	// Read fetches a file and returns an entry with Contents populated.
	Read(ctx context.Context, path string) (*Entry, error)

	// ReadStream fetches a file and returns an entry with Stream populated.
	// The caller owns the stream and must close it.
	ReadStream(ctx context.Context, path string) (*Entry, error)

	// Write creates a new file. It fails if the file already exists.
	Write(ctx context.Context, path string, contents []byte, cfg *Config) (*Entry, error)

	// WriteStream creates a new file from a reader. It fails if the file
	// already exists.
	WriteStream(ctx context.Context, path string, r io.Reader, cfg *Config) (*Entry, error)

	// Update writes a file, overwriting any existing content.
	Update(ctx context.Context, path string, contents []byte, cfg *Config) (*Entry, error)

	// UpdateStream writes a file from a reader, overwriting any existing content.
	UpdateStream(ctx context.Context, path string, r io.Reader, cfg *Config) (*Entry, error)

	// Rename moves a file or directory to a new path.
	Rename(ctx context.Context, path, newPath string) error

	// Copy duplicates a file to a new path.
	Copy(ctx context.Context, path, newPath string) error

	// Delete removes a file.
	Delete(ctx context.Context, path string) error

	// DeleteDir removes a directory.
	DeleteDir(ctx context.Context, path string) error

	// CreateDir creates a directory and returns its entry.
	CreateDir(ctx context.Context, path string, cfg *Config) (*Entry, error)

	// Metadata returns the normalized entry for a file or directory.
	Metadata(ctx context.Context, path string) (*Entry, error)

	// Mimetype returns the full entry; callers extract the Mimetype field.
	Mimetype(ctx context.Context, path string) (*Entry, error)

	// Size returns the full entry; callers extract the Size field.
	Size(ctx context.Context, path string) (*Entry, error)

	// Timestamp returns the full entry; callers extract the Timestamp field.
	Timestamp(ctx context.Context, path string) (*Entry, error)

	// ListContents returns entries for the children of a directory. In
	// recursive mode, a child directory's contents follow its own entry.
	ListContents(ctx context.Context, path string, recursive bool) ([]*Entry, error)

	// SetVisibility sets the public/private visibility of a path.
	SetVisibility(ctx context.Context, path, visibility string) error

	// Visibility returns an entry carrying the visibility of a path.
	Visibility(ctx context.Context, path string) (*Entry, error)

	// Close closes any resources used by the storage backend.
	Close() error
}
