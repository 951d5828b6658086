// Package noop provides a storage backend whose every operation fails.
// It stands in for backends that are not configured or enabled.
package noop

import (
	"context"
	"fmt"
	"io"

	"github.com/driftfs/driftfs/backends"
)

// Adapter is a no-operation storage backend that always returns errors
type Adapter struct {
	backends.UnsupportedVisibility
}

// New creates a new noop storage adapter
func New() backends.Filesystem {
	return &Adapter{}
}

func notEnabled(op, path string) error {
	return fmt.Errorf("backend not enabled: cannot %s %s", op, path)
}

// Has always returns an error for noop backend
func (n *Adapter) Has(ctx context.Context, path string) (bool, error) {
	return false, notEnabled("check", path)
}

// Read always returns an error for noop backend
func (n *Adapter) Read(ctx context.Context, path string) (*backends.Entry, error) {
	return nil, notEnabled("read", path)
}

// ReadStream always returns an error for noop backend
func (n *Adapter) ReadStream(ctx context.Context, path string) (*backends.Entry, error) {
	return nil, notEnabled("read", path)
}

// Write always returns an error for noop backend
func (n *Adapter) Write(ctx context.Context, path string, contents []byte, cfg *backends.Config) (*backends.Entry, error) {
	return nil, notEnabled("write", path)
}

// WriteStream always returns an error for noop backend
func (n *Adapter) WriteStream(ctx context.Context, path string, r io.Reader, cfg *backends.Config) (*backends.Entry, error) {
	return nil, notEnabled("write", path)
}

// Update always returns an error for noop backend
func (n *Adapter) Update(ctx context.Context, path string, contents []byte, cfg *backends.Config) (*backends.Entry, error) {
	return nil, notEnabled("update", path)
}

// UpdateStream always returns an error for noop backend
func (n *Adapter) UpdateStream(ctx context.Context, path string, r io.Reader, cfg *backends.Config) (*backends.Entry, error) {
	return nil, notEnabled("update", path)
}

// Rename always returns an error for noop backend
func (n *Adapter) Rename(ctx context.Context, path, newPath string) error {
	return notEnabled("rename", path)
}

// Copy always returns an error for noop backend
func (n *Adapter) Copy(ctx context.Context, path, newPath string) error {
	return notEnabled("copy", path)
}

// Delete always returns an error for noop backend
func (n *Adapter) Delete(ctx context.Context, path string) error {
	return notEnabled("delete", path)
}

// DeleteDir always returns an error for noop backend
func (n *Adapter) DeleteDir(ctx context.Context, path string) error {
	return notEnabled("delete directory", path)
}

// CreateDir always returns an error for noop backend
func (n *Adapter) CreateDir(ctx context.Context, path string, cfg *backends.Config) (*backends.Entry, error) {
	return nil, notEnabled("create directory", path)
}

// Metadata always returns an error for noop backend
func (n *Adapter) Metadata(ctx context.Context, path string) (*backends.Entry, error) {
	return nil, notEnabled("stat", path)
}

// Mimetype always returns an error for noop backend
func (n *Adapter) Mimetype(ctx context.Context, path string) (*backends.Entry, error) {
	return nil, notEnabled("stat", path)
}

// Size always returns an error for noop backend
func (n *Adapter) Size(ctx context.Context, path string) (*backends.Entry, error) {
	return nil, notEnabled("stat", path)
}

// Timestamp always returns an error for noop backend
func (n *Adapter) Timestamp(ctx context.Context, path string) (*backends.Entry, error) {
	return nil, notEnabled("stat", path)
}

// ListContents always returns an error for noop backend
func (n *Adapter) ListContents(ctx context.Context, path string, recursive bool) ([]*backends.Entry, error) {
	return nil, notEnabled("list", path)
}

// Close does nothing for noop backend
func (n *Adapter) Close() error {
	return nil
}
