// Package clouddrive adapts the driftfs filesystem interface onto a cloud
// drive client. Every operation is a single delegated client call followed
// by reshaping the response into a normalized entry.
package clouddrive

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/driftfs/driftfs/backends"
	"github.com/driftfs/driftfs/internal/pathutil"
)

// Adapter implements the backends.Filesystem interface over a cloud drive
// client handle. It holds no state beyond the client, the path prefix, and
// a logger, all fixed at construction.
type Adapter struct {
	backends.UnsupportedVisibility

	client Client
	prefix pathutil.Prefix
	logger *zap.Logger
}

// New creates a cloud drive adapter. All operations are scoped under
// prefix when it is non-empty.
func New(client Client, prefix string, logger *zap.Logger) (*Adapter, error) {
	if client == nil {
		return nil, fmt.Errorf("cloud drive client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Adapter{
		client: client,
		prefix: pathutil.NewPrefix(prefix),
		logger: logger,
	}, nil
}

// Client exposes the underlying client handle for callers needing direct
// access to the service API.
func (a *Adapter) Client() Client {
	return a.client
}

// Close closes any resources used by the adapter.
func (a *Adapter) Close() error {
	// The client handle is owned by the caller.
	return nil
}

// location converts a caller path into the prefixed canonical form sent to
// the client.
func (a *Adapter) location(path string) string {
	return a.prefix.Apply(path)
}

// normalizeEntry reshapes a client object into the backend-agnostic entry.
func (a *Adapter) normalizeEntry(obj *Object) *backends.Entry {
	entry := &backends.Entry{
		Path:     a.prefix.Strip(obj.Path),
		Type:     backends.TypeFile,
		Size:     obj.Bytes,
		Mimetype: obj.MimeType,
	}
	if obj.IsDir {
		entry.Type = backends.TypeDir
	}
	if obj.Modified != "" {
		if t, err := time.Parse(ModifiedFormat, obj.Modified); err == nil {
			entry.Timestamp = t.Unix()
		}
	}
	return entry
}
