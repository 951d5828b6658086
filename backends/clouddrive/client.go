package clouddrive

import (
	"context"
	"fmt"
	"io"
	"time"
)

// ModifiedFormat is the layout of the Modified field on Object responses.
const ModifiedFormat = time.RFC1123Z

// Client is the cloud drive API surface this adapter consumes. A concrete
// implementation (typically the vendor SDK wrapped to this shape) is
// injected at construction; the adapter performs no transport work itself.
//
// Calls return (nil, nil) when the service reports no result for the
// request. A size of 0 on PutFileStream means the length is unknown.
type Client interface {
	// GetFile fetches a file's content as a stream.
	GetFile(ctx context.Context, path string) (io.ReadCloser, error)

	// PutFile uploads a buffer. With overwrite false the service refuses
	// to replace an existing file.
	PutFile(ctx context.Context, path string, contents []byte, overwrite bool) (*Object, error)

	// PutFileStream uploads from a reader with a size hint.
	PutFileStream(ctx context.Context, path string, r io.Reader, size int64, overwrite bool) (*Object, error)

	// Move relocates a file or folder.
	Move(ctx context.Context, from, to string) (*Object, error)

	// Copy duplicates a file.
	Copy(ctx context.Context, from, to string) (*Object, error)

	// Delete removes a file or folder. The returned object carries
	// IsDeleted when the service performed the removal.
	Delete(ctx context.Context, path string) (*Object, error)

	// CreateFolder creates a folder.
	CreateFolder(ctx context.Context, path string) (*Object, error)

	// Metadata fetches a single object, with its children when
	// includeContents is set.
	Metadata(ctx context.Context, path string, includeContents bool) (*Object, error)
}

// Object is the structured response the cloud drive service returns for a
// file or folder.
type Object struct {
	Path      string   `json:"path"`
	IsDir     bool     `json:"is_dir"`
	Modified  string   `json:"modified"` // ModifiedFormat layout
	Bytes     int64    `json:"bytes"`
	MimeType  string   `json:"mime_type"`
	IsDeleted bool     `json:"is_deleted"`
	Contents  []Object `json:"contents"`
}

// StatusError is a failure carrying the service's HTTP-level status. The
// adapter distinguishes relocated resources from other failures by code.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cloud drive status %d: %s", e.StatusCode, e.Message)
}

// Relocated reports whether the status marks a resource that has moved.
func (e *StatusError) Relocated() bool {
	return e.StatusCode >= 300 && e.StatusCode < 400
}
