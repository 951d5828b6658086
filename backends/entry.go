package backends

import "io"

// Entry types
const (
	TypeFile = "file"
	TypeDir  = "dir"
)

// Visibility values
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Entry is the backend-agnostic record returned for every file or directory.
// It is built fresh from each backend response and never cached.
type Entry struct {
	Path      string `json:"path"`
	Type      string `json:"type"` // "file" or "dir"
	Timestamp int64  `json:"timestamp,omitempty"`
	Size      int64  `json:"size,omitempty"`
	Mimetype  string `json:"mimetype,omitempty"`

	// Contents holds the file body for buffered reads.
	Contents []byte `json:"-"`

	// Stream holds the file body for streaming reads. The caller must
	// close it.
	Stream io.ReadCloser `json:"-"`

	// Visibility is set only by backends that support visibility.
	Visibility string `json:"visibility,omitempty"`
}

// Config carries optional per-write settings. All fields are optional;
// backends ignore the ones they cannot honor.
type Config struct {
	// Visibility requests a public or private ACL where the backend
	// supports one.
	Visibility string

	// Mimetype overrides the content type detected from the path.
	Mimetype string
}

// GetVisibility returns the configured visibility, or empty when cfg is nil.
func (c *Config) GetVisibility() string {
	if c == nil {
		return ""
	}
	return c.Visibility
}

// GetMimetype returns the configured mimetype, or empty when cfg is nil.
func (c *Config) GetMimetype() string {
	if c == nil {
		return ""
	}
	return c.Mimetype
}
