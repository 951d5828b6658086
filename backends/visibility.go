package backends

import "context"

// UnsupportedVisibility is a default implementation of the visibility
// operations for backends that have no public/private ACL concept. Embed it
// to satisfy the Filesystem interface; both operations fail with
// ErrNotSupported for any path.
type UnsupportedVisibility struct{}

// SetVisibility always fails with ErrNotSupported.
func (UnsupportedVisibility) SetVisibility(ctx context.Context, path, visibility string) error {
	return ErrNotSupported
}

// Visibility always fails with ErrNotSupported.
func (UnsupportedVisibility) Visibility(ctx context.Context, path string) (*Entry, error) {
	return nil, ErrNotSupported
}
