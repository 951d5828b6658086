package backends

import "errors"

// Common backend errors. Callers branch on these with errors.Is; soft
// failures carry no further detail.
var (
	// ErrNotFound signals a missing file or directory. Backends also map
	// relocated-resource responses to ErrNotFound.
	ErrNotFound = errors.New("path not found")

	// ErrAlreadyExists signals a write to a path that already exists.
	ErrAlreadyExists = errors.New("path already exists")

	// ErrForbidden signals a path that escapes the backend root.
	ErrForbidden = errors.New("access forbidden")

	// ErrNotSupported signals an operation the backend cannot perform.
	ErrNotSupported = errors.New("operation not supported")

	// ErrOperationFailed signals a failed rename, copy, delete, or
	// directory creation. The underlying cause is deliberately not
	// attached; these operations have a success/failure contract only.
	ErrOperationFailed = errors.New("operation failed")
)
