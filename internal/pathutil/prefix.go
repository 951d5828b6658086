// Package pathutil provides path normalization and containment helpers for
// driftfs backends.
package pathutil

import (
	"path"
	"strings"
)

// Canonical returns the canonical form of a path: exactly one leading
// slash, no trailing slash, no empty or "." segments. The root is "/".
func Canonical(p string) string {
	cleaned := path.Clean("/" + strings.Trim(p, "/"))
	if cleaned == "." {
		return "/"
	}
	return cleaned
}

// Prefix scopes every backend call under a fixed path segment. The zero
// value applies no prefix.
type Prefix struct {
	value string // canonical, "/" when empty
}

// NewPrefix builds a Prefix from a configured segment. Leading and trailing
// slashes are ignored; an empty segment yields a no-op prefix.
func NewPrefix(segment string) Prefix {
	return Prefix{value: Canonical(segment)}
}

// String returns the canonical prefix, or "/" when no prefix is set.
func (p Prefix) String() string {
	if p.value == "" {
		return "/"
	}
	return p.value
}

// Apply prepends the prefix to a path and returns the canonical result.
func (p Prefix) Apply(loc string) string {
	loc = Canonical(loc)
	if p.value == "" || p.value == "/" {
		return loc
	}
	if loc == "/" {
		return p.value
	}
	return p.value + loc
}

// Strip removes the prefix and the leading slash from a path returned by
// the backend, yielding the caller-facing form.
func (p Prefix) Strip(loc string) string {
	loc = Canonical(loc)
	if p.value != "" && p.value != "/" && strings.HasPrefix(loc, p.value) {
		loc = loc[len(p.value):]
	}
	return strings.TrimPrefix(loc, "/")
}

// RestoreCasing repairs the casing drift some clients introduce in listing
// responses: when child matches dir case-insensitively over the directory
// portion, that portion is rewritten with the requested casing.
func RestoreCasing(child, dir string) string {
	child = Canonical(child)
	dir = Canonical(dir)
	if dir == "/" {
		return child
	}
	if len(child) >= len(dir) && strings.EqualFold(child[:len(dir)], dir) {
		return dir + child[len(dir):]
	}
	return child
}
