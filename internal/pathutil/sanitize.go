package pathutil

import (
	"path/filepath"
	"strings"

	"github.com/driftfs/driftfs/backends"
)

// Clean sanitizes a caller-supplied path for use under a backend root. It
// rejects absolute paths and traversal sequences that would escape the
// root, and returns the canonical form.
func Clean(p string) (string, error) {
	if p == "" {
		return "/", nil
	}
	if filepath.IsAbs(p) && p != "/" {
		return "", backends.ErrForbidden
	}

	// Track depth segment by segment; rising above the root at any point
	// is an escape even if later segments descend again.
	depth := 0
	for _, part := range strings.Split(strings.Trim(p, "/"), "/") {
		switch part {
		case "", ".":
		case "..":
			depth--
			if depth < 0 {
				return "", backends.ErrForbidden
			}
		default:
			depth++
		}
	}

	return Canonical(p), nil
}

// SafeJoin joins a root directory with a relative path, guaranteeing the
// result stays inside the root.
func SafeJoin(root, rel string) (string, error) {
	cleanRel, err := Clean(rel)
	if err != nil {
		return "", err
	}

	joined := filepath.Join(filepath.Clean(root), strings.TrimPrefix(cleanRel, "/"))

	relPath, err := filepath.Rel(filepath.Clean(root), joined)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, "../") {
		return "", backends.ErrForbidden
	}
	return joined, nil
}
