package pathutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/driftfs/driftfs/backends"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
	}{
		{name: "empty path", input: "", expected: "/"},
		{name: "simple path", input: "file.txt", expected: "/file.txt"},
		{name: "nested path", input: "dir/subdir/file.txt", expected: "/dir/subdir/file.txt"},
		{name: "root path", input: "/", expected: "/"},
		{name: "absolute path escape", input: "/etc/passwd", shouldError: true},
		{name: "directory traversal", input: "../../../etc/passwd", shouldError: true},
		{name: "mixed traversal", input: "dir/../../../etc/passwd", shouldError: true},
		{name: "safe relative navigation", input: "dir/../file.txt", expected: "/file.txt"},
		{name: "current directory", input: "./file.txt", expected: "/file.txt"},
		{name: "multiple slashes", input: "dir//file.txt", expected: "/dir/file.txt"},
		{name: "trailing slash", input: "dir/", expected: "/dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Clean(tt.input)

			if tt.shouldError {
				if err == nil {
					t.Fatalf("expected error for input %q, got none", tt.input)
				}
				if !errors.Is(err, backends.ErrForbidden) {
					t.Errorf("expected ErrForbidden, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for input %q: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("for input %q, expected %q, got %q", tt.input, tt.expected, result)
			}
		})
	}
}

func TestSafeJoin(t *testing.T) {
	tests := []struct {
		name        string
		root        string
		rel         string
		shouldError bool
	}{
		{name: "safe join", root: "/safe/root", rel: "file.txt"},
		{name: "safe nested join", root: "/safe/root", rel: "dir/subdir/file.txt"},
		{name: "escape attempt", root: "/safe/root", rel: "../../../etc/passwd", shouldError: true},
		{name: "absolute path escape", root: "/safe/root", rel: "/etc/passwd", shouldError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SafeJoin(tt.root, tt.rel)

			if tt.shouldError {
				if err == nil {
					t.Fatalf("expected error for root %q, rel %q, got none", tt.root, tt.rel)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for root %q, rel %q: %v", tt.root, tt.rel, err)
			}
			if !strings.HasPrefix(result, tt.root) {
				t.Errorf("result %q does not start with root %q", result, tt.root)
			}
		})
	}
}
