package pathutil

import (
	"strings"
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: "/"},
		{name: "root", input: "/", expected: "/"},
		{name: "relative", input: "a/b.txt", expected: "/a/b.txt"},
		{name: "leading slash kept single", input: "//a/b.txt", expected: "/a/b.txt"},
		{name: "trailing slash removed", input: "/a/b/", expected: "/a/b"},
		{name: "inner double slash", input: "/a//b", expected: "/a/b"},
		{name: "dot segments", input: "/a/./b", expected: "/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonical(tt.input); got != tt.expected {
				t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPrefixApply(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		path     string
		expected string
	}{
		{name: "no prefix", prefix: "", path: "a/b.txt", expected: "/a/b.txt"},
		{name: "simple prefix", prefix: "scope", path: "a/b.txt", expected: "/scope/a/b.txt"},
		{name: "prefix with slashes", prefix: "/scope/", path: "/a/b.txt", expected: "/scope/a/b.txt"},
		{name: "root path", prefix: "scope", path: "/", expected: "/scope"},
		{name: "root path no prefix", prefix: "", path: "", expected: "/"},
		{name: "nested prefix", prefix: "apps/driftfs", path: "x", expected: "/apps/driftfs/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPrefix(tt.prefix).Apply(tt.path)
			if got != tt.expected {
				t.Errorf("Apply(%q) with prefix %q = %q, want %q", tt.path, tt.prefix, got, tt.expected)
			}
			if !strings.HasPrefix(got, "/") || strings.HasPrefix(got, "//") {
				t.Errorf("Apply(%q) = %q, want exactly one leading slash", tt.path, got)
			}
			if got != "/" && strings.HasSuffix(got, "/") {
				t.Errorf("Apply(%q) = %q, want no trailing slash", tt.path, got)
			}
		})
	}
}

func TestPrefixStrip(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		path     string
		expected string
	}{
		{name: "prefix removed", prefix: "scope", path: "/scope/a/b.txt", expected: "a/b.txt"},
		{name: "no prefix configured", prefix: "", path: "/a/b.txt", expected: "a/b.txt"},
		{name: "leading slash removed", prefix: "scope", path: "/scope/x", expected: "x"},
		{name: "unrelated path untouched", prefix: "scope", path: "/other/x", expected: "other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPrefix(tt.prefix).Strip(tt.path)
			if got != tt.expected {
				t.Errorf("Strip(%q) with prefix %q = %q, want %q", tt.path, tt.prefix, got, tt.expected)
			}
		})
	}
}

func TestRestoreCasing(t *testing.T) {
	tests := []struct {
		name     string
		child    string
		dir      string
		expected string
	}{
		{name: "lowercased dir repaired", child: "/photos/img.png", dir: "/Photos", expected: "/Photos/img.png"},
		{name: "matching case untouched", child: "/Photos/img.png", dir: "/Photos", expected: "/Photos/img.png"},
		{name: "root dir", child: "/img.png", dir: "/", expected: "/img.png"},
		{name: "unrelated dir untouched", child: "/other/img.png", dir: "/Photos", expected: "/other/img.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RestoreCasing(tt.child, tt.dir); got != tt.expected {
				t.Errorf("RestoreCasing(%q, %q) = %q, want %q", tt.child, tt.dir, got, tt.expected)
			}
		})
	}
}
