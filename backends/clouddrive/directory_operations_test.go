package clouddrive

import (
	"context"
	"testing"

	"github.com/driftfs/driftfs/backends"
)

// listingClient serves canned directory listings keyed by requested path.
type listingClient struct {
	fakeClient
	dirs map[string]*Object
}

func newListingClient(dirs map[string]*Object) *listingClient {
	c := &listingClient{dirs: dirs}
	c.fakeClient.metadata = func(ctx context.Context, path string, includeContents bool) (*Object, error) {
		return c.dirs[path], nil
	}
	return c
}

func TestListContentsEmptyDirectory(t *testing.T) {
	client := newListingClient(map[string]*Object{
		"/empty": {Path: "/empty", IsDir: true},
	})
	a := newTestAdapter(t, client, "")

	entries, err := a.ListContents(context.Background(), "empty", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestListContentsNoResult(t *testing.T) {
	client := newListingClient(map[string]*Object{})
	a := newTestAdapter(t, client, "")

	entries, err := a.ListContents(context.Background(), "missing", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("got %v, want empty slice", entries)
	}
}

func TestListContentsFlat(t *testing.T) {
	client := newListingClient(map[string]*Object{
		"/docs": {
			Path:  "/docs",
			IsDir: true,
			Contents: []Object{
				{Path: "/docs/a.txt", Bytes: 3, MimeType: "text/plain"},
				{Path: "/docs/sub", IsDir: true},
			},
		},
	})
	a := newTestAdapter(t, client, "")

	entries, err := a.ListContents(context.Background(), "docs", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Path != "docs/a.txt" || entries[0].Type != backends.TypeFile {
		t.Errorf("first entry = %+v, want file docs/a.txt", entries[0])
	}
	if entries[1].Path != "docs/sub" || entries[1].Type != backends.TypeDir {
		t.Errorf("second entry = %+v, want dir docs/sub", entries[1])
	}
}

func TestListContentsRecursive(t *testing.T) {
	client := newListingClient(map[string]*Object{
		"/docs": {
			Path:  "/docs",
			IsDir: true,
			Contents: []Object{
				{Path: "/docs/sub", IsDir: true},
				{Path: "/docs/z.txt"},
			},
		},
		"/docs/sub": {
			Path:  "/docs/sub",
			IsDir: true,
			Contents: []Object{
				{Path: "/docs/sub/inner.txt"},
			},
		},
	})
	a := newTestAdapter(t, client, "")

	entries, err := a.ListContents(context.Background(), "docs", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"docs/sub", "docs/sub/inner.txt", "docs/z.txt"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, path := range want {
		if entries[i].Path != path {
			t.Errorf("entry %d = %q, want %q (subdirectory contents must follow its entry)", i, entries[i].Path, path)
		}
	}
}

func TestListContentsRepairsCasing(t *testing.T) {
	// The service lowercases the directory portion of child paths.
	client := newListingClient(map[string]*Object{
		"/Photos": {
			Path:  "/Photos",
			IsDir: true,
			Contents: []Object{
				{Path: "/photos/Img.png"},
			},
		},
	})
	a := newTestAdapter(t, client, "")

	entries, err := a.ListContents(context.Background(), "Photos", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Path != "Photos/Img.png" {
		t.Errorf("entry path = %q, want %q", entries[0].Path, "Photos/Img.png")
	}
}

func TestListContentsWithPrefix(t *testing.T) {
	client := newListingClient(map[string]*Object{
		"/scope/docs": {
			Path:  "/scope/docs",
			IsDir: true,
			Contents: []Object{
				{Path: "/scope/docs/a.txt"},
			},
		},
	})
	a := newTestAdapter(t, client, "scope")

	entries, err := a.ListContents(context.Background(), "docs", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "docs/a.txt" {
		t.Errorf("entries = %+v, want single prefix-stripped entry docs/a.txt", entries)
	}
}

func TestTypedGettersReturnFullEntry(t *testing.T) {
	obj := &Object{
		Path:     "/report.pdf",
		Modified: "Wed, 01 Jan 2020 00:00:00 +0000",
		Bytes:    1024,
		MimeType: "application/pdf",
	}
	client := &fakeClient{
		metadata: func(ctx context.Context, path string, includeContents bool) (*Object, error) {
			return obj, nil
		},
	}
	a := newTestAdapter(t, client, "")

	for name, fn := range map[string]func(context.Context, string) (*backends.Entry, error){
		"Mimetype":  a.Mimetype,
		"Size":      a.Size,
		"Timestamp": a.Timestamp,
	} {
		entry, err := fn(context.Background(), "report.pdf")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if entry.Mimetype != "application/pdf" || entry.Size != 1024 || entry.Timestamp != 1577836800 {
			t.Errorf("%s returned partial entry: %+v", name, entry)
		}
	}
}
