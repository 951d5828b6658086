package localfs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/driftfs/driftfs/backends"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}
	return a
}

func TestWriteAndRead(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	entry, err := a.Write(ctx, "docs/note.txt", []byte("hello"), nil)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if entry.Path != "docs/note.txt" || entry.Type != backends.TypeFile || entry.Size != 5 {
		t.Errorf("write entry = %+v, want file docs/note.txt of size 5", entry)
	}

	got, err := a.Read(ctx, "docs/note.txt")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got.Contents) != "hello" {
		t.Errorf("contents = %q, want %q", got.Contents, "hello")
	}
	if got.Timestamp == 0 {
		t.Error("expected a timestamp on the read entry")
	}
}

func TestWriteRefusesExisting(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	if _, err := a.Write(ctx, "f.txt", []byte("one"), nil); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if _, err := a.Write(ctx, "f.txt", []byte("two"), nil); !errors.Is(err, backends.ErrAlreadyExists) {
		t.Fatalf("second write error = %v, want ErrAlreadyExists", err)
	}

	if _, err := a.Update(ctx, "f.txt", []byte("two"), nil); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err := a.Read(ctx, "f.txt")
	if err != nil {
		t.Fatalf("read after update failed: %v", err)
	}
	if string(got.Contents) != "two" {
		t.Errorf("after update contents = %q, want %q", got.Contents, "two")
	}
}

func TestWriteStream(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	entry, err := a.WriteStream(ctx, "s.txt", strings.NewReader("stream body"), nil)
	if err != nil {
		t.Fatalf("write stream failed: %v", err)
	}
	if entry.Size != int64(len("stream body")) {
		t.Errorf("size = %d, want %d", entry.Size, len("stream body"))
	}
}

func TestHas(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	ok, err := a.Has(ctx, "missing.txt")
	if err != nil || ok {
		t.Errorf("Has(missing) = (%v, %v), want (false, nil)", ok, err)
	}

	if _, err := a.Write(ctx, "present.txt", []byte("x"), nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	ok, err = a.Has(ctx, "present.txt")
	if err != nil || !ok {
		t.Errorf("Has(present) = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestRenameAndCopy(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	if _, err := a.Write(ctx, "a.txt", []byte("payload"), nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := a.Copy(ctx, "a.txt", "copies/b.txt"); err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if err := a.Rename(ctx, "a.txt", "moved/c.txt"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	if ok, _ := a.Has(ctx, "a.txt"); ok {
		t.Error("source still exists after rename")
	}
	for _, p := range []string{"copies/b.txt", "moved/c.txt"} {
		got, err := a.Read(ctx, p)
		if err != nil {
			t.Fatalf("read %s failed: %v", p, err)
		}
		if string(got.Contents) != "payload" {
			t.Errorf("read %s = %q, want payload", p, got.Contents)
		}
	}
}

func TestRenameMissingSource(t *testing.T) {
	a := newTestAdapter(t)

	err := a.Rename(context.Background(), "nope.txt", "still-nope.txt")
	if !errors.Is(err, backends.ErrOperationFailed) {
		t.Errorf("rename error = %v, want ErrOperationFailed", err)
	}
}

func TestDelete(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	if _, err := a.Write(ctx, "gone.txt", []byte("x"), nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := a.Delete(ctx, "gone.txt"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := a.Delete(ctx, "gone.txt"); !errors.Is(err, backends.ErrOperationFailed) {
		t.Errorf("second delete error = %v, want ErrOperationFailed", err)
	}
}

func TestCreateAndDeleteDir(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	entry, err := a.CreateDir(ctx, "nested/dir", nil)
	if err != nil {
		t.Fatalf("create dir failed: %v", err)
	}
	if entry.Type != backends.TypeDir || entry.Path != "nested/dir" {
		t.Errorf("entry = %+v, want dir nested/dir", entry)
	}

	if _, err := a.Write(ctx, "nested/dir/file.txt", []byte("x"), nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := a.DeleteDir(ctx, "nested"); err != nil {
		t.Fatalf("delete dir failed: %v", err)
	}
	if ok, _ := a.Has(ctx, "nested/dir/file.txt"); ok {
		t.Error("file survived directory delete")
	}
}

func TestMetadata(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	if _, err := a.Write(ctx, "m/info.json", []byte(`{}`), nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	entry, err := a.Metadata(ctx, "m/info.json")
	if err != nil {
		t.Fatalf("metadata failed: %v", err)
	}
	if entry.Type != backends.TypeFile || entry.Size != 2 {
		t.Errorf("entry = %+v, want file of size 2", entry)
	}
	if !strings.HasPrefix(entry.Mimetype, "application/json") {
		t.Errorf("mimetype = %q, want application/json", entry.Mimetype)
	}

	if _, err := a.Metadata(ctx, "missing"); !errors.Is(err, backends.ErrNotFound) {
		t.Errorf("metadata for missing path = %v, want ErrNotFound", err)
	}

	dir, err := a.Metadata(ctx, "m")
	if err != nil {
		t.Fatalf("dir metadata failed: %v", err)
	}
	if dir.Type != backends.TypeDir {
		t.Errorf("dir metadata = %+v, want dir entry", dir)
	}
}

func TestListContents(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	for _, p := range []string{"top/z.txt", "top/sub/inner.txt"} {
		if _, err := a.Write(ctx, p, []byte("x"), nil); err != nil {
			t.Fatalf("write %s failed: %v", p, err)
		}
	}

	flat, err := a.ListContents(ctx, "top", false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(flat) != 2 {
		t.Fatalf("flat listing has %d entries, want 2", len(flat))
	}

	deep, err := a.ListContents(ctx, "top", true)
	if err != nil {
		t.Fatalf("recursive list failed: %v", err)
	}
	want := []string{"top/sub", "top/sub/inner.txt", "top/z.txt"}
	if len(deep) != len(want) {
		t.Fatalf("recursive listing has %d entries, want %d", len(deep), len(want))
	}
	for i, p := range want {
		if deep[i].Path != p {
			t.Errorf("entry %d = %q, want %q", i, deep[i].Path, p)
		}
	}

	empty, err := a.ListContents(ctx, "does-not-exist", false)
	if err != nil || len(empty) != 0 {
		t.Errorf("listing missing dir = %v (%v), want empty", empty, err)
	}
}

func TestEscapeRejected(t *testing.T) {
	a := newTestAdapter(t)

	if _, err := a.Read(context.Background(), "../outside.txt"); !errors.Is(err, backends.ErrForbidden) {
		t.Errorf("escape read error = %v, want ErrForbidden", err)
	}
}

func TestVisibilityNotSupported(t *testing.T) {
	a := newTestAdapter(t)

	if err := a.SetVisibility(context.Background(), "x", backends.VisibilityPrivate); !errors.Is(err, backends.ErrNotSupported) {
		t.Errorf("SetVisibility error = %v, want ErrNotSupported", err)
	}
}
