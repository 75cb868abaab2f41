package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_LoadsTreeAndRecordsProblems(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "snackbox/micro/index.mdx", docWith(nil))
	writeDoc(t, root, "hitbox/crossup/index.md", docWith(map[string]string{"name": "Cross|Up", "maker": "Hit Box"}))
	writeDoc(t, root, "hitbox/broken/index.mdx", docWith(map[string]string{"buttonType": "foo"}))
	writeDoc(t, root, "hitbox/draft/index.mdx", "# Coming soon\n")
	writeDoc(t, root, "hitbox/crossup/notes.md", docWith(map[string]string{"buttonType": "foo"}))

	report, err := Discover(context.Background(), root, quietLogger())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(report.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(report.Documents))
	}
	ids := map[Identity]Document{}
	for _, d := range report.Documents {
		ids[d.Entry.ID] = d
	}
	micro, ok := ids[Identity{Maker: "snackbox", Model: "micro"}]
	if !ok {
		t.Fatalf("identity not derived from path: %v", ids)
	}
	if micro.Path != "snackbox/micro/index.mdx" {
		t.Fatalf("path = %q", micro.Path)
	}
	if len(micro.Hash) != 64 {
		t.Fatalf("expected sha256 hex hash, got %q", micro.Hash)
	}

	if len(report.Skipped) != 1 || report.Skipped[0] != "hitbox/draft/index.mdx" {
		t.Fatalf("skipped = %v", report.Skipped)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("failures = %v", report.Failures)
	}
	f := report.Failures[0]
	var fe *InvalidFieldError
	if f.Path != "hitbox/broken/index.mdx" || !errors.As(f.Err, &fe) || fe.Field != "buttonType" {
		t.Fatalf("unexpected failure: %+v", f)
	}
}

func TestDiscover_FrontmatterIdentityWins(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "misc/thing/index.mdx", docWith(map[string]string{"company": "qanba", "controller": "drone"}))

	report, err := Discover(context.Background(), root, quietLogger())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(report.Documents) != 1 {
		t.Fatalf("documents = %d", len(report.Documents))
	}
	if got := report.Documents[0].Entry.ID; got != (Identity{Maker: "qanba", Model: "drone"}) {
		t.Fatalf("identity = %v", got)
	}
}

func TestDiscover_DuplicateIdentityIsAFailure(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "snackbox/micro/index.md", docWith(nil))
	writeDoc(t, root, "snackbox/micro/index.mdx", docWith(nil))

	report, err := Discover(context.Background(), root, quietLogger())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(report.Documents) != 1 || len(report.Failures) != 1 {
		t.Fatalf("documents=%d failures=%d", len(report.Documents), len(report.Failures))
	}
	if !errors.Is(report.Failures[0].Err, ErrDuplicateIdentity) {
		t.Fatalf("unexpected error: %v", report.Failures[0].Err)
	}
	if _, err := report.Catalog(); err != nil {
		t.Fatalf("catalog from report: %v", err)
	}
}

func TestDiscover_TopLevelDocumentWithoutModel(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "index.mdx", docWith(nil))

	report, err := Discover(context.Background(), root, quietLogger())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("expected identity failure, got %+v", report)
	}
}

func TestDiscover_MissingDirectory(t *testing.T) {
	_, err := Discover(context.Background(), filepath.Join(t.TempDir(), "nope"), quietLogger())
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "snackbox/micro/index.mdx", docWith(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, root, quietLogger())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDiscover_NestedDocumentDoesNotBorrowIdentity(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "hitbox/crossup/index.mdx", docWith(nil))
	writeDoc(t, root, "hitbox/crossup/v2/index.mdx", docWith(nil))
	writeDoc(t, root, "hitbox/crossup/v3/index.mdx", docWith(map[string]string{"company": "hitbox", "controller": "crossup-v3"}))

	report, err := Discover(context.Background(), root, quietLogger())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(report.Documents) != 2 {
		t.Fatalf("documents = %+v", report.Documents)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("failures = %+v", report.Failures)
	}
	f := report.Failures[0]
	if f.Path != "hitbox/crossup/v2/index.mdx" || errors.Is(f.Err, ErrDuplicateIdentity) {
		t.Fatalf("nested document should fail for missing identity, got %s: %v", f.Path, f.Err)
	}
}
