package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Document is a parsed controller document and where it came from.
type Document struct {
	Entry Entry
	Path  string // slash-separated, relative to the content root
	Hash  string // sha256 of the raw file
}

// LoadFailure records a document that could not be turned into an entry.
type LoadFailure struct {
	Path string
	Err  error
}

// LoadReport is the outcome of scanning a content tree.
type LoadReport struct {
	Documents []Document
	Skipped   []string // documents without frontmatter
	Failures  []LoadFailure
}

// Entries returns the entries of all loaded documents.
func (r *LoadReport) Entries() []Entry {
	out := make([]Entry, 0, len(r.Documents))
	for _, d := range r.Documents {
		out = append(out, d.Entry)
	}
	return out
}

// Catalog builds a catalog from the loaded documents.
func (r *LoadReport) Catalog() (*Catalog, error) {
	return New(r.Entries())
}

func isContentFile(name string) bool {
	return name == "index.mdx" || name == "index.md"
}

// Discover scans contentDir/<maker>/<model>/index.mdx (or index.md) and parses
// every document it finds. Documents that fail validation or collide with an
// identity already loaded are logged and recorded in the report; the scan
// carries on. Only I/O problems and cancellation abort it.
func Discover(ctx context.Context, contentDir string, logger *slog.Logger) (*LoadReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "discover")

	info, err := os.Stat(contentDir)
	if err != nil {
		return nil, fmt.Errorf("cannot stat content directory %s: %w", contentDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path is not a directory: %s", contentDir)
	}

	report := &LoadReport{}
	seen := map[Identity]string{}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !isContentFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}

		fail := func(err error) {
			logger.Warn("skipping invalid document", "path", rel, "error", err)
			report.Failures = append(report.Failures, LoadFailure{Path: rel, Err: err})
		}

		e, ok, err := ParseEntry(string(b))
		if err != nil {
			fail(err)
			return nil
		}
		if !ok {
			logger.Debug("document has no frontmatter", "path", rel)
			report.Skipped = append(report.Skipped, rel)
			return nil
		}

		e.ID = fillIdentity(e.ID, rel)
		if e.ID.IsZero() {
			fail(fmt.Errorf("cannot derive maker/model from %s", rel))
			return nil
		}
		if prev, dup := seen[e.ID]; dup {
			fail(fmt.Errorf("%w: %s already defined by %s", ErrDuplicateIdentity, e.ID, prev))
			return nil
		}
		seen[e.ID] = rel

		report.Documents = append(report.Documents, Document{Entry: e, Path: rel, Hash: contentHash(b)})
		return nil
	}

	if err := filepath.WalkDir(contentDir, walkFn); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("cannot scan content: %w", err)
	}

	logger.Info("content scanned",
		"documents", len(report.Documents),
		"skipped", len(report.Skipped),
		"failed", len(report.Failures))
	return report, nil
}

// fillIdentity completes id from the <maker>/<model>/index.mdx layout. Only
// documents exactly two directories deep take part; anything shallower or
// deeper must name itself in frontmatter.
func fillIdentity(id Identity, rel string) Identity {
	parts := strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/")
	if len(parts) != 2 {
		return id
	}
	if id.Maker == "" {
		id.Maker = parts[0]
	}
	if id.Model == "" {
		id.Model = parts[1]
	}
	return id
}

func contentHash(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
