package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bvoo/arcadewiki/internal/catalog"
	"github.com/gofrs/flock"
)

// DefaultLockTimeout bounds how long Build waits for a concurrent build.
const DefaultLockTimeout = 10 * time.Second

// BuildOptions controls snapshot building.
type BuildOptions struct {
	ContentDir  string
	OutDir      string
	Force       bool
	LockTimeout time.Duration
	Logger      *slog.Logger
}

// BuildResult reports what a build did.
type BuildResult struct {
	Manifest  Manifest
	Report    *catalog.LoadReport
	Unchanged bool // existing snapshot already matched the content tree
}

// Build scans opts.ContentDir and installs a snapshot at opts.OutDir.
//
// The build holds an exclusive lock next to OutDir for its whole duration.
// When the existing snapshot was built from identical content the rewrite is
// skipped unless Force is set. The new snapshot is written to a temporary
// directory and swapped into place.
func Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if opts.ContentDir == "" {
		return nil, fmt.Errorf("content dir is required")
	}
	if opts.OutDir == "" {
		return nil, fmt.Errorf("out dir is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "snapshot")

	parent := filepath.Dir(opts.OutDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create snapshot parent %s: %w", parent, err)
	}
	unlock, err := acquireLock(ctx, opts.OutDir+".lock", opts.LockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	report, err := catalog.Discover(ctx, opts.ContentDir, logger)
	if err != nil {
		return nil, err
	}
	if len(report.Documents) == 0 {
		return nil, fmt.Errorf("no controller documents found under %s", opts.ContentDir)
	}
	if _, err := report.Catalog(); err != nil {
		return nil, err
	}

	hash := ContentHash(report.Documents)
	if !opts.Force {
		if old, err := Load(opts.OutDir); err == nil && old.Manifest.ContentHash == hash {
			logger.Info("snapshot up to date", "dir", opts.OutDir, "entries", old.Manifest.EntryCount)
			return &BuildResult{Manifest: old.Manifest, Report: report, Unchanged: true}, nil
		}
	}

	records := make([]Record, 0, len(report.Documents))
	for _, d := range report.Documents {
		records = append(records, DocumentToRecord(d))
	}
	manifest := Manifest{
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		ContentHash: hash,
		EntriesFile: defaultEntriesFile,
	}

	tmpDir, err := os.MkdirTemp(parent, ".snapshot-*")
	if err != nil {
		return nil, fmt.Errorf("cannot create temp snapshot dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := Write(tmpDir, manifest, records); err != nil {
		return nil, err
	}
	if err := AtomicSwap(tmpDir, opts.OutDir); err != nil {
		return nil, err
	}

	manifest.SnapshotVersion = Version
	manifest.EntryCount = len(records)
	logger.Info("snapshot written", "dir", opts.OutDir, "entries", len(records))
	return &BuildResult{Manifest: manifest, Report: report}, nil
}

// ContentHash fingerprints a set of documents by path and source hash.
func ContentHash(docs []catalog.Document) string {
	lines := make([]string, 0, len(docs))
	for _, d := range docs {
		lines = append(lines, d.Path+"\x00"+d.Hash)
	}
	sort.Strings(lines)
	h := sha256.New()
	for _, ln := range lines {
		h.Write([]byte(ln))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// AtomicSwap installs srcDir at destDir. A previous snapshot is moved to
// destDir+".bak" first and put back if the install fails; a failed restore is
// reported alongside the install error.
func AtomicSwap(srcDir, destDir string) error {
	if err := os.MkdirAll(filepath.Dir(destDir), 0o755); err != nil {
		return fmt.Errorf("cannot create snapshot parent: %w", err)
	}
	backup := destDir + ".bak"
	if err := os.RemoveAll(backup); err != nil {
		return fmt.Errorf("cannot clear stale backup %s: %w", backup, err)
	}

	hadPrevious := false
	if _, err := os.Stat(destDir); err == nil {
		if err := os.Rename(destDir, backup); err != nil {
			return fmt.Errorf("cannot move previous snapshot aside: %w", err)
		}
		hadPrevious = true
	}

	if err := os.Rename(srcDir, destDir); err != nil {
		installErr := fmt.Errorf("cannot install snapshot: %w", err)
		if !hadPrevious {
			return installErr
		}
		if rbErr := os.Rename(backup, destDir); rbErr != nil {
			return errors.Join(installErr, fmt.Errorf("cannot restore previous snapshot: %w", rbErr))
		}
		return installErr
	}
	if err := os.RemoveAll(backup); err != nil {
		return fmt.Errorf("cannot remove backup %s: %w", backup, err)
	}
	return nil
}

// acquireLock takes the build lock, polling until timeout or cancellation.
func acquireLock(ctx context.Context, lockPath string, timeout time.Duration) (func(), error) {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire snapshot lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w (lock: %s)", ErrBuildLocked, lockPath)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// Locked reports whether a build currently holds the lock for outDir. A lock
// file that does not exist yet means no build ever ran; it is not created.
func Locked(outDir string) (bool, error) {
	lockPath := outDir + ".lock"
	if _, err := os.Stat(lockPath); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	l := flock.New(lockPath)
	ok, err := l.TryLock()
	if err != nil {
		return false, fmt.Errorf("cannot probe snapshot lock: %w", err)
	}
	if !ok {
		return true, nil
	}
	return false, l.Unlock()
}

// Leftovers lists temporary and backup directories that an interrupted build
// left next to outDir.
func Leftovers(outDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(outDir), ".snapshot-*"))
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(outDir + ".bak"); err == nil {
		matches = append(matches, outDir+".bak")
	}
	sort.Strings(matches)
	return matches, nil
}

// CleanLeftovers removes what Leftovers reports. It takes the build lock so
// it never races a running build.
func CleanLeftovers(ctx context.Context, outDir string, timeout time.Duration) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(outDir), 0o755); err != nil {
		return nil, err
	}
	unlock, err := acquireLock(ctx, outDir+".lock", timeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	paths, err := Leftovers(outDir)
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, p := range paths {
		if err := os.RemoveAll(p); err != nil {
			return removed, fmt.Errorf("cannot remove %s: %w", p, err)
		}
		removed = append(removed, p)
	}
	return removed, nil
}
