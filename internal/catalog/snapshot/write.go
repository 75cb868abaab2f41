package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bvoo/arcadewiki/internal/catalog"
)

// Write writes snapshot artifacts to dir.
func Write(dir string, manifest Manifest, records []Record) error {
	if manifest.EntriesFile == "" {
		manifest.EntriesFile = defaultEntriesFile
	}
	if manifest.CreatedAt == "" {
		manifest.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	manifest.SnapshotVersion = Version
	manifest.EntryCount = len(records)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create snapshot dir %s: %w", dir, err)
	}

	// manifest
	mb, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), mb, 0o644); err != nil {
		return fmt.Errorf("cannot write manifest: %w", err)
	}

	// entries jsonl
	f, err := os.Create(filepath.Join(dir, manifest.EntriesFile))
	if err != nil {
		return fmt.Errorf("cannot create entries file: %w", err)
	}
	bw := bufio.NewWriter(f)
	for _, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			_ = f.Close()
			return err
		}
		if _, err := bw.Write(line); err != nil {
			_ = f.Close()
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// DocumentToRecord converts a discovered document to a snapshot record.
func DocumentToRecord(d catalog.Document) Record {
	return Record{Path: d.Path, SourceHash: d.Hash, Entry: d.Entry}
}
