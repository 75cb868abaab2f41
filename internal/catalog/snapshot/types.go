// Package snapshot persists a loaded catalog as a manifest plus a JSONL file
// of entries, so commands can read the catalog without re-parsing content.
package snapshot

import "github.com/bvoo/arcadewiki/internal/catalog"

// Version is the snapshot format written by this package.
const Version = 1

const (
	manifestFile       = "snapshot_manifest.json"
	defaultEntriesFile = "entries.jsonl"
)

// Manifest describes a snapshot and how to read it.
type Manifest struct {
	SnapshotVersion int    `json:"snapshot_version"`
	CreatedAt       string `json:"created_at"`
	ContentHash     string `json:"content_hash"`
	EntryCount      int    `json:"entry_count"`
	EntriesFile     string `json:"entries_file"`
}

// Record is one line of entries.jsonl.
type Record struct {
	Path       string        `json:"path"`
	SourceHash string        `json:"source_hash"`
	Entry      catalog.Entry `json:"entry"`
}

// Snapshot is a loaded snapshot.
type Snapshot struct {
	Manifest Manifest
	Records  []Record
}

// Catalog rebuilds the catalog held by the snapshot.
func (s *Snapshot) Catalog() (*catalog.Catalog, error) {
	entries := make([]catalog.Entry, 0, len(s.Records))
	for _, r := range s.Records {
		entries = append(entries, r.Entry)
	}
	return catalog.New(entries)
}
