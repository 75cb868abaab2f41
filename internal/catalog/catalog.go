package catalog

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Catalog is an immutable set of entries keyed by identity. It is safe for
// concurrent readers; every accessor returns copies.
type Catalog struct {
	entries []Entry
	byID    map[Identity]int
}

// New builds a catalog ordered by controller name. Duplicate identities are
// rejected with ErrDuplicateIdentity.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[Identity]int, len(entries)),
	}
	seen := make(map[Identity]struct{}, len(entries))
	for _, e := range entries {
		if e.ID.IsZero() {
			return nil, fmt.Errorf("entry %q has no maker/model identity", e.Name)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIdentity, e.ID)
		}
		seen[e.ID] = struct{}{}
		c.entries = append(c.entries, e.Clone())
	}

	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(c.entries, func(i, j int) bool {
		if cmp := col.CompareString(c.entries[i].Name, c.entries[j].Name); cmp != 0 {
			return cmp < 0
		}
		return c.entries[i].ID.String() < c.entries[j].ID.String()
	})
	for i, e := range c.entries {
		c.byID[e.ID] = i
	}
	return c, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// All returns every entry, ordered by name.
func (c *Catalog) All() []Entry {
	return cloneAll(c.entries)
}

// Get looks up an entry by identity.
func (c *Catalog) Get(id Identity) (Entry, error) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.entries[i].Clone(), nil
}

// ByMaker returns the entries of one maker, ordered by name.
func (c *Catalog) ByMaker(slug string) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.ID.Maker == slug {
			out = append(out, e.Clone())
		}
	}
	return out
}

// MakerStats summarises one maker's controllers.
type MakerStats struct {
	Slug          string
	Name          string
	Controllers   int
	CurrentlySold int
}

// Makers returns per-maker statistics ordered by maker name.
func (c *Catalog) Makers() []MakerStats {
	idx := map[string]int{}
	var out []MakerStats
	for _, e := range c.entries {
		i, ok := idx[e.ID.Maker]
		if !ok {
			i = len(out)
			idx[e.ID.Maker] = i
			out = append(out, MakerStats{Slug: e.ID.Maker, Name: e.MakerName})
		}
		out[i].Controllers++
		if e.CurrentlySold {
			out[i].CurrentlySold++
		}
	}

	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := col.CompareString(out[i].Name, out[j].Name); cmp != 0 {
			return cmp < 0
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

func cloneAll(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
