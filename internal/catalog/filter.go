package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
)

// Filter narrows a catalog listing. Zero values match everything.
type Filter struct {
	ButtonType ButtonType
	Sold       *bool
	Switch     string
	Maker      string
	// Query is matched case-insensitively against name, maker, identity and
	// switches. All whitespace-separated tokens must match.
	Query string
}

// Filter returns the entries matching f, in catalog order.
func (c *Catalog) Filter(f Filter) []Entry {
	fold := cases.Fold()
	tokens := tokenize(fold.String(f.Query))
	wantSwitch := fold.String(strings.TrimSpace(f.Switch))

	var out []Entry
	for _, e := range c.entries {
		if f.ButtonType != "" && e.ButtonType != f.ButtonType {
			continue
		}
		if f.Sold != nil && e.CurrentlySold != *f.Sold {
			continue
		}
		if f.Maker != "" && e.ID.Maker != f.Maker {
			continue
		}
		if wantSwitch != "" && !hasSwitch(e, wantSwitch, fold) {
			continue
		}
		if len(tokens) > 0 {
			blob := fold.String(strings.Join([]string{
				e.ID.String(), e.Name, e.MakerName, strings.Join(e.SwitchTypes, " "),
			}, "\n"))
			if !containsAll(blob, tokens) {
				continue
			}
		}
		out = append(out, e.Clone())
	}
	return out
}

func hasSwitch(e Entry, want string, fold cases.Caser) bool {
	for _, s := range e.SwitchTypes {
		if fold.String(s) == want {
			return true
		}
	}
	return false
}

func containsAll(blob string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(blob, tok) {
			return false
		}
	}
	return true
}

func tokenize(q string) []string {
	return strings.Fields(strings.TrimSpace(q))
}

type fuzzySource []Entry

func (s fuzzySource) String(i int) string { return s[i].MakerName + " " + s[i].Name }
func (s fuzzySource) Len() int            { return len(s) }

// Fuzzy ranks entries whose "maker name" text fuzzily matches query, best
// match first. An empty query returns nothing.
func (c *Catalog) Fuzzy(query string) []Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	matches := fuzzy.FindFrom(query, fuzzySource(c.entries))
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.entries[m.Index].Clone())
	}
	return out
}
