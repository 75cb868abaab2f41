package similar

import (
	"math"

	"github.com/bvoo/arcadewiki/internal/catalog"
)

// rule is one weighted feature comparison. Rules are evaluated in order and
// that order is the order of Result.Reasons.
type rule struct {
	reason string
	points int
	match  func(ref, cand catalog.Entry) bool
}

var rules = []rule{
	{"Same maker (+10)", 10, sameMaker},
	{"Same button type (+5)", 5, sameButtonType},
	{"Similar price (+3)", 3, similarPrice},
	{"Matching switches (+4)", 4, sharedSwitch},
	{"Similar release year (+2)", 2, similarReleaseYear},
}

// priceTolerance is the relative price difference below which two controllers
// count as similarly priced. The bound is exclusive.
const priceTolerance = 0.20

func sameMaker(ref, cand catalog.Entry) bool {
	return cand.ID.Maker == ref.ID.Maker
}

func sameButtonType(ref, cand catalog.Entry) bool {
	return cand.ButtonType == ref.ButtonType
}

func similarPrice(ref, cand catalog.Entry) bool {
	if ref.PriceUSD == nil || cand.PriceUSD == nil || *ref.PriceUSD <= 0 {
		return false
	}
	return math.Abs(*cand.PriceUSD-*ref.PriceUSD) / *ref.PriceUSD < priceTolerance
}

func sharedSwitch(ref, cand catalog.Entry) bool {
	if len(ref.SwitchTypes) == 0 || len(cand.SwitchTypes) == 0 {
		return false
	}
	have := make(map[string]struct{}, len(ref.SwitchTypes))
	for _, s := range ref.SwitchTypes {
		have[s] = struct{}{}
	}
	for _, s := range cand.SwitchTypes {
		if _, ok := have[s]; ok {
			return true
		}
	}
	return false
}

func similarReleaseYear(ref, cand catalog.Entry) bool {
	d := cand.ReleaseYear - ref.ReleaseYear
	return d >= -2 && d <= 2
}

// Score evaluates every rule for cand against ref.
func Score(ref, cand catalog.Entry) (int, []string) {
	score := 0
	var reasons []string
	for _, r := range rules {
		if r.match(ref, cand) {
			score += r.points
			reasons = append(reasons, r.reason)
		}
	}
	return score, reasons
}

// FindSimilar scores every entry other than ref and returns the best limit
// results. Entries scoring zero are dropped. A limit of zero or less means
// DefaultLimit. Neither ref nor entries is modified.
func FindSimilar(ref catalog.Entry, entries []catalog.Entry, limit int) []Result {
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := []Result{}
	for _, cand := range entries {
		if cand.ID == ref.ID {
			continue
		}
		score, reasons := Score(ref, cand)
		if score == 0 {
			continue
		}
		out = append(out, Result{Entry: cand.Clone(), Score: score, Reasons: reasons})
	}

	SortResults(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// InCatalog looks up id in c and returns the entries most similar to it.
func InCatalog(c *catalog.Catalog, id catalog.Identity, limit int) (catalog.Entry, []Result, error) {
	ref, err := c.Get(id)
	if err != nil {
		return catalog.Entry{}, nil, err
	}
	return ref, FindSimilar(ref, c.All(), limit), nil
}
