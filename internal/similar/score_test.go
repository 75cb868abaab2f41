package similar

import (
	"testing"

	"github.com/bvoo/arcadewiki/internal/catalog"
	"github.com/google/go-cmp/cmp"
)

func price(v float64) *float64 { return &v }

func newEntry(maker, model string, bt catalog.ButtonType, year int) catalog.Entry {
	return catalog.Entry{
		ID:            catalog.Identity{Maker: maker, Model: model},
		Name:          model,
		MakerName:     maker,
		ButtonType:    bt,
		SwitchTypes:   []string{},
		ReleaseYear:   year,
		CurrentlySold: true,
	}
}

func resultIDs(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Entry.ID.String()
	}
	return out
}

func TestFindSimilar_SameMakerAndButtonType(t *testing.T) {
	ref := newEntry("snackbox", "micro", catalog.ButtonDigital, 2015)
	other := newEntry("snackbox", "micro-v2", catalog.ButtonDigital, 2024)

	got := FindSimilar(ref, []catalog.Entry{ref, other}, 3)
	want := []Result{{
		Entry:   other,
		Score:   15,
		Reasons: []string{"Same maker (+10)", "Same button type (+5)"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("results (-want +got):\n%s", diff)
	}
}

func TestFindSimilar_OnlyReference(t *testing.T) {
	ref := newEntry("snackbox", "micro", catalog.ButtonDigital, 2021)
	got := FindSimilar(ref, []catalog.Entry{ref}, 3)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
	if got := FindSimilar(ref, nil, 3); len(got) != 0 {
		t.Fatalf("expected empty result for empty catalog, got %v", got)
	}
}

func TestFindSimilar_AllRulesInTableOrder(t *testing.T) {
	ref := newEntry("hitbox", "crossup", catalog.ButtonDigital, 2022)
	ref.PriceUSD = price(200)
	ref.SwitchTypes = []string{"Kailh Choc", "Gateron"}

	cand := newEntry("hitbox", "hitbox", catalog.ButtonDigital, 2020)
	cand.PriceUSD = price(230)
	cand.SwitchTypes = []string{"Gateron"}

	score, reasons := Score(ref, cand)
	if score != 24 {
		t.Fatalf("score = %d, want 24", score)
	}
	want := []string{
		"Same maker (+10)",
		"Same button type (+5)",
		"Similar price (+3)",
		"Matching switches (+4)",
		"Similar release year (+2)",
	}
	if diff := cmp.Diff(want, reasons); diff != "" {
		t.Fatalf("reasons (-want +got):\n%s", diff)
	}
}

func TestFindSimilar_LimitKeepsHighest(t *testing.T) {
	ref := newEntry("snackbox", "micro", catalog.ButtonDigital, 2021)
	// scores 15, 7, 2 and 0
	top := newEntry("snackbox", "micro-xl", catalog.ButtonDigital, 2010)
	mid := newEntry("hitbox", "crossup", catalog.ButtonDigital, 2022)
	low := newEntry("wooting", "lekker", catalog.ButtonAnalog, 2020)
	none := newEntry("qanba", "obsidian", catalog.ButtonAnalog, 2000)

	entries := []catalog.Entry{low, none, ref, mid, top}
	got := FindSimilar(ref, entries, 1)
	if len(got) != 1 || got[0].Entry.ID != top.ID || got[0].Score != 15 {
		t.Fatalf("unexpected results: %+v", got)
	}

	all := FindSimilar(ref, entries, 10)
	if diff := cmp.Diff([]string{"snackbox/micro-xl", "hitbox/crossup", "wooting/lekker"}, resultIDs(all)); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
}

func TestFindSimilar_DefaultLimit(t *testing.T) {
	ref := newEntry("snackbox", "micro", catalog.ButtonDigital, 2021)
	entries := []catalog.Entry{ref}
	for _, m := range []string{"a", "b", "c", "d", "e"} {
		entries = append(entries, newEntry("snackbox", m, catalog.ButtonDigital, 2021))
	}
	for _, limit := range []int{0, -1} {
		if got := FindSimilar(ref, entries, limit); len(got) != DefaultLimit {
			t.Fatalf("limit %d: got %d results, want %d", limit, len(got), DefaultLimit)
		}
	}
}

func TestFindSimilar_TiesBrokenByIdentity(t *testing.T) {
	ref := newEntry("snackbox", "micro", catalog.ButtonDigital, 2021)
	entries := []catalog.Entry{
		ref,
		newEntry("zeta", "box", catalog.ButtonDigital, 2010),
		newEntry("alpha", "box", catalog.ButtonDigital, 2010),
		newEntry("mid", "box", catalog.ButtonDigital, 2010),
	}
	got := FindSimilar(ref, entries, 3)
	if diff := cmp.Diff([]string{"alpha/box", "mid/box", "zeta/box"}, resultIDs(got)); diff != "" {
		t.Fatalf("tie order (-want +got):\n%s", diff)
	}
}

func TestSimilarPrice_Boundary(t *testing.T) {
	ref := newEntry("a", "ref", catalog.ButtonDigital, 2000)
	ref.PriceUSD = price(100)

	cases := []struct {
		name  string
		price *float64
		want  bool
	}{
		{"exactly 20% above", price(120), false},
		{"exactly 20% below", price(80), false},
		{"just inside above", price(119.99), true},
		{"just inside below", price(80.01), true},
		{"same price", price(100), true},
		{"candidate has no price", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cand := newEntry("b", "cand", catalog.ButtonAnalog, 1980)
			cand.PriceUSD = tc.price
			if got := similarPrice(ref, cand); got != tc.want {
				t.Fatalf("similarPrice = %v, want %v", got, tc.want)
			}
		})
	}

	noRef := newEntry("a", "ref", catalog.ButtonDigital, 2000)
	cand := newEntry("b", "cand", catalog.ButtonDigital, 2000)
	cand.PriceUSD = price(100)
	if similarPrice(noRef, cand) {
		t.Fatalf("reference without price must not match")
	}
}

func TestSimilarReleaseYear_Window(t *testing.T) {
	ref := newEntry("a", "ref", catalog.ButtonDigital, 2020)
	for year, want := range map[int]bool{2018: true, 2022: true, 2017: false, 2023: false} {
		cand := newEntry("b", "cand", catalog.ButtonAnalog, year)
		if got := similarReleaseYear(ref, cand); got != want {
			t.Fatalf("year %d: got %v, want %v", year, got, want)
		}
	}
}

func TestFindSimilar_DoesNotMutateInputs(t *testing.T) {
	ref := newEntry("snackbox", "micro", catalog.ButtonDigital, 2021)
	ref.SwitchTypes = []string{"Gateron"}
	other := newEntry("snackbox", "b", catalog.ButtonDigital, 2021)
	other.SwitchTypes = []string{"Gateron"}
	entries := []catalog.Entry{other, ref}

	first := FindSimilar(ref, entries, 3)
	first[0].Entry.SwitchTypes[0] = "mutated"
	second := FindSimilar(ref, entries, 3)

	if entries[0].SwitchTypes[0] != "Gateron" {
		t.Fatalf("input entry was mutated through a result")
	}
	if second[0].Entry.SwitchTypes[0] != "Gateron" || second[0].Score != first[0].Score {
		t.Fatalf("second call differs: %+v", second)
	}
}

func TestInCatalog(t *testing.T) {
	ref := newEntry("snackbox", "micro", catalog.ButtonDigital, 2021)
	other := newEntry("snackbox", "b", catalog.ButtonDigital, 2010)
	c, err := catalog.New([]catalog.Entry{ref, other})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	gotRef, results, err := InCatalog(c, ref.ID, 0)
	if err != nil {
		t.Fatalf("InCatalog: %v", err)
	}
	if gotRef.ID != ref.ID || len(results) != 1 || results[0].Score != 15 {
		t.Fatalf("unexpected: ref=%v results=%+v", gotRef.ID, results)
	}

	if _, _, err := InCatalog(c, catalog.Identity{Maker: "x", Model: "y"}, 3); err == nil {
		t.Fatalf("expected not found error")
	}
}
