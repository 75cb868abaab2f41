package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// ComparisonRow is one field of a side-by-side comparison.
type ComparisonRow struct {
	Field string
	Left  string
	Right string
	Same  bool
}

// Compare lays out two entries field by field. Missing optional values render
// as "-".
func Compare(a, b Entry) []ComparisonRow {
	fields := []struct {
		name   string
		render func(Entry) string
	}{
		{"Name", func(e Entry) string { return e.Name }},
		{"Maker", func(e Entry) string { return e.MakerName }},
		{"Button type", func(e Entry) string { return string(e.ButtonType) }},
		{"Switches", func(e Entry) string { return FormatSwitches(e.SwitchTypes) }},
		{"Release year", func(e Entry) string { return strconv.Itoa(e.ReleaseYear) }},
		{"Price (USD)", func(e Entry) string { return FormatPrice(e.PriceUSD) }},
		{"Weight (g)", func(e Entry) string { return formatOptionalInt(e.WeightGrams) }},
		{"Dimensions (mm)", func(e Entry) string { return FormatDimensions(e.DimensionsMm) }},
		{"Currently sold", func(e Entry) string { return FormatSold(e.CurrentlySold) }},
		{"Link", func(e Entry) string { return dashIfEmpty(e.Link) }},
	}

	rows := make([]ComparisonRow, 0, len(fields))
	for _, f := range fields {
		l, r := f.render(a), f.render(b)
		rows = append(rows, ComparisonRow{Field: f.name, Left: l, Right: r, Same: l == r})
	}
	return rows
}

// FormatPrice renders an optional price as "$129.99".
func FormatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return "$" + strconv.FormatFloat(*p, 'f', 2, 64)
}

// FormatDimensions renders dimensions as "W x D x H".
func FormatDimensions(d *Dimensions) string {
	if d == nil {
		return "-"
	}
	return fmt.Sprintf("%s x %s x %s", formatFloat(d.Width), formatFloat(d.Depth), formatFloat(d.Height))
}

// FormatSwitches joins switch names, or "-" when there are none.
func FormatSwitches(s []string) string {
	return dashIfEmpty(strings.Join(s, ", "))
}

// FormatSold renders the availability flag.
func FormatSold(sold bool) string {
	if sold {
		return "yes"
	}
	return "no"
}

func formatOptionalInt(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
