package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bvoo/arcadewiki/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	flagListButtonType string
	flagListSold       string
	flagListSwitch     string
	flagListMaker      string
	flagListFilter     string
	flagListFuzzy      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List controllers, optionally filtered",
	Long: `List catalog controllers ordered by name.

Filters combine (all must match). --fuzzy ranks by fuzzy match on
"maker name" instead and is applied after the other filters.

Example:
  arcadewiki list --button-type analog --sold yes
  arcadewiki list --switch "Kailh Choc" --filter hitbox
  arcadewiki list --fuzzy snkbox`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagListButtonType, "button-type", "", "Only digital or analog controllers")
	listCmd.Flags().StringVar(&flagListSold, "sold", "", "Availability: yes or no")
	listCmd.Flags().StringVar(&flagListSwitch, "switch", "", "Only controllers offering this switch")
	listCmd.Flags().StringVar(&flagListMaker, "maker", "", "Only controllers from this maker slug")
	listCmd.Flags().StringVar(&flagListFilter, "filter", "", "Case-insensitive keyword filter")
	listCmd.Flags().StringVar(&flagListFuzzy, "fuzzy", "", "Rank by fuzzy match on maker and name")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	f, err := listFilter()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cmdContext(cmd))
	if err != nil {
		return err
	}

	entries := cat.Filter(f)
	if q := strings.TrimSpace(flagListFuzzy); q != "" {
		entries = fuzzyWithin(cat, q, entries)
	}
	printEntries(cmd.OutOrStdout(), entries)
	return nil
}

func listFilter() (catalog.Filter, error) {
	f := catalog.Filter{
		ButtonType: catalog.ButtonType(strings.ToLower(strings.TrimSpace(flagListButtonType))),
		Switch:     flagListSwitch,
		Maker:      strings.TrimSpace(flagListMaker),
		Query:      flagListFilter,
	}
	if f.ButtonType != "" && !f.ButtonType.Valid() {
		return catalog.Filter{}, fmt.Errorf("invalid --button-type %q (want digital or analog)", flagListButtonType)
	}
	switch strings.ToLower(strings.TrimSpace(flagListSold)) {
	case "":
	case "yes", "true":
		sold := true
		f.Sold = &sold
	case "no", "false":
		sold := false
		f.Sold = &sold
	default:
		return catalog.Filter{}, fmt.Errorf("invalid --sold %q (want yes or no)", flagListSold)
	}
	return f, nil
}

// fuzzyWithin keeps the fuzzy ranking but only for entries that passed the
// other filters.
func fuzzyWithin(cat *catalog.Catalog, query string, allowed []catalog.Entry) []catalog.Entry {
	keep := make(map[catalog.Identity]struct{}, len(allowed))
	for _, e := range allowed {
		keep[e.ID] = struct{}{}
	}
	var out []catalog.Entry
	for _, e := range cat.Fuzzy(query) {
		if _, ok := keep[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}

func printEntries(w io.Writer, entries []catalog.Entry) {
	fmt.Fprintf(w, "Controllers (%d found):\n\n", len(entries))
	if len(entries) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tNAME\tMAKER\tBUTTONS\tSWITCHES\tYEAR\tPRICE\tSOLD")
	for _, e := range entries {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Name, e.MakerName, e.ButtonType,
			catalog.FormatSwitches(e.SwitchTypes), strconv.Itoa(e.ReleaseYear),
			catalog.FormatPrice(e.PriceUSD), catalog.FormatSold(e.CurrentlySold))
	}
	_ = tw.Flush()
}
