package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bvoo/arcadewiki/internal/catalog"
	"github.com/spf13/cobra"
)

var makersCmd = &cobra.Command{
	Use:   "makers",
	Short: "List controller makers with their controller counts",
	Args:  cobra.NoArgs,
	RunE:  runMakers,
}

func init() {
	rootCmd.AddCommand(makersCmd)
}

func runMakers(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog(cmdContext(cmd))
	if err != nil {
		return err
	}
	printMakers(cmd.OutOrStdout(), cat.Makers())
	return nil
}

func printMakers(w io.Writer, makers []catalog.MakerStats) {
	fmt.Fprintf(w, "Makers (%d found):\n\n", len(makers))
	if len(makers) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  SLUG\tNAME\tCONTROLLERS\tON SALE")
	for _, m := range makers {
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%d\n", m.Slug, m.Name, m.Controllers, m.CurrentlySold)
	}
	_ = tw.Flush()
}
