package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bvoo/arcadewiki/internal/catalog"
	"github.com/bvoo/arcadewiki/internal/similar"
	"github.com/spf13/cobra"
)

var flagSimilarK int

var similarCmd = &cobra.Command{
	Use:   "similar <maker/model>",
	Short: "Find controllers similar to the given one",
	Long: `Score every other controller against the given one and show the best
matches with the reasons behind each score:

  Same maker (+10), Same button type (+5), Similar price (+3),
  Matching switches (+4), Similar release year (+2)

Example:
  arcadewiki similar hitbox/crossup
  arcadewiki similar snackbox/micro -k 5`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

func init() {
	similarCmd.Flags().IntVarP(&flagSimilarK, "limit", "k", similar.DefaultLimit, "Number of results to show")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	id, err := catalog.ParseIdentity(args[0])
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cmdContext(cmd))
	if err != nil {
		return err
	}

	ref, results, err := similar.InCatalog(cat, id, resolveSimilarLimit(cmd))
	if err != nil {
		return err
	}
	printSimilar(cmd.OutOrStdout(), ref, results)
	return nil
}

// resolveSimilarLimit honours an explicit --limit and falls back to the configured
// default otherwise.
func resolveSimilarLimit(cmd *cobra.Command) int {
	if cmd.Flags().Changed("limit") || appCfg == nil {
		return flagSimilarK
	}
	return appCfg.SimilarLimit
}

func printSimilar(w io.Writer, ref catalog.Entry, results []similar.Result) {
	fmt.Fprintf(w, "\nSimilar to %s (%s)\n\n", ref.Name, ref.ID)
	fmt.Fprintf(w, "Results (%d found):\n", len(results))
	if len(results) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, r := range results {
		fmt.Fprintf(tw, "  %d.\t[%d]\t%s\t%s\n", i+1, r.Score, r.Entry.ID, r.Entry.Name)
		for _, reason := range r.Reasons {
			fmt.Fprintf(tw, "  \t\t- %s\n", reason)
		}
	}
	_ = tw.Flush()
}
