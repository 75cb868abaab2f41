package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bvoo/arcadewiki/internal/catalog"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <maker/model> <maker/model>",
	Short: "Compare two controllers side by side",
	Long: `Show two controllers field by field. Rows that differ are marked with ≠.

Example:
  arcadewiki compare hitbox/crossup snackbox/micro`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	left, err := catalog.ParseIdentity(args[0])
	if err != nil {
		return err
	}
	right, err := catalog.ParseIdentity(args[1])
	if err != nil {
		return err
	}
	if left == right {
		return fmt.Errorf("cannot compare %s with itself", left)
	}

	cat, err := loadCatalog(cmdContext(cmd))
	if err != nil {
		return err
	}
	a, err := cat.Get(left)
	if err != nil {
		return err
	}
	b, err := cat.Get(right)
	if err != nil {
		return err
	}
	printComparison(cmd.OutOrStdout(), a, b)
	return nil
}

func printComparison(w io.Writer, a, b catalog.Entry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  \t\t%s\t%s\n", a.ID, b.ID)
	for _, row := range catalog.Compare(a, b) {
		mark := " "
		if !row.Same {
			mark = "≠"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", mark, row.Field, row.Left, row.Right)
	}
	_ = tw.Flush()
}
