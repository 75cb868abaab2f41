package cmd

import (
	"fmt"
	"io"

	"github.com/bvoo/arcadewiki/internal/catalog"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <maker/model>",
	Short: "Show one controller's specification",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := catalog.ParseIdentity(args[0])
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cmdContext(cmd))
	if err != nil {
		return err
	}
	e, err := cat.Get(id)
	if err != nil {
		return err
	}
	printEntry(cmd.OutOrStdout(), e)
	return nil
}

func printEntry(w io.Writer, e catalog.Entry) {
	fmt.Fprintf(w, "🕹  %s\n", e.Name)
	fmt.Fprintf(w, "ID:          %s\n", e.ID)
	fmt.Fprintf(w, "Maker:       %s\n", e.MakerName)
	fmt.Fprintf(w, "Buttons:     %s\n", e.ButtonType)
	fmt.Fprintf(w, "Switches:    %s\n", catalog.FormatSwitches(e.SwitchTypes))
	fmt.Fprintf(w, "Released:    %d\n", e.ReleaseYear)
	fmt.Fprintf(w, "Price:       %s\n", catalog.FormatPrice(e.PriceUSD))
	if e.WeightGrams != nil {
		fmt.Fprintf(w, "Weight:      %d g\n", *e.WeightGrams)
	}
	if e.DimensionsMm != nil {
		fmt.Fprintf(w, "Dimensions:  %s mm\n", catalog.FormatDimensions(e.DimensionsMm))
	}
	fmt.Fprintf(w, "On sale:     %s\n", catalog.FormatSold(e.CurrentlySold))
	if e.Link != "" {
		fmt.Fprintf(w, "Link:        %s\n", e.Link)
	}
}
