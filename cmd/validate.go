package cmd

import (
	"fmt"

	"github.com/bvoo/arcadewiki/internal/catalog"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and validate every controller document",
	Long: `Scan the content directory, parse each document's frontmatter and report
which documents are valid, which have no frontmatter and which fail, naming
the offending field.

Exits non-zero when any document fails validation.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	report, err := catalog.Discover(cmdContext(cmd), appCfg.ContentDir, logger)
	if err != nil {
		return err
	}
	return printValidation(newPrinter(cmd), report)
}

func printValidation(p printer, report *catalog.LoadReport) error {
	p.section("Validate")
	for _, d := range report.Documents {
		p.ok(d.Entry.ID.String(), d.Entry.Name)
	}
	for _, path := range report.Skipped {
		p.skip(path, "no frontmatter")
	}
	for _, f := range report.Failures {
		p.fail(f.Path, f.Err.Error())
	}

	fmt.Fprintf(p.out, "\n%d valid, %d skipped, %d invalid\n",
		len(report.Documents), len(report.Skipped), len(report.Failures))
	if n := len(report.Failures); n > 0 {
		return fmt.Errorf("%d document(s) failed validation", n)
	}
	return nil
}
