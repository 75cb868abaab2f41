package cmd

import (
	"fmt"
	"runtime"

	"github.com/bvoo/arcadewiki/internal/catalog/snapshot"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show arcadewiki version and build information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Version:          %s\n", version)
	fmt.Fprintf(w, "Commit:           %s\n", emptyAsNA(commit))
	fmt.Fprintf(w, "Build Date:       %s\n", emptyAsNA(buildDate))
	fmt.Fprintf(w, "Snapshot Format:  v%d\n", snapshot.Version)
	fmt.Fprintf(w, "Go Version:       %s\n", runtime.Version())
	fmt.Fprintf(w, "OS/Arch:          %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return nil
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
