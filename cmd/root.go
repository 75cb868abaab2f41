package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bvoo/arcadewiki/internal/config"
	"github.com/bvoo/arcadewiki/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagContent  string
	flagLogLevel string
	flagSnapshot bool
)

// Populated by setup before any subcommand runs.
var (
	appCfg    *config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:          "arcadewiki",
	Short:        "arcadewiki: catalog of arcade controller specifications",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `arcadewiki reads controller documents laid out as
<content>/<maker>/<model>/index.mdx, validates their frontmatter and lets you
list, compare and find similar controllers.`,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default ~/.arcadewiki/config.yaml)")
	pf.StringVar(&flagContent, "content", "", "Content directory (overrides config)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagSnapshot, "snapshot", false, "Read the catalog from the built snapshot instead of the content tree")
}

func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	if flagContent != "" {
		cfg.ContentDir = flagContent
	}
	if flagLogLevel != "" {
		if !logging.ValidLevel(flagLogLevel) {
			return fmt.Errorf("invalid --log-level %q", flagLogLevel)
		}
		cfg.Logging.Level = flagLogLevel
	}
	appCfg = cfg
	logger, logCloser = logging.New(cfg.Logging)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logCloser != nil {
		err := logCloser.Close()
		logCloser = nil
		return err
	}
	return nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
