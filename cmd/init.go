package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/bvoo/arcadewiki/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config and .env template",
	Long: `Create ~/.arcadewiki/config.yaml (or the --config path) with default
settings and an empty ~/.arcadewiki/.env template. Existing files are left
untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	p := newPrinter(cmd)

	// ── 1. config.yaml ───────────────────────────────────────────────────────
	cfgPath := flagConfig
	if cfgPath == "" {
		var err error
		if cfgPath, err = config.ConfigPath(); err != nil {
			return err
		}
	}
	switch _, err := os.Stat(cfgPath); {
	case err == nil:
		p.skip("", fmt.Sprintf("config already exists: %s", cfgPath))
	case errors.Is(err, os.ErrNotExist):
		cfg, err := config.Default()
		if err != nil {
			return err
		}
		if err := config.Save(cfg, cfgPath); err != nil {
			return err
		}
		p.ok("", fmt.Sprintf("config written: %s", cfgPath))
	default:
		return fmt.Errorf("cannot stat config %s: %w", cfgPath, err)
	}

	// ── 2. .env template ─────────────────────────────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	envPath, err := config.DotEnvPath()
	if err != nil {
		return err
	}
	p.ok("", fmt.Sprintf("dotenv ready: %s", envPath))
	return nil
}
