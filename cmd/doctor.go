package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/bvoo/arcadewiki/internal/catalog"
	"github.com/bvoo/arcadewiki/internal/catalog/snapshot"
	"github.com/bvoo/arcadewiki/internal/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check config, content and snapshot health",
	Long: `Check that the config loads, the content directory parses cleanly and the
snapshot is present and current. Run this when something seems wrong.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var doctorFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Remove leftovers of interrupted snapshot builds",
	Long: `Delete temporary .snapshot-* directories and the snapshot .bak backup left
behind when a build was interrupted. The build lock is held while cleaning.

Run 'arcadewiki doctor' first to see what will be removed.`,
	Args: cobra.NoArgs,
	RunE: runDoctorFix,
}

func init() {
	doctorCmd.AddCommand(doctorFixCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	p := newPrinter(cmd)
	ctx := cmdContext(cmd)
	problems := 0
	failD := func(format string, args ...any) {
		p.fail("", fmt.Sprintf(format, args...))
		problems++
	}

	p.section("arcadewiki doctor")

	// ── Check 1: config file ──────────────────────────────────────────────────
	fmt.Fprintln(p.out, "\n[ config ]")
	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath, _ = config.ConfigPath()
	}
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		p.warn("", fmt.Sprintf("%s not found, using defaults (run 'arcadewiki init')", cfgPath))
	} else {
		p.ok("", fmt.Sprintf("loaded %s", cfgPath))
	}
	p.info("", fmt.Sprintf("logging: %s", appCfg.Logging))

	// ── Check 2: content tree ─────────────────────────────────────────────────
	fmt.Fprintln(p.out, "\n[ content ]")
	report, err := catalog.Discover(ctx, appCfg.ContentDir, logger)
	if err != nil {
		failD("%v", err)
	} else {
		p.ok("", fmt.Sprintf("%s: %d valid, %d skipped", appCfg.ContentDir, len(report.Documents), len(report.Skipped)))
		for _, f := range report.Failures {
			failD("[%s] %v", f.Path, f.Err)
		}
	}

	// ── Check 3: snapshot ─────────────────────────────────────────────────────
	fmt.Fprintln(p.out, "\n[ snapshot ]")
	snap, err := snapshot.Load(appCfg.SnapshotDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		p.skip("", fmt.Sprintf("no snapshot at %s (run 'arcadewiki build')", appCfg.SnapshotDir))
	case err != nil:
		failD("unreadable snapshot: %v", err)
	case report != nil && snapshot.ContentHash(report.Documents) != snap.Manifest.ContentHash:
		p.warn("", fmt.Sprintf("stale: built %s, content changed since (run 'arcadewiki build')", snap.Manifest.CreatedAt))
	default:
		p.ok("", fmt.Sprintf("current: %d entries, built %s", snap.Manifest.EntryCount, snap.Manifest.CreatedAt))
	}

	// ── Check 4: lock and leftovers ───────────────────────────────────────────
	fmt.Fprintln(p.out, "\n[ build lock ]")
	if locked, err := snapshot.Locked(appCfg.SnapshotDir); err != nil {
		failD("%v", err)
	} else if locked {
		p.warn("", "a build is running")
	} else {
		p.ok("", "free")
	}
	if left, err := snapshot.Leftovers(appCfg.SnapshotDir); err != nil {
		failD("%v", err)
	} else {
		for _, path := range left {
			p.warn("", fmt.Sprintf("leftover %s (run 'arcadewiki doctor fix')", path))
		}
	}

	fmt.Fprintln(p.out)
	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	p.ok("", "all checks passed")
	return nil
}

func runDoctorFix(cmd *cobra.Command, _ []string) error {
	p := newPrinter(cmd)
	p.section("arcadewiki doctor fix")

	removed, err := snapshot.CleanLeftovers(cmdContext(cmd), appCfg.SnapshotDir, snapshot.DefaultLockTimeout)
	for _, path := range removed {
		p.ok("", fmt.Sprintf("deleted %s", path))
	}
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		p.ok("", "nothing to clean")
	}
	return nil
}
