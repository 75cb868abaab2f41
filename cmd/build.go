package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bvoo/arcadewiki/internal/catalog/snapshot"
	"github.com/bvoo/arcadewiki/internal/watch"
	"github.com/spf13/cobra"
)

var (
	flagBuildForce       bool
	flagBuildWatch       bool
	flagBuildLockTimeout time.Duration
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the catalog snapshot from the content directory",
	Long: `Parse the content directory and write a snapshot (manifest + entries.jsonl)
to the configured snapshot directory. Commands read it with --snapshot.

The snapshot is only rewritten when the content changed, unless --force is
given. With --watch the build reruns whenever content files change, until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&flagBuildForce, "force", false, "Rewrite the snapshot even if content is unchanged")
	buildCmd.Flags().BoolVar(&flagBuildWatch, "watch", false, "Keep running and rebuild on content changes")
	buildCmd.Flags().DurationVar(&flagBuildLockTimeout, "lock-timeout", snapshot.DefaultLockTimeout, "How long to wait for a concurrent build")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	p := newPrinter(cmd)
	ctx := cmdContext(cmd)

	if err := buildSnapshot(ctx, p, flagBuildForce); err != nil {
		return err
	}
	if !flagBuildWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p.info("", fmt.Sprintf("watching %s (Ctrl+C to stop)", appCfg.ContentDir))
	w := &watch.Watcher{
		Root:   appCfg.ContentDir,
		Logger: logger,
		OnChange: func(ctx context.Context) error {
			return buildSnapshot(ctx, p, false)
		},
	}
	return w.Run(ctx)
}

func buildSnapshot(ctx context.Context, p printer, force bool) error {
	res, err := snapshot.Build(ctx, snapshot.BuildOptions{
		ContentDir:  appCfg.ContentDir,
		OutDir:      appCfg.SnapshotDir,
		Force:       force,
		LockTimeout: flagBuildLockTimeout,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("snapshot build failed: %w", err)
	}

	for _, f := range res.Report.Failures {
		p.warn(f.Path, f.Err.Error())
	}
	if res.Unchanged {
		p.skip("", fmt.Sprintf("snapshot up to date (%d entries)", res.Manifest.EntryCount))
		return nil
	}
	p.ok("", fmt.Sprintf("snapshot written: %s (%d entries)", appCfg.SnapshotDir, res.Manifest.EntryCount))
	return nil
}
