package cmd

import (
	"context"
	"fmt"

	"github.com/bvoo/arcadewiki/internal/catalog"
	"github.com/bvoo/arcadewiki/internal/catalog/snapshot"
	"github.com/spf13/cobra"
)

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadCatalog reads the catalog from the snapshot when --snapshot is set and
// from the content tree otherwise.
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if flagSnapshot {
		snap, err := snapshot.Load(appCfg.SnapshotDir)
		if err != nil {
			return nil, fmt.Errorf("cannot read snapshot: %w\nRun 'arcadewiki build' first.", err)
		}
		return snap.Catalog()
	}
	report, err := catalog.Discover(ctx, appCfg.ContentDir, logger)
	if err != nil {
		return nil, err
	}
	return report.Catalog()
}
