package tasks

import (
	"context"
	"fmt"
	"time"
)

// snapshotRetention is how long old price snapshots are kept before pruning.
const snapshotRetention = 30 * 24 * time.Hour

// newSQLMaintenanceTask creates the scheduled task for database maintenance:
// pruning old snapshots and running VACUUM/ANALYZE.
func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "sql_maintenance")

	return func(ctx context.Context) error {
		startTime := time.Now()

		deleted, err := deps.Store.PruneSnapshots(ctx, time.Now().Add(-snapshotRetention))
		if err != nil {
			return fmt.Errorf("snapshot pruning failed: %w", err)
		}

		if err := deps.Store.RunSQLMaintenance(ctx); err != nil {
			return fmt.Errorf("sql maintenance failed: %w", err)
		}

		log.InfoContext(ctx, "SQL maintenance completed",
			"pruned_snapshots", deleted, "duration", time.Since(startTime))
		return nil
	}
}
