package jobs

import (
	"context"
	"time"

	"memberbase-backend/internal/logger"
)

// RetentionSweep purges expired access codes, stale resolved applications,
// and very stale unreviewed applications. The three deletes are independent
// and idempotent: a failure in one is logged and the sweep continues, so the
// job reports partial success rather than failing atomically.
func (jr *JobRunner) RetentionSweep() {
	jr.runWithRecovery("RetentionSweep", func() {
		ctx := context.Background()
		now := time.Now()

		var codes, resolved, unreviewed int64

		codeCutoff := now.AddDate(0, 0, -jr.config.Retention.AccessCodeDays)
		n, err := jr.codeRepo.DeleteCreatedBefore(ctx, codeCutoff)
		if err != nil {
			logger.Error("Failed to purge expired access codes", "error", err)
		} else {
			codes = n
		}

		resolvedCutoff := now.AddDate(0, 0, -jr.config.Retention.ResolvedDays)
		n, err = jr.appRepo.DeleteResolvedBefore(ctx, resolvedCutoff)
		if err != nil {
			logger.Error("Failed to purge resolved applications", "error", err)
		} else {
			resolved = n
		}

		unreviewedCutoff := now.AddDate(0, 0, -jr.config.Retention.UnreviewedDays)
		n, err = jr.appRepo.DeleteUnreviewedBefore(ctx, unreviewedCutoff)
		if err != nil {
			logger.Error("Failed to purge stale unreviewed applications", "error", err)
		} else {
			unreviewed = n
		}

		logger.Info("Retention sweep finished",
			"access_codes_deleted", codes,
			"resolved_applications_deleted", resolved,
			"unreviewed_applications_deleted", unreviewed)
	})
}
