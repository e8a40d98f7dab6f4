package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/worktravel/worktravel-api/internal/domain/csvimport"
)

// ImportJobs contains CSV import maintenance jobs
type ImportJobs struct {
	importService csvimport.ImportService
	retention     time.Duration
	interval      time.Duration
	now           func() time.Time
}

func NewImportJobs(importService csvimport.ImportService, retention, interval time.Duration) *ImportJobs {
	return &ImportJobs{
		importService: importService,
		retention:     retention,
		interval:      interval,
		now:           time.Now,
	}
}

// RegisterJobs registers all import-related cron jobs
func (j *ImportJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(
		"purge_expired_imports",
		j.interval,
		j.PurgeExpiredImports,
	)
}

// PurgeExpiredImports removes import logs and archived files older than the retention.
func (j *ImportJobs) PurgeExpiredImports(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention)

	purged, err := j.importService.PurgeExpired(ctx, cutoff)
	if err != nil {
		return err
	}

	if purged > 0 {
		slog.Info("Expired imports purged", "count", purged, "cutoff", cutoff)
	}
	return nil
}
