package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"courierbot/internal/core/ports"
)

// ContextSweepJob periodically evicts idle conversation contexts so memory
// does not accumulate state for couriers who stopped chatting.
type ContextSweepJob struct {
	store  ports.ContextStore
	cron   *cron.Cron
	logger *slog.Logger
}

// NewContextSweepJob creates a job that sweeps the context store once a minute.
func NewContextSweepJob(store ports.ContextStore, logger *slog.Logger) *ContextSweepJob {
	return &ContextSweepJob{
		store:  store,
		cron:   cron.New(),
		logger: logger.With("component", "context_sweep_job"),
	}
}

// Start begins the sweep job to run every minute.
func (j *ContextSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		removed := j.store.SweepExpired(time.Now().UTC())
		if removed > 0 {
			j.logger.InfoContext(ctx, "Swept expired conversation contexts", "removed", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Context sweep job started (running every minute)")
	return nil
}

// Stop stops the context sweep job.
func (j *ContextSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Context sweep job stopped")
}
