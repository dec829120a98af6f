package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultBacklogSchedule fires at the top of every minute (seconds field first).
const DefaultBacklogSchedule = "0 * * * * *"

// BacklogCounter is the read side the job polls.
type BacklogCounter interface {
	Handle(ctx context.Context, query queries.GetBacklogQuery) (queries.GetBacklogQueryResponse, error)
}

// AmendmentBacklogJob periodically counts open amendments per status and
// publishes them as gauges. It never changes amendment state.
type AmendmentBacklogJob struct {
	counter    BacklogCounter
	schedule   string
	staleAfter time.Duration
	now        func() time.Time
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAmendmentBacklogJob creates the job. An empty schedule falls back to
// DefaultBacklogSchedule.
func NewAmendmentBacklogJob(
	counter BacklogCounter,
	schedule string,
	staleAfter time.Duration,
	logger *slog.Logger,
) *AmendmentBacklogJob {
	if schedule == "" {
		schedule = DefaultBacklogSchedule
	}
	return &AmendmentBacklogJob{
		counter:    counter,
		schedule:   schedule,
		staleAfter: staleAfter,
		now:        time.Now,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "amendment_backlog_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *AmendmentBacklogJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Amendment backlog job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Amendment backlog job started",
		"schedule", j.schedule,
		"stale_after", j.staleAfter.String(),
	)
	return nil
}

// Run performs a single backlog count.
func (j *AmendmentBacklogJob) Run(ctx context.Context) error {
	query, err := queries.NewGetBacklogQuery(j.now(), j.staleAfter)
	if err != nil {
		return err
	}

	backlog, err := j.counter.Handle(ctx, query)
	if err != nil {
		return err
	}

	for _, entry := range backlog.Entries {
		metrics.SetBacklog(entry.Status.String(), entry.Open, entry.Stale)
		if entry.Stale > 0 {
			j.logger.WarnContext(ctx, "Stale amendments waiting",
				"status", entry.Status.String(),
				"stale", entry.Stale,
				"open", entry.Open,
				"stale_before", backlog.StaleBefore,
			)
		}
	}

	open, stale := backlog.Total()
	j.logger.DebugContext(ctx, "Amendment backlog counted", "open", open, "stale", stale)
	return nil
}

// Stop stops the scheduler and waits for a running count to finish.
func (j *AmendmentBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Amendment backlog job stopped")
}
