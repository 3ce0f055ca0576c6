package jobs

import (
	"context"
	"log/slog"
	"time"

	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/pkg/metrics"
	"cafe/internal/pkg/tracing"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultOutboxBatchSize is how many messages one relay run publishes.
	DefaultOutboxBatchSize = 100

	relaySchedule = "* * * * * *"
	relayTimeout  = 10 * time.Second
)

// OutboxPublisher publishes one batch of pending outbox messages and reports
// how many were sent.
type OutboxPublisher interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (int, error)
}

// OutboxRelayJob publishes pending outbox messages every second.
type OutboxRelayJob struct {
	handler   OutboxPublisher
	batchSize int
	metrics   *metrics.Metrics
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay. A nil metrics disables counting.
func NewOutboxRelayJob(handler OutboxPublisher, batchSize int, m *metrics.Metrics, logger *slog.Logger) *OutboxRelayJob {
	if batchSize <= 0 {
		batchSize = DefaultOutboxBatchSize
	}

	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		metrics:   m,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Name() string {
	return "outbox relay job"
}

// Start begins the relay to run every second.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(relaySchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), relayTimeout)
		defer cancel()
		j.run(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)",
		slog.Int("batch_size", j.batchSize))
	return nil
}

// Stop stops scheduling and waits for a running batch to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) run(ctx context.Context) {
	ctx, span := tracing.Start(ctx, "outbox.relay")
	defer span.End()

	cmd, err := commands.NewPublishOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay misconfigured", "error", err)
		return
	}

	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		if j.metrics != nil {
			j.metrics.OutboxFailures.Inc()
		}
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
		return
	}

	if sent == 0 {
		return
	}
	if j.metrics != nil {
		j.metrics.OutboxSent.Add(float64(sent))
	}
	j.logger.DebugContext(ctx, "Outbox messages published", slog.Int("count", sent))
}
