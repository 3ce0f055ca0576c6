// Package jobs provides scheduled background tasks of the café backend.
//
// Jobs are driven by github.com/robfig/cron/v3 with second resolution.
//
// # Available Jobs
//
// OutboxRelayJob runs every second and publishes one batch of pending outbox
// messages (order status changes) to Kafka.
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(publishOutboxHandler, batchSize, m, logger)
//	jobManager := jobs.NewJobManager(relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and counted; its messages stay pending and are
// retried on the next tick. Ticks never overlap: a run still in progress
// makes the scheduler skip the next one.
package jobs
