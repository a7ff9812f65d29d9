// Package jobs provides scheduled background tasks for the order tracking
// service.
//
// Jobs are cron-driven (github.com/robfig/cron/v3, seconds precision) and are
// started and stopped together through JobManager:
//
//	relay := jobs.NewLedgerRelayJob(&relayHandler, relayCmd, "", logger)
//	jobManager := jobs.NewJobManager(relay)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// LedgerRelayJob publishes committed order status history to Kafka in ledger
// order. Each tick drains full batches until the backlog is empty. An empty
// ledger (commands.ErrNoLedgerRecords) is not logged as an error.
package jobs
