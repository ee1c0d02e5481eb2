// Package jobs provides scheduled background tasks for the assistant.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping the conversational service needs.
//
// # Available Jobs
//
// 1. ContextSweepJob - Runs every minute to evict conversation contexts that
// have been idle past their TTL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(contextStore, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweeping cannot fail; the job only logs when it actually removed contexts,
// so a quiet system produces no log noise.
package jobs
