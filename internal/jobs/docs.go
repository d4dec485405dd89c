// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. RobotReleaseJob - Releases every busy robot whose order is DELIVERED or gone
//
// Delivery already releases the robot in the same transaction that marks the
// order DELIVERED. The sweep only repairs robots left busy by an earlier crash
// or by manual database edits.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(releaseHandler, config.RobotReleaseSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions including seconds. The default,
// "*/30 * * * * *", runs the sweep twice a minute.
//
// # Error Handling
//
// Failures are logged and retried on the next tick.
package jobs
