// Package jobs provides scheduled background tasks for the fulfillment
// service.
//
// Jobs run on github.com/robfig/cron/v3 with a seconds field in their
// schedules.
//
// # Available Jobs
//
// 1. AutoAllocationJob - allocates pending orders, urgent first, then oldest
// 2. ExpiringLotsJob - logs lots with stock left inside the expiry warning window
//
// # Usage
//
//	jobManager := jobs.NewJobManager(listOrders, allocateOrder, availableStock, jobs.Schedules{
//		AutoAllocation:    "*/30 * * * * *",
//		ExpiringLots:      "0 0 6 * * *",
//		ExpiryWarningDays: 3,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Auto allocation treats insufficient stock as an expected outcome and keeps going
// - Expiring lots only reads the ledger; its failures are logged
// - Failed job starts will stop any already running jobs
package jobs
