package jobs

import (
	"fmt"
	"log/slog"

	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/commands"
	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/queries"
)

// Schedules holds the cron expressions (with a seconds field) of the jobs.
// An empty expression disables that job.
type Schedules struct {
	AutoAllocation    string
	ExpiringLots      string
	ExpiryWarningDays int
}

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs    []job
	names   []string
	started []job
}

// NewJobManager builds the jobs whose schedule is set.
func NewJobManager(
	listOrdersHandler queries.ListOrdersQueryHandler,
	allocateOrderHandler commands.AllocateOrderCommandHandler,
	availableStockHandler queries.GetAvailableStockQueryHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	if schedules.AutoAllocation != "" {
		jm.add("auto allocation", NewAutoAllocationJob(
			listOrdersHandler, allocateOrderHandler, schedules.AutoAllocation, logger,
		))
	}
	if schedules.ExpiringLots != "" {
		jm.add("expiring lots", NewExpiringLotsJob(
			availableStockHandler, schedules.ExpiryWarningDays, schedules.ExpiringLots, logger,
		))
	}
	return jm
}

func (jm *JobManager) add(name string, j job) {
	jm.names = append(jm.names, name)
	jm.jobs = append(jm.jobs, j)
}

// StartAll starts all scheduled jobs. If one fails to start, the jobs
// already started are stopped.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", jm.names[i], err)
		}
		jm.started = append(jm.started, j)
	}
	return nil
}

// StopAll stops the started jobs and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	for _, j := range jm.started {
		j.Stop()
	}
	jm.started = nil
}
