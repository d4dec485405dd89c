package jobs

import (
	"fmt"
	"log/slog"
)

type job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager starts and stops the background jobs of the service as one unit.
type JobManager struct {
	jobs []job
}

// NewJobManager wires the robot release sweep. releaseSchedule is a six-field
// cron spec; an empty one means DefaultRobotReleaseSchedule.
func NewJobManager(
	releaseHandler ReleaseDeliveredRobotsHandler,
	releaseSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		jobs: []job{NewRobotReleaseJob(releaseHandler, releaseSchedule, logger)},
	}
}

// StartAll starts jobs in order. When one fails, the ones already running are stopped.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("start %s: %w", j.Name(), err)
		}
	}
	return nil
}

// StopAll blocks until every running job invocation has returned.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
