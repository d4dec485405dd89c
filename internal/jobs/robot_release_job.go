package jobs

import (
	"context"
	"log/slog"

	"campusdelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRobotReleaseSchedule runs the sweep every 30 seconds.
const DefaultRobotReleaseSchedule = "*/30 * * * * *"

// ReleaseDeliveredRobotsHandler is the use case the job runs.
type ReleaseDeliveredRobotsHandler interface {
	Handle(ctx context.Context, cmd commands.ReleaseDeliveredRobotsCommand) (int, error)
}

// RobotReleaseJob returns robots to the pool when their order is DELIVERED
// or no longer exists. It catches anything the delivery paths missed.
type RobotReleaseJob struct {
	handler  ReleaseDeliveredRobotsHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRobotReleaseJob creates the sweep. schedule is a six-field cron spec
// (with seconds); empty means DefaultRobotReleaseSchedule.
func NewRobotReleaseJob(handler ReleaseDeliveredRobotsHandler, schedule string, logger *slog.Logger) *RobotReleaseJob {
	if schedule == "" {
		schedule = DefaultRobotReleaseSchedule
	}
	return &RobotReleaseJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "robot_release_job"),
	}
}

func (j *RobotReleaseJob) Name() string {
	return "robot release job"
}

// Start schedules the sweep. An invalid schedule is returned as an error.
func (j *RobotReleaseJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Robot release job started", "schedule", j.schedule)
	return nil
}

func (j *RobotReleaseJob) run() {
	ctx := context.Background()

	released, err := j.handler.Handle(ctx, commands.NewReleaseDeliveredRobotsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Robot release job failed", "error", err)
		return
	}
	if released > 0 {
		j.logger.InfoContext(ctx, "Released robots", "count", released)
	}
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *RobotReleaseJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Robot release job stopped")
}
