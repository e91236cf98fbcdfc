// Package scheduler runs recurring jobs on cron schedules.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wonny/tradekit/pkg/logger"
)

// Job is a named unit of scheduled work.
type Job interface {
	Name() string
	// Schedule is a six-field cron expression with seconds.
	Schedule() string
	Run(ctx context.Context) error
}

// Scheduler wraps robfig/cron with job registration and logging.
type Scheduler struct {
	cron   *cron.Cron
	logger *logger.Logger
	jobs   []Job
}

// New creates a Scheduler running in the given timezone.
func New(tz *time.Location, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds(), cron.WithLocation(tz)),
		logger: log,
	}
}

// Register adds a job to the schedule.
func (s *Scheduler) Register(job Job) error {
	_, err := s.cron.AddFunc(job.Schedule(), func() {
		start := time.Now()
		s.logger.WithField("job", job.Name()).Info("Job started")

		if err := job.Run(context.Background()); err != nil {
			s.logger.WithError(err).WithField("job", job.Name()).Error("Job failed")
			return
		}

		s.logger.WithFields(map[string]interface{}{
			"job":      job.Name(),
			"duration": time.Since(start),
		}).Info("Job completed")
	})
	if err != nil {
		return err
	}
	s.jobs = append(s.jobs, job)
	return nil
}

// Start begins executing registered jobs.
func (s *Scheduler) Start() {
	for _, job := range s.jobs {
		s.logger.WithFields(map[string]interface{}{
			"job":      job.Name(),
			"schedule": job.Schedule(),
		}).Info("Job scheduled")
	}
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}
