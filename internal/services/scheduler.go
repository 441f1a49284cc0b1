package services

import (
	"context"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type runner interface {
	Run(ctx context.Context) error
}

// Scheduler repeats harvesting runs on a cron schedule. A tick that fires
// while the previous run is still going is skipped.
type Scheduler struct {
	cron     *cron.Cron
	runner   runner
	schedule string
}

func NewScheduler(schedule string, runner runner) *Scheduler {
	cronLogger := cron.VerbosePrintfLogger(log.StandardLogger())
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger))),
		runner:   runner,
		schedule: schedule,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if ctx.Err() != nil {
			return
		}
		_ = s.runner.Run(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Infof("scheduler started, schedule: %q", s.schedule)
	return nil
}

// Stop stops the schedule and waits for a running collection to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("scheduler stopped")
}
