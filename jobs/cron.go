package jobs

import (
	"context"
	"time"

	"checkin/services/logger"

	"github.com/robfig/cron/v3"
)

// StorePinger is the record store reachability check
type StorePinger interface {
	Ping(ctx context.Context) error
}

// StoreHealthJob logs record store reachability, reporting only transitions
// after the first run
type StoreHealthJob struct {
	store   StorePinger
	timeout time.Duration
	logger  logger.Logger

	ran     bool
	healthy bool
}

func NewStoreHealthJob(store StorePinger, timeout time.Duration, log logger.Logger) *StoreHealthJob {
	return &StoreHealthJob{store: store, timeout: timeout, logger: log}
}

// Run implements cron.Job
func (j *StoreHealthJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	err := j.store.Ping(ctx)
	healthy := err == nil
	switch {
	case !healthy && (!j.ran || j.healthy):
		j.logger.Error("record store health check failed: %v", err)
	case healthy && j.ran && !j.healthy:
		j.logger.Info("record store reachable again")
	case !j.ran:
		j.logger.Info("record store health check ok")
	}
	j.ran = true
	j.healthy = healthy
}

// InitCronJobs schedules the background jobs and starts the scheduler
func InitCronJobs(c *cron.Cron, schedule string, job *StoreHealthJob, log logger.Logger) error {
	if _, err := c.AddJob(schedule, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(job)); err != nil {
		return err
	}

	c.Start()
	log.Info("cron jobs initialized (store health %s)", schedule)
	return nil
}
