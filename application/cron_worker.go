package application

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// CronWorker dispatches the day's executions once a day
type CronWorker struct {
	dispatcher JobDispatcher
	now        func() time.Time
}

// NewCronWorker creates a new cron worker
func NewCronWorker(dispatcher JobDispatcher) *CronWorker {
	return &CronWorker{
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// NextRun returns how long to wait until the next run at hour UTC
func (w *CronWorker) NextRun(hour int) time.Duration {
	now := w.now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)

	// Already passed today, schedule for tomorrow
	if !now.Before(next) {
		next = next.Add(24 * time.Hour)
	}

	return next.Sub(now)
}

// RunOnce dispatches the executions due today
func (w *CronWorker) RunOnce(ctx context.Context) {
	today := w.now().UTC()
	count, err := w.dispatcher.Dispatch(ctx, today)
	if err != nil {
		log.Errorf("Error dispatching scheduled jobs: %v", err)
		return
	}
	log.WithField("executions", count).Info("Scheduled jobs dispatched")
}

// Start begins the worker and returns a function that stops it
func (w *CronWorker) Start(ctx context.Context, hour int) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Infof("Cron worker started, next run at %02d:00 UTC", hour)

		for {
			waitDuration := w.NextRun(hour)
			log.Infof("Cron worker waiting %v until next run", waitDuration)

			select {
			case <-ctx.Done():
				log.Info("Cron worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Cron worker shutting down (stop requested)...")
				return
			case <-time.After(waitDuration):
				w.RunOnce(ctx)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stopChan) })
	}
}
