package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"backendjobs/models"
	"backendjobs/service"

	log "github.com/sirupsen/logrus"
)

// Dispatcher looks up the executions due on a date and runs them in the
// background, one after another in execution order
type Dispatcher struct {
	uowFactory service.UnitOfWorkFactory
	executor   Executor
	wg         sync.WaitGroup
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(uowFactory service.UnitOfWorkFactory, executor Executor) *Dispatcher {
	return &Dispatcher{
		uowFactory: uowFactory,
		executor:   executor,
	}
}

// Dispatch fetches the executions due on date and starts running them. It
// returns once the background run has started. The run outlives ctx.
func (d *Dispatcher) Dispatch(ctx context.Context, date time.Time) (int, error) {
	executions, err := d.executionsForDate(ctx, date)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"date":       date.Format(models.DateLayout),
		"executions": len(executions),
	}).Info("Fetched cron event executions")

	if len(executions) == 0 {
		return 0, nil
	}

	runCtx := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(runCtx, executions)
	}()

	return len(executions), nil
}

// Wait blocks until every dispatched run has finished
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) executionsForDate(ctx context.Context, date time.Time) ([]*models.CronEventExecution, error) {
	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	executions, err := uow.CronRepository().GetExecutionsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cron executions: %w", err)
	}
	return executions, nil
}

func (d *Dispatcher) run(ctx context.Context, executions []*models.CronEventExecution) {
	var failed int
	for _, exec := range executions {
		if err := d.execute(ctx, exec); err != nil {
			failed++
			log.WithFields(log.Fields{
				"executionId":   exec.ID,
				"caseId":        exec.CaseID,
				"event":         exec.Event,
				"executionDate": exec.ExecutionDate.Format(models.DateLayout),
				"error":         err,
			}).Error("Job execution failed")
		}
	}

	log.WithFields(log.Fields{
		"executions": len(executions),
		"failed":     failed,
	}).Info("Completed cron event executions")
}

// execute runs one job, turning a panic into an error so later jobs still run
func (d *Dispatcher) execute(ctx context.Context, exec *models.CronEventExecution) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return d.executor.Execute(ctx, exec)
}
