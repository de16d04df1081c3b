package repository

import (
	"context"
	"fmt"
	"time"

	"backendjobs/database"
	"backendjobs/models"
)

// CronRepository implements the CronRepository interface
type CronRepository struct {
	q queryable
}

// NewCronRepository creates a new cron repository
func NewCronRepository(db *database.DB) *CronRepository {
	return &CronRepository{q: db.Pool}
}

func newCronRepositoryWithTx(tx queryable) *CronRepository {
	return &CronRepository{q: tx}
}

// GetExecutionsForDate returns the scheduled executions due on a date in execution order
func (r *CronRepository) GetExecutionsForDate(ctx context.Context, date time.Time) ([]*models.CronEventExecution, error) {
	query := `
		SELECT id, case_id, event, cutoff_date, weekday_of_cutoff_date, cutoff_date_schedule,
		       execution_date, execution_order, title, template, target, target_type, graphql
		FROM cron_event_executions
		WHERE execution_date = $1
		ORDER BY execution_order ASC, id ASC
	`

	day := models.DateOf(date)
	rows, err := r.q.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query cron executions for %s: %w", day.Format(models.DateLayout), err)
	}
	defer rows.Close()

	var executions []*models.CronEventExecution
	for rows.Next() {
		var e models.CronEventExecution
		err := rows.Scan(
			&e.ID,
			&e.CaseID,
			&e.Event,
			&e.CutoffDate,
			&e.WeekdayOfCutoffDate,
			&e.CutoffDateSchedule,
			&e.ExecutionDate,
			&e.ExecutionOrder,
			&e.Title,
			&e.Template,
			&e.Target,
			&e.TargetType,
			&e.GraphQL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cron execution: %w", err)
		}
		executions = append(executions, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cron executions: %w", err)
	}

	return executions, nil
}
