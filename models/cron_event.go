package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CronEventExecution is a scheduled event that is due on an execution date
type CronEventExecution struct {
	ID                  int64           `db:"id"`
	CaseID              string          `db:"case_id"`
	Event               string          `db:"event"`
	CutoffDate          *time.Time      `db:"cutoff_date"`
	WeekdayOfCutoffDate *string         `db:"weekday_of_cutoff_date"`
	CutoffDateSchedule  int             `db:"cutoff_date_schedule"`
	ExecutionDate       time.Time       `db:"execution_date"`
	ExecutionOrder      decimal.Decimal `db:"execution_order"`
	Title               *string         `db:"title"`
	Template            *string         `db:"template"`
	Target              *string         `db:"target"`
	TargetType          *string         `db:"target_type"`
	GraphQL             *string         `db:"graphql"`
}
