package models

import "time"

// AccountingPeriod is the accounting_periods table row.
type AccountingPeriod struct {
	PeriodID   string    `db:"period_id"`
	Name       string    `db:"period_name"`
	PeriodType string    `db:"period_type"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	Status     string    `db:"status"`
	AuditFields
}
