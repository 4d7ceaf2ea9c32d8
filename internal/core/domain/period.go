package domain

import "time"

// PeriodType is the granularity of an accounting period.
type PeriodType string

const (
	Monthly PeriodType = "MONTHLY"
	Term    PeriodType = "TERM"
	Annual  PeriodType = "ANNUAL"
)

// PeriodStatus is the lifecycle state of a period. CLOSED is terminal;
// reopening is not supported.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// AccountingPeriod is a reporting-window label, not a hard partition of the
// journal: entries are filtered into periods by date range. Periods are
// materialized on demand when a report is requested for a month/year that has
// no period row yet.
type AccountingPeriod struct {
	PeriodID   string       `json:"periodID"` // Primary key (UUID)
	Name       string       `json:"name"`     // e.g. "March 2024"
	PeriodType PeriodType   `json:"periodType"`
	StartDate  time.Time    `json:"startDate"`
	EndDate    time.Time    `json:"endDate"`
	Status     PeriodStatus `json:"status"`
	AuditFields
}

// Contains reports whether d falls inside the period (inclusive bounds).
func (p AccountingPeriod) Contains(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}
