package dates

import (
	"fmt"
	"regexp"
	"time"

	"github.com/schoolerp/ledger_backend/internal/apperrors"
)

// ISO is the only accepted date layout on the API surface.
const ISO = "2006-01-02"

// isoPattern guards against layouts time.Parse would accept loosely
// (e.g. "2024-3-5").
var isoPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseISO parses a strict YYYY-MM-DD date in UTC.
func ParseISO(s string) (time.Time, error) {
	if !isoPattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: date %q must match YYYY-MM-DD", apperrors.ErrValidation, s)
	}
	d, err := time.ParseInLocation(ISO, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, s)
	}
	return d, nil
}

// MonthRange returns the first and last day of the given month in UTC after
// validating month in [1,12] and year in [1900,2100].
func MonthRange(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %d out of range [1,12]", apperrors.ErrValidation, month)
	}
	if year < 1900 || year > 2100 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: year %d out of range [1900,2100]", apperrors.ErrValidation, year)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

// MonthName renders a period label such as "March 2024".
func MonthName(month, year int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}
