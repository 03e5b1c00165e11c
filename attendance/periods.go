package attendance

import (
	"errors"
	"fmt"
	"time"

	"defaulter-fixtures-go/models"
)

// Stepping decides how consecutive periods are derived from the start date
type Stepping int

const (
	// StepCalendar advances one calendar month at a time
	StepCalendar Stepping = iota
	// StepFixed30 adds 30 days per step. Month labels drift: some repeat, some are skipped.
	StepFixed30
)

const MaxPeriods = 120

var ErrInvalidPeriodCount = errors.New("invalid period count")

// Periods returns n reporting periods starting at start. n must be in [1, MaxPeriods].
func Periods(start time.Time, n int, step Stepping) ([]models.Period, error) {
	if n < 1 || n > MaxPeriods {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidPeriodCount, n, MaxPeriods)
	}

	periods := make([]models.Period, 0, n)
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		var d time.Time
		switch step {
		case StepFixed30:
			d = start.AddDate(0, 0, 30*i)
		default:
			d = first.AddDate(0, i, 0)
		}
		periods = append(periods, models.Period{Month: d.Month(), Year: d.Year()})
	}

	return periods, nil
}
