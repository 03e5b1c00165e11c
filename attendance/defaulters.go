package attendance

import (
	"time"

	"defaulter-fixtures-go/models"
)

// Filter narrows a defaulter search. Zero-valued fields match everything;
// a zero Threshold means DefaulterThreshold.
type Filter struct {
	Threshold float64
	Stream    models.Stream
	Division  models.Division
	Subject   string
	Month     time.Month
	Year      int
}

func (f Filter) threshold() float64 {
	if f.Threshold <= 0 {
		return DefaulterThreshold
	}
	return f.Threshold
}

func (f Filter) matches(r models.AttendanceRecord) bool {
	switch {
	case f.Stream != "" && r.Stream != f.Stream:
		return false
	case f.Division != "" && r.Division != f.Division:
		return false
	case f.Subject != "" && r.Subject != f.Subject:
		return false
	case f.Month != 0 && r.Period.Month != f.Month:
		return false
	case f.Year != 0 && r.Period.Year != f.Year:
		return false
	}
	return true
}

// below reports whether r falls under the threshold. At the default threshold a record
// with classes held is judged on its counts, like its Status, not on the rounded percentage.
func (f Filter) below(r models.AttendanceRecord) bool {
	limit := f.threshold()
	if limit == DefaulterThreshold && r.Held > 0 {
		return IsDefaulter(r.Attended, r.Held)
	}
	return r.Percentage < limit
}

// Defaulters returns the records strictly below the filter threshold
func Defaulters(records []models.AttendanceRecord, f Filter) []models.AttendanceRecord {
	out := make([]models.AttendanceRecord, 0)
	for _, r := range records {
		if f.below(r) && f.matches(r) {
			out = append(out, r)
		}
	}
	return out
}
