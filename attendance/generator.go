// Package attendance generates monthly per-subject attendance records from a roster,
// writes them as spreadsheets and reads them back.
package attendance

import (
	"errors"
	"fmt"
	"math"

	"defaulter-fixtures-go/models"
)

const (
	MinHeld = 15
	MaxHeld = 22

	MinRate = 0.30
	MaxRate = 0.98
	Noise   = 0.1

	MinBaseRate = 0.50
	MaxBaseRate = 0.96

	// DefaulterThreshold is the attendance percentage a student must reach to be Regular
	DefaulterThreshold = 75.0
)

var ErrInvalidPeriod = errors.New("invalid period: no classes held")

// Source is the randomness the generator draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Profile is a roster student plus their long-run attendance rate
type Profile struct {
	Student  models.Student
	BaseRate float64
}

// AssignBaseRates draws one base rate per student, in roster order
func AssignBaseRates(students []models.Student, src Source) []Profile {
	profiles := make([]Profile, len(students))
	for i, s := range students {
		profiles[i] = Profile{
			Student:  s,
			BaseRate: MinBaseRate + src.Float64()*(MaxBaseRate-MinBaseRate),
		}
	}
	return profiles
}

// EffectiveRate perturbs base by noise and clamps the result to [MinRate, MaxRate]
func EffectiveRate(base, noise float64) float64 {
	return math.Max(MinRate, math.Min(MaxRate, base+noise))
}

// RoundPercent rounds to 2 decimals, halves away from zero
func RoundPercent(p float64) float64 {
	return math.Round(p*100) / 100
}

// IsDefaulter reports whether attended/held is strictly below 75%.
// Integer arithmetic keeps the 75% boundary exact.
func IsDefaulter(attended, held int) bool {
	return attended*100 < held*int(DefaulterThreshold)
}

// NewRecord derives one attendance record. attended is held*rate truncated.
func NewRecord(p Profile, subject models.Subject, period models.Period, held int, rate float64) (models.AttendanceRecord, error) {
	if held <= 0 {
		return models.AttendanceRecord{}, fmt.Errorf("%w: %s %s held=%d", ErrInvalidPeriod, subject.Name, period, held)
	}

	attended := int(math.Floor(float64(held) * rate))
	if attended > held {
		attended = held
	}
	if attended < 0 {
		attended = 0
	}

	status := models.StatusRegular
	if IsDefaulter(attended, held) {
		status = models.StatusDefaulter
	}

	s := p.Student
	return models.AttendanceRecord{
		StudentID:   s.ID,
		Name:        s.Name,
		RollNo:      s.RollNo,
		Year:        s.Year,
		Stream:      s.Stream,
		Division:    s.Division,
		Subject:     subject.Name,
		TeacherID:   subject.TeacherID,
		TeacherName: subject.TeacherName,
		Period:      period,
		Held:        held,
		Attended:    attended,
		Missed:      held - attended,
		Percentage:  RoundPercent(float64(attended) / float64(held) * 100),
		Status:      status,
	}, nil
}

// Batch is every record for one (stream, subject, period). It is written as one sheet.
type Batch struct {
	Stream  models.Stream
	Subject models.Subject
	Period  models.Period
	Held    int
	Records []models.AttendanceRecord
}

// Stats returns the number of students and defaulters in the batch
func (b Batch) Stats() (students, defaulters int) {
	for _, r := range b.Records {
		if r.Status == models.StatusDefaulter {
			defaulters++
		}
	}
	return len(b.Records), defaulters
}

// GenerateBatch draws one held count for the batch and one noise value per student
func GenerateBatch(profiles []Profile, stream models.Stream, subject models.Subject, period models.Period, src Source) (Batch, error) {
	batch := Batch{
		Stream:  stream,
		Subject: subject,
		Period:  period,
		Held:    MinHeld + src.Intn(MaxHeld-MinHeld+1),
		Records: make([]models.AttendanceRecord, 0, len(profiles)),
	}

	for _, p := range profiles {
		noise := -Noise + src.Float64()*2*Noise
		rec, err := NewRecord(p, subject, period, batch.Held, EffectiveRate(p.BaseRate, noise))
		if err != nil {
			return Batch{}, err
		}
		batch.Records = append(batch.Records, rec)
	}

	return batch, nil
}

// Generate walks period -> stream -> subject and hands each batch to emit.
// Streams with no students are skipped. The first error from emit stops generation.
func Generate(profiles []Profile, subjects models.SubjectAssignment, periods []models.Period, src Source, emit func(Batch) error) error {
	byStream := make(map[models.Stream][]Profile)
	for _, p := range profiles {
		byStream[p.Student.Stream] = append(byStream[p.Student.Stream], p)
	}

	for _, period := range periods {
		for _, stream := range subjects.Order {
			members := byStream[stream]
			if len(members) == 0 {
				continue
			}
			for _, subject := range subjects.ByStream[stream] {
				batch, err := GenerateBatch(members, stream, subject, period, src)
				if err != nil {
					return err
				}
				if err := emit(batch); err != nil {
					return fmt.Errorf("%s %s %s: %w", stream, subject.Name, period, err)
				}
			}
		}
	}

	return nil
}
