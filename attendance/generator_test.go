package attendance

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defaulter-fixtures-go/models"
)

// fixedSource returns queued values; Float64 yields 0.5 (zero noise) once the queue is empty
type fixedSource struct {
	ints   []int
	floats []float64
}

func (s *fixedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *fixedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

var (
	testSubject = models.Subject{Name: "Operating Systems", TeacherID: "TCH003", TeacherName: "Prof. Sneha Patel"}
	testPeriod  = models.Period{Month: time.March, Year: 2023}
)

func testProfile(base float64) Profile {
	return Profile{
		Student: models.Student{
			ID: "STU01001", Name: "Aarav Patel", RollNo: 1,
			Year: models.FirstYear, Stream: models.StreamIT, Division: models.DivisionA,
		},
		BaseRate: base,
	}
}

func TestEffectiveRateClamps(t *testing.T) {
	assert.Equal(t, 0.75, EffectiveRate(0.75, 0))
	assert.Equal(t, MinRate, EffectiveRate(0.25, -0.1))
	assert.Equal(t, MaxRate, EffectiveRate(0.95, 0.1))
	assert.InDelta(t, 0.8, EffectiveRate(0.85, -0.05), 1e-12)
}

func TestNewRecordAtThresholdIsRegular(t *testing.T) {
	rec, err := NewRecord(testProfile(0.75), testSubject, testPeriod, 20, EffectiveRate(0.75, 0))
	require.NoError(t, err)

	assert.Equal(t, 20, rec.Held)
	assert.Equal(t, 15, rec.Attended)
	assert.Equal(t, 5, rec.Missed)
	assert.Equal(t, 75.0, rec.Percentage)
	assert.Equal(t, models.StatusRegular, rec.Status)
	assert.Equal(t, "TCH003", rec.TeacherID)
	assert.Equal(t, testPeriod, rec.Period)
}

func TestNewRecordClampedFloor(t *testing.T) {
	rec, err := NewRecord(testProfile(0.25), testSubject, testPeriod, 16, EffectiveRate(0.25, -0.1))
	require.NoError(t, err)

	assert.Equal(t, 4, rec.Attended)
	assert.Equal(t, 12, rec.Missed)
	assert.Equal(t, 25.0, rec.Percentage)
	assert.Equal(t, models.StatusDefaulter, rec.Status)
}

func TestNewRecordTruncates(t *testing.T) {
	rec, err := NewRecord(testProfile(0.75), testSubject, testPeriod, 20, 0.749999)
	require.NoError(t, err)

	assert.Equal(t, 14, rec.Attended)
	assert.Equal(t, 70.0, rec.Percentage)
	assert.Equal(t, models.StatusDefaulter, rec.Status)
}

func TestNewRecordRejectsEmptyPeriod(t *testing.T) {
	_, err := NewRecord(testProfile(0.8), testSubject, testPeriod, 0, 0.8)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestRoundPercentHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 0.13, RoundPercent(0.125))
	assert.Equal(t, 0.38, RoundPercent(0.375))
	assert.Equal(t, 83.33, RoundPercent(float64(5)/6*100))
	assert.Equal(t, 66.67, RoundPercent(float64(2)/3*100))
	// half-way values at the defaulter threshold round up
	assert.Equal(t, 75.0, RoundPercent(74.995))
	assert.Equal(t, 74.99, RoundPercent(74.985))
}

func TestIsDefaulterBoundary(t *testing.T) {
	assert.False(t, IsDefaulter(15, 20))
	assert.True(t, IsDefaulter(14, 20))
	assert.False(t, IsDefaulter(12, 16))
	assert.True(t, IsDefaulter(11, 15))
}

func TestRecordInvariantsOverRandomBatches(t *testing.T) {
	src := rand.New(rand.NewSource(2024))
	profiles := make([]Profile, 0, 50)
	for i := 0; i < 50; i++ {
		profiles = append(profiles, testProfile(src.Float64()))
	}

	for i := 0; i < 40; i++ {
		batch, err := GenerateBatch(profiles, models.StreamIT, testSubject, testPeriod, src)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, batch.Held, MinHeld)
		assert.LessOrEqual(t, batch.Held, MaxHeld)

		for _, r := range batch.Records {
			assert.Equal(t, batch.Held, r.Held)
			assert.LessOrEqual(t, r.Attended, r.Held)
			assert.Equal(t, r.Held-r.Attended, r.Missed)
			below := float64(r.Attended)/float64(r.Held) < 0.75
			assert.Equal(t, below, r.Status == models.StatusDefaulter, "%+v", r)
		}
	}
}

func TestGenerateBatchUsesInjectedDraws(t *testing.T) {
	src := &fixedSource{ints: []int{5}}
	batch, err := GenerateBatch([]Profile{testProfile(0.75)}, models.StreamIT, testSubject, testPeriod, src)
	require.NoError(t, err)

	assert.Equal(t, 20, batch.Held)
	require.Len(t, batch.Records, 1)
	assert.Equal(t, 15, batch.Records[0].Attended)
	assert.Equal(t, models.StatusRegular, batch.Records[0].Status)
}

func TestAssignBaseRatesRange(t *testing.T) {
	students := make([]models.Student, 200)
	profiles := AssignBaseRates(students, rand.New(rand.NewSource(8)))
	require.Len(t, profiles, 200)
	for _, p := range profiles {
		assert.GreaterOrEqual(t, p.BaseRate, MinBaseRate)
		assert.Less(t, p.BaseRate, MaxBaseRate)
	}
}

func TestGenerateOneStreamTwoSubjectsOnePeriod(t *testing.T) {
	var profiles []Profile
	for i := 0; i < 7; i++ {
		p := testProfile(0.8)
		p.Student.RollNo = i + 1
		profiles = append(profiles, p)
	}
	other := testProfile(0.9)
	other.Student.Stream = models.StreamDS
	profiles = append(profiles, other)

	subjects := models.SubjectAssignment{
		Order: []models.Stream{models.StreamIT},
		ByStream: map[models.Stream][]models.Subject{
			models.StreamIT: {testSubject, {Name: "Web Development", TeacherID: "TCH002", TeacherName: "Prof. Ramesh Iyer"}},
		},
	}

	var batches []Batch
	err := Generate(profiles, subjects, []models.Period{testPeriod}, rand.New(rand.NewSource(3)), func(b Batch) error {
		batches = append(batches, b)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, batches, 2)

	total := 0
	for _, b := range batches {
		total += len(b.Records)
		for _, r := range b.Records {
			assert.Equal(t, b.Held, r.Held)
			assert.Equal(t, models.StreamIT, r.Stream)
		}
	}
	assert.Equal(t, 7*2, total)
	assert.Equal(t, "Operating Systems", batches[0].Subject.Name)
	assert.Equal(t, "Web Development", batches[1].Subject.Name)
}

func TestGenerateIterationOrderAndEmitError(t *testing.T) {
	itStudent := testProfile(0.8)
	dsStudent := testProfile(0.8)
	dsStudent.Student.Stream = models.StreamDS
	periods, err := Periods(time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), 2, StepCalendar)
	require.NoError(t, err)

	var seen []string
	err = Generate([]Profile{itStudent, dsStudent}, DefaultSubjects(), periods, rand.New(rand.NewSource(1)), func(b Batch) error {
		seen = append(seen, b.Period.String()+"/"+string(b.Stream))
		return nil
	})
	require.NoError(t, err)
	require.Len(t, seen, 2*2*4)
	assert.Equal(t, "January 2022/BSCIT", seen[0])
	assert.Equal(t, "January 2022/BSCDS", seen[4])
	assert.Equal(t, "February 2022/BSCIT", seen[8])

	calls := 0
	err = Generate([]Profile{itStudent}, DefaultSubjects(), periods, rand.New(rand.NewSource(1)), func(b Batch) error {
		calls++
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}

func TestBatchStats(t *testing.T) {
	b := Batch{Records: []models.AttendanceRecord{
		{Status: models.StatusDefaulter}, {Status: models.StatusRegular}, {Status: models.StatusDefaulter},
	}}
	students, defaulters := b.Stats()
	assert.Equal(t, 3, students)
	assert.Equal(t, 2, defaulters)
}
