package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defaulter-fixtures-go/models"
)

var jan2022 = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestPeriodsCalendar(t *testing.T) {
	periods, err := Periods(jan2022, 36, StepCalendar)
	require.NoError(t, err)
	require.Len(t, periods, 36)

	assert.Equal(t, models.Period{Month: time.January, Year: 2022}, periods[0])
	assert.Equal(t, models.Period{Month: time.December, Year: 2024}, periods[35])

	seen := make(map[models.Period]bool)
	for _, p := range periods {
		assert.False(t, seen[p], "repeated %s", p)
		seen[p] = true
	}
}

func TestPeriodsCalendarFromMonthEnd(t *testing.T) {
	periods, err := Periods(time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC), 3, StepCalendar)
	require.NoError(t, err)
	assert.Equal(t, []models.Period{
		{Month: time.January, Year: 2023},
		{Month: time.February, Year: 2023},
		{Month: time.March, Year: 2023},
	}, periods)
}

func TestPeriodsFixed30Drifts(t *testing.T) {
	periods, err := Periods(jan2022, 36, StepFixed30)
	require.NoError(t, err)
	require.Len(t, periods, 36)

	// Jan 1 + 30 days is Jan 31
	assert.Equal(t, periods[0], periods[1])
	// day 1050 is 2024-11-16, so December 2024 is never reached
	assert.Equal(t, models.Period{Month: time.November, Year: 2024}, periods[35])
}

func TestPeriodsRejectsBadCount(t *testing.T) {
	for _, n := range []int{-1, 0, MaxPeriods + 1} {
		periods, err := Periods(jan2022, n, StepCalendar)
		assert.ErrorIs(t, err, ErrInvalidPeriodCount, "n=%d", n)
		assert.Nil(t, periods)
	}

	periods, err := Periods(jan2022, MaxPeriods, StepFixed30)
	require.NoError(t, err)
	assert.Len(t, periods, MaxPeriods)
}
