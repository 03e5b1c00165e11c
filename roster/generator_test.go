package roster

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defaulter-fixtures-go/models"
)

var idPattern = regexp.MustCompile(`^STU[0-2][1-4]\d{3}$`)

func generateDefault(t *testing.T, seed int64) []models.Student {
	t.Helper()
	students, err := Generate(DefaultOptions(), rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return students
}

func TestPartition(t *testing.T) {
	sizes := Partition(500, 12)
	require.Len(t, sizes, 12)

	sum := 0
	for i, n := range sizes {
		sum += n
		if i < 8 {
			assert.Equal(t, 42, n, "group %d", i)
		} else {
			assert.Equal(t, 41, n, "group %d", i)
		}
	}
	assert.Equal(t, 500, sum)

	assert.Equal(t, []int{4, 4, 4}, Partition(12, 3))
	assert.Nil(t, Partition(10, 0))
}

func TestGenerateDefaultRoster(t *testing.T) {
	students := generateDefault(t, 7)
	require.Len(t, students, 500)

	names := make(map[string]bool)
	ids := make(map[string]bool)
	for _, s := range students {
		assert.False(t, names[s.Name], "duplicate name %q", s.Name)
		assert.False(t, ids[s.ID], "duplicate id %q", s.ID)
		names[s.Name] = true
		ids[s.ID] = true
		assert.Regexp(t, idPattern, s.ID)
	}

	summary := Summary(students)
	assert.Equal(t, 168, summary[models.FirstYear])
	assert.Equal(t, 168, summary[models.SecondYear])
	assert.Equal(t, 164, summary[models.ThirdYear])
}

func TestGenerateIdentifierFormat(t *testing.T) {
	students := generateDefault(t, 1)

	assert.Equal(t, "STU01001", students[0].ID)
	assert.Equal(t, "STU02043", students[42].ID)
	last := students[len(students)-1]
	assert.Equal(t, "STU24500", last.ID)
	assert.Equal(t, models.ThirdYear, last.Year)
	assert.Equal(t, models.StreamAIML, last.Stream)
}

func TestGenerateRollNumbersAndDivisions(t *testing.T) {
	students := generateDefault(t, 3)

	type key struct {
		year   models.Year
		stream models.Stream
	}
	next := make(map[key]int)
	for _, s := range students {
		k := key{s.Year, s.Stream}
		next[k]++
		assert.Equal(t, next[k], s.RollNo, "roll for %s", s.ID)
		assert.Equal(t, models.Divisions[(s.RollNo-1)%3], s.Division, "division for %s", s.ID)
	}
	assert.Len(t, next, 12)
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := generateDefault(t, 99)
	b := generateDefault(t, 99)
	assert.Equal(t, a, b)

	c := generateDefault(t, 100)
	assert.NotEqual(t, a, c)
}

func TestGenerateNameSpaceExhausted(t *testing.T) {
	opts := DefaultOptions()
	opts.Total = 5
	opts.Years = []models.Year{models.FirstYear}
	opts.Streams = []models.Stream{models.StreamIT}
	opts.FirstNames = []string{"Asha", "Ravi"}
	opts.LastNames = []string{"Rao", "Shah"}
	opts.MaxAttempts = 200

	_, err := Generate(opts, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNameSpaceExhausted)
}

func TestGenerateExactPoolFits(t *testing.T) {
	opts := DefaultOptions()
	opts.Total = 4
	opts.Years = []models.Year{models.SecondYear}
	opts.Streams = []models.Stream{models.StreamDS}
	opts.FirstNames = []string{"Asha", "Ravi"}
	opts.LastNames = []string{"Rao", "Shah"}

	students, err := Generate(opts, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	assert.Len(t, students, 4)
}

func TestGenerateRejectsBadTotals(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	for _, total := range []int{0, -3, 1000} {
		opts := DefaultOptions()
		opts.Total = total
		_, err := Generate(opts, src)
		assert.ErrorIs(t, err, ErrInvalidTotal, "total %d", total)
	}
}

func TestGenerateRejectsUnknownStream(t *testing.T) {
	opts := DefaultOptions()
	opts.Streams = []models.Stream{"BCOM"}

	_, err := Generate(opts, rand.New(rand.NewSource(1)))
	assert.ErrorContains(t, err, "unknown stream")
}
