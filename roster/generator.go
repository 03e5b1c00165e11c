// Package roster generates synthetic student rosters and reads/writes them as CSV.
package roster

import (
	"errors"
	"fmt"
	"math/rand"

	"defaulter-fixtures-go/models"
)

const (
	idPrefix = "STU"
	maxTotal = 999 // the global counter is zero-padded to 3 digits
)

var (
	ErrNameSpaceExhausted = errors.New("name space exhausted")
	ErrInvalidTotal       = errors.New("invalid student total")
)

// Options controls one roster generation run
type Options struct {
	Total       int
	Years       []models.Year
	Streams     []models.Stream
	Divisions   []models.Division
	FirstNames  []string
	LastNames   []string
	MaxAttempts int // draws allowed per name before giving up
}

// DefaultOptions returns 500 students over FY/SY/TY x 4 streams with the default name pools
func DefaultOptions() Options {
	return Options{
		Total:       500,
		Years:       models.Years,
		Streams:     models.Streams,
		Divisions:   models.Divisions,
		FirstNames:  DefaultFirstNames,
		LastNames:   DefaultLastNames,
		MaxAttempts: 10000,
	}
}

func (o Options) validate() error {
	if o.Total <= 0 || o.Total > maxTotal {
		return fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidTotal, o.Total, maxTotal)
	}
	if len(o.Years) == 0 || len(o.Streams) == 0 || len(o.Divisions) == 0 {
		return errors.New("years, streams and divisions cannot be empty")
	}
	if len(o.FirstNames) == 0 || len(o.LastNames) == 0 {
		return errors.New("name pools cannot be empty")
	}
	if o.MaxAttempts <= 0 {
		return errors.New("max attempts must be positive")
	}
	for _, y := range o.Years {
		if _, ok := y.Code(); !ok {
			return fmt.Errorf("unknown year %q", y)
		}
	}
	for _, s := range o.Streams {
		if _, ok := s.Code(); !ok {
			return fmt.Errorf("unknown stream %q", s)
		}
	}
	return nil
}

// Partition splits total over groups as evenly as possible.
// The first total%groups groups get one extra student.
func Partition(total, groups int) []int {
	if groups <= 0 {
		return nil
	}
	sizes := make([]int, groups)
	base, extra := total/groups, total%groups
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}

// Generate builds opts.Total students, year by year and stream by stream.
// Names are unique within the run; src is the only source of randomness.
func Generate(opts Options, src *rand.Rand) ([]models.Student, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	sizes := Partition(opts.Total, len(opts.Years)*len(opts.Streams))
	used := make(map[string]struct{}, opts.Total)
	students := make([]models.Student, 0, opts.Total)

	counter := 1
	group := 0
	for _, year := range opts.Years {
		yearCode, _ := year.Code()
		for _, stream := range opts.Streams {
			streamCode, _ := stream.Code()

			for i := 0; i < sizes[group]; i++ {
				name, err := uniqueName(opts, src, used)
				if err != nil {
					return nil, fmt.Errorf("student %d (%s %s): %w", counter, year, stream, err)
				}

				students = append(students, models.Student{
					ID:       fmt.Sprintf("%s%s%s%03d", idPrefix, yearCode, streamCode, counter),
					Name:     name,
					RollNo:   i + 1,
					Year:     year,
					Stream:   stream,
					Division: opts.Divisions[i%len(opts.Divisions)],
				})
				counter++
			}
			group++
		}
	}

	return students, nil
}

// uniqueName draws (first, last) pairs until one is not in used, then records it
func uniqueName(opts Options, src *rand.Rand, used map[string]struct{}) (string, error) {
	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		first := opts.FirstNames[src.Intn(len(opts.FirstNames))]
		last := opts.LastNames[src.Intn(len(opts.LastNames))]
		name := first + " " + last
		if _, taken := used[name]; taken {
			continue
		}
		used[name] = struct{}{}
		return name, nil
	}
	return "", fmt.Errorf("%w after %d attempts (%d names in use)", ErrNameSpaceExhausted, opts.MaxAttempts, len(used))
}

// Summary counts students per year
func Summary(students []models.Student) map[models.Year]int {
	counts := make(map[models.Year]int)
	for _, s := range students {
		counts[s.Year]++
	}
	return counts
}
