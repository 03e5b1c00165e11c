// Package loader moves a generated roster into the student store.
package loader

import (
	"context"
	"fmt"
	"io"
	"os"

	"defaulter-fixtures-go/internal/logger"
	"defaulter-fixtures-go/models"
	"defaulter-fixtures-go/roster"
)

// StudentWriter is the part of the student store the loader needs
type StudentWriter interface {
	InsertStudents(ctx context.Context, students []models.Student) (int, error)
	Distribution(ctx context.Context) ([]models.GroupCount, error)
}

// Result reports what a load did
type Result struct {
	Inserted     int
	Distribution []models.GroupCount
}

// Load inserts students as one batch and then reads the per-group distribution back.
// The distribution is for display only; it is not checked against the input.
func Load(ctx context.Context, store StudentWriter, students []models.Student) (*Result, error) {
	inserted, err := store.InsertStudents(ctx, students)
	if err != nil {
		return nil, fmt.Errorf("failed to insert students: %w", err)
	}
	logger.LogInfo("Inserted students", "count", inserted)

	dist, err := store.Distribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read distribution: %w", err)
	}

	return &Result{Inserted: inserted, Distribution: dist}, nil
}

// LoadFile reads a roster CSV from path and loads it
func LoadFile(ctx context.Context, store StudentWriter, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster %s: %w", path, err)
	}
	defer f.Close()

	students, err := roster.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %s: %w", path, err)
	}
	logger.LogInfo("Read roster", "path", path, "students", len(students))

	return Load(ctx, store, students)
}

// Print writes the load summary in the loader's console format
func (r *Result) Print(w io.Writer) {
	fmt.Fprintf(w, "Successfully inserted %d students\n", r.Inserted)
	fmt.Fprintln(w, "\nDistribution:")
	for _, gc := range r.Distribution {
		fmt.Fprintf(w, "  %s %s: %d students\n", gc.Year, gc.Stream, gc.Count)
	}
}
