package loader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defaulter-fixtures-go/internal/logger"
	"defaulter-fixtures-go/models"
	"defaulter-fixtures-go/roster"
)

// memStore is an in-memory StudentWriter. failAt > 0 fails that row and stores nothing.
type memStore struct {
	rows   []models.Student
	failAt int
}

func (m *memStore) InsertStudents(_ context.Context, students []models.Student) (int, error) {
	if m.failAt > 0 && m.failAt <= len(students) {
		return 0, errors.New("duplicate key value violates unique constraint")
	}
	m.rows = append(m.rows, students...)
	return len(students), nil
}

func (m *memStore) Distribution(_ context.Context) ([]models.GroupCount, error) {
	counts := map[[2]string]int{}
	for _, s := range m.rows {
		counts[[2]string{string(s.Year), string(s.Stream)}]++
	}
	var out []models.GroupCount
	for k, n := range counts {
		out = append(out, models.GroupCount{Year: models.Year(k[0]), Stream: models.Stream(k[1]), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Stream < out[j].Stream
	})
	return out, nil
}

func init() {
	logger.InitWithWriter(io.Discard, "error")
}

func writeRoster(t *testing.T, students []models.Student) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, roster.WriteCSV(f, students))
	require.NoError(t, f.Close())
	return path
}

func TestLoadFileGeneratedRoster(t *testing.T) {
	students, err := roster.Generate(roster.DefaultOptions(), rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	path := writeRoster(t, students)

	store := &memStore{}
	res, err := LoadFile(context.Background(), store, path)
	require.NoError(t, err)

	assert.Equal(t, 500, res.Inserted)
	assert.Equal(t, students, store.rows)
	require.Len(t, res.Distribution, 12)
	assert.Equal(t, models.GroupCount{Year: models.FirstYear, Stream: models.StreamAIML, Count: 42}, res.Distribution[0])
	assert.Equal(t, 41, res.Distribution[11].Count)

	var out bytes.Buffer
	res.Print(&out)
	assert.Contains(t, out.String(), "Successfully inserted 500 students")
	assert.Contains(t, out.String(), "  TY BSCIT: 41 students")
}

func TestLoadFailureAbortsBatch(t *testing.T) {
	store := &memStore{failAt: 2}
	students := []models.Student{
		{ID: "STU01001", Name: "Aarav Patel", RollNo: 1, Year: models.FirstYear, Stream: models.StreamIT, Division: models.DivisionA},
		{ID: "STU01001", Name: "Aarav Patel", RollNo: 1, Year: models.FirstYear, Stream: models.StreamIT, Division: models.DivisionA},
	}

	res, err := Load(context.Background(), store, students)
	assert.ErrorContains(t, err, "failed to insert students")
	assert.Nil(t, res)
	assert.Empty(t, store.rows)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(context.Background(), &memStore{}, filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "failed to open roster")
}
