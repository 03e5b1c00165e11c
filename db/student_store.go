package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"defaulter-fixtures-go/models"
)

const createStudentsTable = `CREATE TABLE IF NOT EXISTS student_details_db (
	student_id   VARCHAR(16) PRIMARY KEY,
	student_name VARCHAR(100) NOT NULL,
	roll_no      INTEGER NOT NULL,
	year         VARCHAR(4) NOT NULL,
	stream       VARCHAR(16) NOT NULL,
	division     VARCHAR(4) NOT NULL
)`

const insertStudent = `INSERT INTO student_details_db (student_id, student_name, roll_no, year, stream, division)
	VALUES ($1, $2, $3, $4, $5, $6)`

const studentDistribution = `SELECT year, stream, COUNT(*) AS count
	FROM student_details_db
	GROUP BY year, stream
	ORDER BY year, stream`

// StudentStore persists roster rows to student_details_db
type StudentStore struct {
	db *DB
}

func NewStudentStore(db *DB) *StudentStore {
	return &StudentStore{db: db}
}

// EnsureSchema creates student_details_db if it does not exist
func (s *StudentStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Pool().Exec(ctx, createStudentsTable); err != nil {
		return fmt.Errorf("failed to create student_details_db: %w", err)
	}
	return nil
}

// InsertStudents inserts every student in one transaction. Any failed row rolls back the batch.
func (s *StudentStore) InsertStudents(ctx context.Context, students []models.Student) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context cancelled: %w", err)
	}
	if len(students) == 0 {
		return 0, nil
	}

	tx, err := s.db.Pool().Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, st := range students {
		batch.Queue(insertStudent, st.ID, st.Name, st.RollNo, string(st.Year), string(st.Stream), string(st.Division))
	}

	br := tx.SendBatch(ctx, batch)
	for i := range students {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return 0, fmt.Errorf("failed to insert student %s (row %d): %w", students[i].ID, i+1, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish insert batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(students), nil
}

// Distribution counts stored students per (year, stream)
func (s *StudentStore) Distribution(ctx context.Context) ([]models.GroupCount, error) {
	rows, err := s.db.Pool().Query(ctx, studentDistribution)
	if err != nil {
		return nil, fmt.Errorf("failed to query distribution: %w", err)
	}
	defer rows.Close()

	var counts []models.GroupCount
	for rows.Next() {
		var (
			gc           models.GroupCount
			year, stream string
		)
		if err := rows.Scan(&year, &stream, &gc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan distribution row: %w", err)
		}
		gc.Year, gc.Stream = models.Year(year), models.Stream(stream)
		counts = append(counts, gc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read distribution: %w", err)
	}
	return counts, nil
}
