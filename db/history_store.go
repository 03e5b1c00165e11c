package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"defaulter-fixtures-go/models"
)

const createHistoryTable = `CREATE TABLE IF NOT EXISTS attendance_backup (
	id           UUID PRIMARY KEY,
	filename     TEXT NOT NULL,
	session_id   TEXT NOT NULL,
	teacher_id   VARCHAR(16) NOT NULL,
	subject      TEXT NOT NULL,
	year         VARCHAR(4) NOT NULL,
	stream       VARCHAR(16) NOT NULL,
	division     VARCHAR(4) NOT NULL,
	started_at   TIMESTAMPTZ NOT NULL,
	records      JSONB NOT NULL,
	file_content BYTEA NOT NULL,
	saved_at     TIMESTAMPTZ NOT NULL
)`

const insertHistory = `INSERT INTO attendance_backup
	(id, filename, session_id, teacher_id, subject, year, stream, division, started_at, records, file_content, saved_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// HistoryRecord is the per-student summary kept in attendance_backup.records
type HistoryRecord struct {
	StudentID            string  `json:"studentId"`
	Name                 string  `json:"name"`
	RollNo               int     `json:"rollNo"`
	Status               string  `json:"status"` // P when at or above the threshold, A otherwise
	AttendancePercentage float64 `json:"attendancePercentage"`
}

// SheetHistory is one imported attendance sheet
type SheetHistory struct {
	ID        uuid.UUID
	Filename  string
	SessionID string
	TeacherID string
	Subject   string
	Year      models.Year
	Stream    models.Stream
	Division  models.Division
	StartedAt time.Time
	Records   []HistoryRecord
	Content   []byte
	SavedAt   time.Time
}

// NewSheetHistory builds the history row for a sheet. Year, division and teacher
// come from the first record; the session is dated the 15th of the period and saved on the 20th.
func NewSheetHistory(filename string, stream models.Stream, subject string, period models.Period, records []models.AttendanceRecord, content []byte, threshold float64) SheetHistory {
	h := SheetHistory{
		ID:        uuid.New(),
		Filename:  filename,
		SessionID: fmt.Sprintf("SESSION_%d_%d_%s_%s", period.Year, int(period.Month), stream, strings.ReplaceAll(subject, " ", "_")),
		Subject:   subject,
		Stream:    stream,
		Division:  models.DivisionA,
		StartedAt: time.Date(period.Year, period.Month, 15, 10, 0, 0, 0, time.UTC),
		SavedAt:   time.Date(period.Year, period.Month, 20, 14, 30, 0, 0, time.UTC),
		Content:   content,
		Records:   make([]HistoryRecord, 0, len(records)),
	}

	if len(records) > 0 {
		h.Year = records[0].Year
		h.Division = records[0].Division
		h.TeacherID = records[0].TeacherID
	}

	for _, r := range records {
		status := "A"
		if r.Percentage >= threshold {
			status = "P"
		}
		h.Records = append(h.Records, HistoryRecord{
			StudentID:            r.StudentID,
			Name:                 r.Name,
			RollNo:               r.RollNo,
			Status:               status,
			AttendancePercentage: r.Percentage,
		})
	}
	return h
}

// HistoryStore persists imported attendance sheets to attendance_backup
type HistoryStore struct {
	db *DB
}

func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// EnsureSchema creates attendance_backup if it does not exist
func (s *HistoryStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Pool().Exec(ctx, createHistoryTable); err != nil {
		return fmt.Errorf("failed to create attendance_backup: %w", err)
	}
	return nil
}

// SaveSheet inserts one sheet history row
func (s *HistoryStore) SaveSheet(ctx context.Context, h SheetHistory) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	records, err := json.Marshal(h.Records)
	if err != nil {
		return fmt.Errorf("failed to encode records for %s: %w", h.Filename, err)
	}

	_, err = s.db.Pool().Exec(ctx, insertHistory,
		h.ID, h.Filename, h.SessionID, h.TeacherID, h.Subject,
		string(h.Year), string(h.Stream), string(h.Division),
		h.StartedAt, records, h.Content, h.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", h.Filename, err)
	}
	return nil
}

// Count returns the number of stored sheets
func (s *HistoryStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.Pool().QueryRow(ctx, "SELECT COUNT(*) FROM attendance_backup").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count attendance_backup: %w", err)
	}
	return n, nil
}
