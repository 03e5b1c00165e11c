package models

import (
	"fmt"
	"time"
)

// Year is the year-level of a cohort
type Year string

const (
	FirstYear  Year = "FY"
	SecondYear Year = "SY"
	ThirdYear  Year = "TY"
)

// Stream is an academic program track
type Stream string

const (
	StreamIT   Stream = "BSCIT"
	StreamDS   Stream = "BSCDS"
	StreamCA   Stream = "BSCCA"
	StreamAIML Stream = "BSCAIML"
)

// Division is a sub-section within a year/stream cohort
type Division string

const (
	DivisionA Division = "A"
	DivisionB Division = "B"
	DivisionC Division = "C"
)

var (
	Years     = []Year{FirstYear, SecondYear, ThirdYear}
	Streams   = []Stream{StreamIT, StreamDS, StreamCA, StreamAIML}
	Divisions = []Division{DivisionA, DivisionB, DivisionC}
)

var yearCodes = map[Year]string{FirstYear: "0", SecondYear: "1", ThirdYear: "2"}

var streamCodes = map[Stream]string{StreamIT: "1", StreamDS: "2", StreamCA: "3", StreamAIML: "4"}

// Code returns the single-digit year-level code used in student identifiers
func (y Year) Code() (string, bool) {
	c, ok := yearCodes[y]
	return c, ok
}

// Code returns the single-digit stream code used in student identifiers
func (s Stream) Code() (string, bool) {
	c, ok := streamCodes[s]
	return c, ok
}

// Student represents a generated student
type Student struct {
	ID       string   `json:"id"`       // e.g. STU01001
	Name     string   `json:"name"`     // Unique within one generation run
	RollNo   int      `json:"rollNo"`   // 1-based within the (year, stream) group
	Year     Year     `json:"year"`     // FY, SY or TY
	Stream   Stream   `json:"stream"`   // BSCIT, BSCDS, ...
	Division Division `json:"division"` // A, B or C
}

// CohortID returns the ID of the cohort (year, stream, division) the student belongs to
func (s Student) CohortID() string {
	return CohortIDFor(s.Year, s.Stream, s.Division)
}

// Cohort represents a (year, stream, division) section
type Cohort struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Year         Year     `json:"year"`
	Stream       Stream   `json:"stream"`
	Division     Division `json:"division"`
	StudentCount int64    `json:"studentCount"` // filled on reads from the cache
}

func CohortIDFor(y Year, s Stream, d Division) string {
	return fmt.Sprintf("%s_%s_%s", y, s, d)
}

// NewCohort builds the cohort a student with these attributes would belong to
func NewCohort(y Year, s Stream, d Division) Cohort {
	return Cohort{
		ID:       CohortIDFor(y, s, d),
		Name:     fmt.Sprintf("%s %s Division %s", y, s, d),
		Year:     y,
		Stream:   s,
		Division: d,
	}
}

// Subject is one subject taught to a stream and the teacher who takes it
type Subject struct {
	Name        string `json:"subject"`
	TeacherID   string `json:"teacherId"`
	TeacherName string `json:"teacherName"`
}

// SubjectAssignment maps each stream to the ordered subjects it is taught.
// Order lists the streams in iteration order.
type SubjectAssignment struct {
	Order    []Stream
	ByStream map[Stream][]Subject
}

// Period is one reporting month
type Period struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// Status classifies an attendance record against the defaulter threshold
type Status string

const (
	StatusDefaulter Status = "Defaulter"
	StatusRegular   Status = "Regular"
)

// AttendanceRecord is one student's attendance for one subject in one period.
// Student and teacher fields are copied at generation time.
type AttendanceRecord struct {
	StudentID   string   `json:"studentId"`
	Name        string   `json:"name"`
	RollNo      int      `json:"rollNo"`
	Year        Year     `json:"year"`
	Stream      Stream   `json:"stream"`
	Division    Division `json:"division"`
	Subject     string   `json:"subject"`
	TeacherID   string   `json:"teacherId"`
	TeacherName string   `json:"teacherName"`
	Period      Period   `json:"period"`
	Held        int      `json:"classesHeld"`
	Attended    int      `json:"classesAttended"`
	Missed      int      `json:"classesMissed"`
	Percentage  float64  `json:"attendancePercentage"`
	Status      Status   `json:"status"`
}

// GroupCount is the number of stored students in one (year, stream) group
type GroupCount struct {
	Year   Year   `json:"year"`
	Stream Stream `json:"stream"`
	Count  int    `json:"count"`
}
