package attendance

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"defaulter-fixtures-go/models"
)

const (
	SheetName     = "Attendance"
	maxColWidth   = 50
	sheetPrefix   = "Attendance"
	sheetFileExt  = ".xlsx"
	defaultSheet1 = "Sheet1"
)

var ErrBadSheetName = errors.New("unrecognised attendance sheet name")

// Columns is the sheet header, in column order
var Columns = []string{
	"Student ID", "Name", "Roll No", "Year", "Stream", "Division",
	"Subject", "Teacher ID", "Teacher Name", "Month", "Calendar Year",
	"Classes Held", "Classes Attended", "Classes Missed", "Attendance Percentage", "Status",
}

// FileName returns Attendance_{STREAM}_{Subject_With_Underscores}_{Month}_{Year}.xlsx
func FileName(stream models.Stream, subject string, period models.Period) string {
	return fmt.Sprintf("%s_%s_%s_%s_%d%s",
		sheetPrefix, stream, strings.ReplaceAll(subject, " ", "_"), period.Month, period.Year, sheetFileExt)
}

// SheetInfo is what a sheet's file name says about its contents
type SheetInfo struct {
	Stream  models.Stream
	Subject string
	Period  models.Period
}

// ParseFileName is the inverse of FileName. Directories in name are ignored.
func ParseFileName(name string) (SheetInfo, error) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, sheetFileExt) {
		return SheetInfo{}, fmt.Errorf("%w: %s", ErrBadSheetName, base)
	}
	parts := strings.Split(strings.TrimSuffix(base, sheetFileExt), "_")
	if len(parts) < 5 || parts[0] != sheetPrefix {
		return SheetInfo{}, fmt.Errorf("%w: %s", ErrBadSheetName, base)
	}

	year, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return SheetInfo{}, fmt.Errorf("%w: bad year in %s", ErrBadSheetName, base)
	}
	month, ok := monthByName(parts[len(parts)-2])
	if !ok {
		return SheetInfo{}, fmt.Errorf("%w: bad month in %s", ErrBadSheetName, base)
	}

	return SheetInfo{
		Stream:  models.Stream(parts[1]),
		Subject: strings.Join(parts[2:len(parts)-2], " "),
		Period:  models.Period{Month: month, Year: year},
	}, nil
}

func monthByName(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

func recordRow(r models.AttendanceRecord) []interface{} {
	return []interface{}{
		r.StudentID, r.Name, r.RollNo, string(r.Year), string(r.Stream), string(r.Division),
		r.Subject, r.TeacherID, r.TeacherName, int(r.Period.Month), r.Period.Year,
		r.Held, r.Attended, r.Missed, r.Percentage, string(r.Status),
	}
}

// WriteSheet writes records to w as a single-sheet workbook with sized columns
func WriteSheet(w io.Writer, records []models.AttendanceRecord) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	if err := f.SetSheetName(defaultSheet1, SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	widths := make([]int, len(Columns))
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
		widths[i] = utf8.RuneCountInString(c)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		row := recordRow(rec)
		for j, v := range row {
			if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[j] {
				widths[j] = n
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", rec.StudentID, err)
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, float64(min(width+2, maxColWidth))); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ReadSheet parses the first sheet of a workbook written by WriteSheet.
// Columns are matched by header name; rows without a student ID are skipped.
func ReadSheet(r io.Reader) ([]models.AttendanceRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}
	for _, c := range Columns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("sheet %s is missing column %q", sheet, c)
		}
	}

	records := make([]models.AttendanceRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		p := rowParser{row: row, index: index}
		if p.str("Student ID") == "" {
			continue
		}

		rec := models.AttendanceRecord{
			StudentID:   p.str("Student ID"),
			Name:        p.str("Name"),
			RollNo:      p.asInt("Roll No"),
			Year:        models.Year(p.str("Year")),
			Stream:      models.Stream(p.str("Stream")),
			Division:    models.Division(p.str("Division")),
			Subject:     p.str("Subject"),
			TeacherID:   p.str("Teacher ID"),
			TeacherName: p.str("Teacher Name"),
			Period:      models.Period{Month: time.Month(p.asInt("Month")), Year: p.asInt("Calendar Year")},
			Held:        p.asInt("Classes Held"),
			Attended:    p.asInt("Classes Attended"),
			Missed:      p.asInt("Classes Missed"),
			Percentage:  p.asFloat("Attendance Percentage"),
			Status:      models.Status(p.str("Status")),
		}
		if p.err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, p.err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// rowParser reads typed cells by column name and keeps the first conversion error
type rowParser struct {
	row   []string
	index map[string]int
	err   error
}

func (p *rowParser) str(col string) string {
	i := p.index[col]
	if i >= len(p.row) {
		return ""
	}
	return strings.TrimSpace(p.row[i])
}

func (p *rowParser) asInt(col string) int {
	v := p.str(col)
	n, err := strconv.Atoi(v)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %q: invalid integer %q", col, v)
	}
	return n
}

func (p *rowParser) asFloat(col string) float64 {
	v := p.str(col)
	n, err := strconv.ParseFloat(v, 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %q: invalid number %q", col, v)
	}
	return n
}
