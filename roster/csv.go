package roster

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"defaulter-fixtures-go/models"
)

// Header is the roster CSV header, in column order
var Header = []string{"Student_ID", "Name", "Roll_No", "Year", "Stream", "Division"}

// WriteCSV writes the roster with a header row and every field quoted.
// encoding/csv only quotes when needed, so quoting is done here.
func WriteCSV(w io.Writer, students []models.Student) error {
	bw := bufio.NewWriter(w)

	if err := writeQuotedRow(bw, Header); err != nil {
		return err
	}
	for _, s := range students {
		row := []string{s.ID, s.Name, strconv.Itoa(s.RollNo), string(s.Year), string(s.Stream), string(s.Division)}
		if err := writeQuotedRow(bw, row); err != nil {
			return fmt.Errorf("failed to write student %s: %w", s.ID, err)
		}
	}

	return bw.Flush()
}

func writeQuotedRow(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}

// ReadCSV reads a roster written by WriteCSV (or any CSV with the same header names, in any order)
func ReadCSV(r io.Reader) ([]models.Student, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("roster csv is empty")
		}
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = i
	}
	for _, name := range Header {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("roster csv is missing column %q", name)
		}
	}

	var students []models.Student
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster line %d: %w", line, err)
		}

		roll, err := strconv.Atoi(row[index["Roll_No"]])
		if err != nil {
			return nil, fmt.Errorf("roster line %d: invalid roll number %q", line, row[index["Roll_No"]])
		}

		students = append(students, models.Student{
			ID:       row[index["Student_ID"]],
			Name:     row[index["Name"]],
			RollNo:   roll,
			Year:     models.Year(row[index["Year"]]),
			Stream:   models.Stream(row[index["Stream"]]),
			Division: models.Division(row[index["Division"]]),
		})
	}

	return students, nil
}
