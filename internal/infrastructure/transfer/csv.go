// Package transfer implements the CSV interchange format for student
// records: a flat tabular view of the collection for spreadsheets and
// bulk loading. Grades do not survive the round trip; CSV carries the
// derived GPA and the course list only.
package transfer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// CSV EXPORT / IMPORT
// ══════════════════════════════════════════════════════════════════════════════

// Columns is the fixed export column order. Import accepts any column
// order and ignores unknown columns; the names are the contract.
var Columns = []string{
	"student_id",
	"first_name",
	"last_name",
	"email",
	"phone",
	"date_of_birth",
	"address",
	"major",
	"gpa",
	"enrollment_date",
	"courses",
	"age",
}

// courseSeparator joins the course list into one CSV cell.
const courseSeparator = ","

// WriteStudents writes the collection as CSV with the fixed column
// order. Courses are comma-joined into a single cell, age is the
// computed value at export time, grades are omitted.
func WriteStudents(w io.Writer, students []*student.Student) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return shared.WrapError("transfer", "Export", shared.ErrPersistence,
			"failed to write header", err)
	}

	now := timeutil.Now()
	for _, s := range students {
		row := []string{
			s.ID,
			s.FirstName,
			s.LastName,
			s.Email,
			s.Phone,
			s.DateOfBirth,
			s.Address,
			s.Major,
			strconv.FormatFloat(s.GPA, 'f', 2, 64),
			s.EnrollmentDate,
			strings.Join(s.Courses, courseSeparator),
			strconv.Itoa(s.AgeAt(now)),
		}
		if err := cw.Write(row); err != nil {
			return shared.WrapError("transfer", "Export", shared.ErrPersistence,
				"failed to write row", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return shared.WrapError("transfer", "Export", shared.ErrPersistence,
			"failed to flush csv", err)
	}
	return nil
}

// Row is one parsed import row. Err carries a cell-level parse problem
// (e.g. non-numeric gpa); callers decide whether a bad row aborts the
// whole import or just that row.
type Row struct {
	// Line - номер строки файла (заголовок - строка 1).
	Line    int
	Params  student.Params
	Courses []string
	Err     error
}

// ReadRows parses a CSV stream into import rows. Missing optional
// columns fall back to the entity defaults; the derived age column is
// ignored on import. A header-level problem is a hard error, a
// cell-level problem is recorded on its row.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows surface as cell-level errors

	header, err := cr.Read()
	if err == io.EOF {
		return []Row{}, nil
	}
	if err != nil {
		return nil, shared.WrapError("transfer", "Import", shared.ErrInvalidFormat,
			"failed to read csv header", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := index["student_id"]; !ok {
		return nil, shared.NewDomainError("transfer", "Import", shared.ErrInvalidFormat,
			"csv header is missing the student_id column")
	}

	cell := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]Row, 0)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rows = append(rows, Row{Line: line, Err: err})
			continue
		}

		row := Row{
			Line: line,
			Params: student.Params{
				ID:          cell(record, "student_id"),
				FirstName:   cell(record, "first_name"),
				LastName:    cell(record, "last_name"),
				Email:       cell(record, "email"),
				Phone:       cell(record, "phone"),
				DateOfBirth: cell(record, "date_of_birth"),
				Address:     cell(record, "address"),
				Major:       cell(record, "major"),
			},
		}

		if raw := cell(record, "gpa"); raw != "" {
			gpa, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				row.Err = fmt.Errorf("invalid gpa value %q", raw)
				rows = append(rows, row)
				continue
			}
			row.Params.GPA = gpa
		}

		if raw := cell(record, "courses"); raw != "" {
			for _, c := range strings.Split(raw, courseSeparator) {
				if c = strings.TrimSpace(c); c != "" {
					row.Courses = append(row.Courses, c)
				}
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}
