// Package sqlite implements the student repository over an embedded
// SQLite database. It is an alternative to the JSON file backend for
// collections too large to rewrite wholesale on every mutation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SQLITE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

const schema = `
CREATE TABLE IF NOT EXISTS students (
	student_id      TEXT PRIMARY KEY,
	first_name      TEXT NOT NULL,
	last_name       TEXT NOT NULL,
	email           TEXT NOT NULL,
	phone           TEXT NOT NULL,
	date_of_birth   TEXT NOT NULL,
	address         TEXT NOT NULL DEFAULT '',
	major           TEXT NOT NULL DEFAULT '',
	gpa             REAL NOT NULL DEFAULT 0,
	enrollment_date TEXT NOT NULL,
	courses         TEXT NOT NULL DEFAULT '[]',
	grades          TEXT NOT NULL DEFAULT '{}'
);
`

const recordColumns = `student_id, first_name, last_name, email, phone, date_of_birth,
	       address, major, gpa, enrollment_date, courses, grades`

// Store implements student.Repository for SQLite. IDs are stored in
// their normalized (uppercase) form, so primary-key equality gives the
// case-insensitive lookup the repository contract requires. GetAll
// orders by rowid, which preserves insertion order.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string, log *logger.Logger) (*Store, error) {
	if path == "" {
		return nil, shared.NewDomainError("storage", "Open", shared.ErrInvalidInput,
			"database path must not be empty")
	}
	if log == nil {
		log = logger.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, shared.WrapError("storage", "Open", shared.ErrPersistence,
			"failed to open database", err)
	}
	// The driver is in-process; a single connection avoids SQLITE_BUSY
	// on concurrent statement execution.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, shared.WrapError("storage", "Open", shared.ErrPersistence,
			"failed to ensure schema", err)
	}

	return &Store{
		db:  db,
		log: log.With(logger.Component("sqlite"), logger.Path(path)),
	}, nil
}

// Close releases the underlying database handle.
func (st *Store) Close() error {
	return st.db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Repository implementation
// ─────────────────────────────────────────────────────────────────────────────

// Add inserts a new student row.
func (st *Store) Add(ctx context.Context, s *student.Student) error {
	r := s.ToRecord()
	courses, grades, err := encodeCollections(r)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO students (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, recordColumns)
	_, err = st.db.ExecContext(ctx, query,
		student.NormalizeID(r.StudentID),
		r.FirstName,
		r.LastName,
		r.Email,
		r.Phone,
		r.DateOfBirth,
		r.Address,
		r.Major,
		r.GPA,
		r.EnrollmentDate,
		courses,
		grades,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return student.ErrStudentAlreadyExists
		}
		return shared.WrapError("storage", "Add", shared.ErrPersistence,
			"failed to insert student", err)
	}
	return nil
}

// GetByID returns the student with the given ID.
func (st *Store) GetByID(ctx context.Context, id string) (*student.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE student_id = ?`, recordColumns)
	row := st.db.QueryRowContext(ctx, query, student.NormalizeID(id))
	return scanStudent(row)
}

// Update replaces every field of an existing row.
func (st *Store) Update(ctx context.Context, s *student.Student) error {
	r := s.ToRecord()
	courses, grades, err := encodeCollections(r)
	if err != nil {
		return err
	}

	result, err := st.db.ExecContext(ctx, `
		UPDATE students SET
			first_name = ?, last_name = ?, email = ?, phone = ?,
			date_of_birth = ?, address = ?, major = ?, gpa = ?,
			enrollment_date = ?, courses = ?, grades = ?
		WHERE student_id = ?`,
		r.FirstName,
		r.LastName,
		r.Email,
		r.Phone,
		r.DateOfBirth,
		r.Address,
		r.Major,
		r.GPA,
		r.EnrollmentDate,
		courses,
		grades,
		student.NormalizeID(r.StudentID),
	)
	if err != nil {
		return shared.WrapError("storage", "Update", shared.ErrPersistence,
			"failed to update student", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return shared.WrapError("storage", "Update", shared.ErrPersistence,
			"failed to read update result", err)
	}
	if affected == 0 {
		return student.ErrStudentNotFound
	}
	return nil
}

// Delete removes the row with the given ID.
func (st *Store) Delete(ctx context.Context, id string) error {
	result, err := st.db.ExecContext(ctx,
		`DELETE FROM students WHERE student_id = ?`,
		student.NormalizeID(id),
	)
	if err != nil {
		return shared.WrapError("storage", "Delete", shared.ErrPersistence,
			"failed to delete student", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return shared.WrapError("storage", "Delete", shared.ErrPersistence,
			"failed to read delete result", err)
	}
	if affected == 0 {
		return student.ErrStudentNotFound
	}
	return nil
}

// GetAll returns every student in insertion order.
func (st *Store) GetAll(ctx context.Context) ([]*student.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students ORDER BY rowid`, recordColumns)
	rows, err := st.db.QueryContext(ctx, query)
	if err != nil {
		return nil, shared.WrapError("storage", "GetAll", shared.ErrPersistence,
			"failed to query students", err)
	}
	defer rows.Close()

	students := make([]*student.Student, 0)
	for rows.Next() {
		s, err := scanStudentRows(rows)
		if err != nil {
			st.log.Warn("skipping invalid row", logger.Err(err))
			continue
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.WrapError("storage", "GetAll", shared.ErrPersistence,
			"rows iteration error", err)
	}
	return students, nil
}

// Count returns the number of stored students.
func (st *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := st.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&count)
	if err != nil {
		return 0, shared.WrapError("storage", "Count", shared.ErrPersistence,
			"failed to count students", err)
	}
	return count, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Row conversion
// ─────────────────────────────────────────────────────────────────────────────

func encodeCollections(r student.Record) (courses, grades []byte, err error) {
	courses, err = json.Marshal(r.Courses)
	if err != nil {
		return nil, nil, shared.WrapError("storage", "Encode", shared.ErrPersistence,
			"failed to encode courses", err)
	}
	grades, err = json.Marshal(r.Grades)
	if err != nil {
		return nil, nil, shared.WrapError("storage", "Encode", shared.ErrPersistence,
			"failed to encode grades", err)
	}
	return courses, grades, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (student.Record, error) {
	var r student.Record
	var courses, grades []byte

	err := row.Scan(
		&r.StudentID,
		&r.FirstName,
		&r.LastName,
		&r.Email,
		&r.Phone,
		&r.DateOfBirth,
		&r.Address,
		&r.Major,
		&r.GPA,
		&r.EnrollmentDate,
		&courses,
		&grades,
	)
	if err != nil {
		return r, err
	}

	if err := json.Unmarshal(courses, &r.Courses); err != nil {
		return r, fmt.Errorf("decode courses: %w", err)
	}
	if err := json.Unmarshal(grades, &r.Grades); err != nil {
		return r, fmt.Errorf("decode grades: %w", err)
	}
	return r, nil
}

func scanStudent(row *sql.Row) (*student.Student, error) {
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, student.ErrStudentNotFound
	}
	if err != nil {
		return nil, shared.WrapError("storage", "Get", shared.ErrPersistence,
			"failed to scan student", err)
	}
	return student.FromRecord(r)
}

func scanStudentRows(rows *sql.Rows) (*student.Student, error) {
	r, err := scanRecord(rows)
	if err != nil {
		return nil, err
	}
	return student.FromRecord(r)
}

// isUniqueViolation detects a primary-key collision. The modernc driver
// surfaces SQLite errors as formatted strings, so this matches on the
// constraint message rather than an error code type.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed") && strings.Contains(msg, "students.student_id")
}
