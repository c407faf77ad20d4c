package student

import (
	"fmt"

	"github.com/alem-hub/student-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SERIALIZATION: RECORD
// ══════════════════════════════════════════════════════════════════════════════

// Record is the flat wire representation of a student. It is the exact
// shape stored in the JSON collection file and exchanged with the CSV
// layer. Field names follow the persisted format and never change.
type Record struct {
	StudentID      string             `json:"student_id"`
	FirstName      string             `json:"first_name"`
	LastName       string             `json:"last_name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	DateOfBirth    string             `json:"date_of_birth"`
	Address        string             `json:"address"`
	Major          string             `json:"major"`
	GPA            float64            `json:"gpa"`
	EnrollmentDate string             `json:"enrollment_date"`
	Courses        []string           `json:"courses"`
	Grades         map[string]float64 `json:"grades"`
}

// ToRecord converts the entity into its wire representation.
// The returned record owns its slices and maps.
func (s *Student) ToRecord() Record {
	courses := make([]string, len(s.Courses))
	copy(courses, s.Courses)

	grades := make(map[string]float64, len(s.Grades))
	for k, v := range s.Grades {
		grades[k] = v
	}

	return Record{
		StudentID:      s.ID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		Phone:          s.Phone,
		DateOfBirth:    s.DateOfBirth,
		Address:        s.Address,
		Major:          s.Major,
		GPA:            s.GPA,
		EnrollmentDate: s.EnrollmentDate,
		Courses:        courses,
		Grades:         grades,
	}
}

// FromRecord reconstructs an entity from its wire representation,
// re-running full field validation. Records written by older or
// foreign tools do not get a free pass: an invalid record yields an
// error so the storage layer can skip it.
func FromRecord(r Record) (*Student, error) {
	s, err := New(Params{
		ID:          r.StudentID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: r.DateOfBirth,
		Address:     r.Address,
		Major:       r.Major,
		GPA:         r.GPA,
	})
	if err != nil {
		return nil, err
	}

	// Enrollment date is set by New to today; restore the stored one.
	if r.EnrollmentDate != "" {
		date, err := validateDate(r.EnrollmentDate)
		if err != nil {
			return nil, shared.NewDomainError("student", "FromRecord", shared.ErrValidation,
				"enrollment date must be in YYYY-MM-DD format")
		}
		s.EnrollmentDate = date
	}

	for _, c := range r.Courses {
		if _, err := s.AddCourse(c); err != nil {
			return nil, err
		}
	}

	for course, grade := range r.Grades {
		if !s.HasCourse(course) {
			return nil, shared.NewDomainError("student", "FromRecord", shared.ErrValidation,
				fmt.Sprintf("grade recorded for unknown course '%s'", course))
		}
		if err := s.RecordGrade(course, grade); err != nil {
			return nil, err
		}
	}

	// Without grades the GPA is whatever was stored (already range-checked
	// by New); with grades it has been recomputed and the stored value is
	// ignored as derived.
	return s, nil
}
