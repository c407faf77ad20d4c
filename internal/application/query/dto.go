// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// SHARED DTO
// ══════════════════════════════════════════════════════════════════════════════

// StudentDTO - представление студента для слоя отображения (Data Transfer Object).
type StudentDTO struct {
	// StudentID - уникальный идентификатор.
	StudentID string `json:"student_id"`

	// FullName - полное имя ("First Last").
	FullName string `json:"full_name"`

	// Email - контактный email.
	Email string `json:"email"`

	// Phone - номер телефона.
	Phone string `json:"phone"`

	// DateOfBirth - дата рождения (YYYY-MM-DD).
	DateOfBirth string `json:"date_of_birth"`

	// Age - возраст в полных годах (вычисляется).
	Age int `json:"age"`

	// Address - адрес (может быть пустым).
	Address string `json:"address"`

	// Major - специальность ("Undeclared", если не указана).
	Major string `json:"major"`

	// GPA - средний балл.
	GPA float64 `json:"gpa"`

	// EnrollmentDate - дата зачисления (YYYY-MM-DD).
	EnrollmentDate string `json:"enrollment_date"`

	// Courses - список курсов в порядке записи.
	Courses []string `json:"courses"`

	// Grades - оценки по курсам.
	Grades map[string]float64 `json:"grades"`
}

// NewStudentDTO строит DTO из доменной сущности.
func NewStudentDTO(s *student.Student) StudentDTO {
	courses := make([]string, len(s.Courses))
	copy(courses, s.Courses)

	grades := make(map[string]float64, len(s.Grades))
	for k, v := range s.Grades {
		grades[k] = v
	}

	return StudentDTO{
		StudentID:      s.ID,
		FullName:       s.FullName(),
		Email:          s.Email,
		Phone:          s.Phone,
		DateOfBirth:    s.DateOfBirth,
		Age:            s.AgeAt(timeutil.Now()),
		Address:        s.Address,
		Major:          s.DisplayMajor(),
		GPA:            s.GPA,
		EnrollmentDate: s.EnrollmentDate,
		Courses:        courses,
		Grades:         grades,
	}
}
