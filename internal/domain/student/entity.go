// Package student contains the student record domain model.
// This is the core of the business logic - no external dependencies here.
package student

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/pkg/timeutil"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALIDATION RULES
// ══════════════════════════════════════════════════════════════════════════════

const (
	// MinIDLength is the minimum length of a student ID.
	MinIDLength = 3

	// MinPhoneDigits is the minimum number of digit characters in a phone number.
	MinPhoneDigits = 10

	// MinGPA and MaxGPA bound both the overall GPA and individual grades.
	MinGPA = 0.0
	MaxGPA = 4.0
)

// emailPattern is the simple local@domain.tld shape accepted for emails.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// nonDigits matches everything that is not a decimal digit.
var nonDigits = regexp.MustCompile(`\D`)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrStudentNotFound - no record with the requested ID.
	ErrStudentNotFound = shared.NewDomainError("student", "Find", shared.ErrNotFound, "student not found")

	// ErrStudentAlreadyExists - a record with this ID is already stored.
	ErrStudentAlreadyExists = shared.NewDomainError("student", "Add", shared.ErrAlreadyExists, "student already exists")
)

// invalid builds a validation error whose message names the offending field and rule.
func invalid(message string) error {
	return shared.NewDomainError("student", "Validate", shared.ErrValidation, message)
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student is the central entity of the registry: one student's full record.
// Instances handed out by repositories are disconnected copies; mutations
// must be persisted explicitly through the repository.
type Student struct {
	// ID - unique identifier, normalized to uppercase. Immutable after creation.
	ID string

	// FirstName - given name, normalized to title case.
	FirstName string

	// LastName - family name, normalized to title case.
	LastName string

	// Email - contact email, normalized to lowercase.
	Email string

	// Phone - phone number, stored in its original format.
	Phone string

	// DateOfBirth - ISO calendar date (YYYY-MM-DD).
	DateOfBirth string

	// Address - free text, optional.
	Address string

	// Major - field of study, optional ("Undeclared" in display contexts when empty).
	Major string

	// GPA - overall grade point average in [0.0, 4.0]. Derived from Grades
	// whenever at least one grade is recorded.
	GPA float64

	// EnrollmentDate - ISO date set once at creation.
	EnrollmentDate string

	// Courses - enrolled course names, unique, insertion order preserved.
	Courses []string

	// Grades - course name -> grade in [0.0, 4.0]. Keys are a subset of Courses.
	Grades map[string]float64
}

// Params contains the raw fields for creating a new student.
type Params struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth string
	Address     string
	Major       string
	GPA         float64
}

// New creates a student with validation of every field. Construction is
// atomic: any invalid field yields an error and no entity.
func New(p Params) (*Student, error) {
	id, err := validateID(p.ID)
	if err != nil {
		return nil, err
	}

	firstName, err := validateName(p.FirstName, "first name")
	if err != nil {
		return nil, err
	}

	lastName, err := validateName(p.LastName, "last name")
	if err != nil {
		return nil, err
	}

	email, err := validateEmail(p.Email)
	if err != nil {
		return nil, err
	}

	phone, err := validatePhone(p.Phone)
	if err != nil {
		return nil, err
	}

	dob, err := validateDate(p.DateOfBirth)
	if err != nil {
		return nil, err
	}

	gpa, err := validateGPA(p.GPA)
	if err != nil {
		return nil, err
	}

	return &Student{
		ID:             id,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		Phone:          phone,
		DateOfBirth:    dob,
		Address:        strings.TrimSpace(p.Address),
		Major:          strings.TrimSpace(p.Major),
		GPA:            gpa,
		EnrollmentDate: timeutil.Today(),
		Courses:        make([]string, 0),
		Grades:         make(map[string]float64),
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Field validators
// ─────────────────────────────────────────────────────────────────────────────

// NormalizeID returns the canonical (uppercase, trimmed) form of a student ID.
// Lookups compare IDs in this form, which makes them case-insensitive.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func validateID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", invalid("student ID must be a non-empty string")
	}
	if len(id) < MinIDLength {
		return "", invalid(fmt.Sprintf("student ID must be at least %d characters long", MinIDLength))
	}
	return strings.ToUpper(id), nil
}

func validateName(name, field string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", invalid(field + " cannot be empty or just whitespace")
	}
	return titleCase(strings.TrimSpace(name)), nil
}

func validateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", invalid("email must be a non-empty string")
	}
	if !emailPattern.MatchString(email) {
		return "", invalid("invalid email format")
	}
	return strings.ToLower(email), nil
}

func validatePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", invalid("phone number must be a non-empty string")
	}
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) < MinPhoneDigits {
		return "", invalid(fmt.Sprintf("phone number must contain at least %d digits", MinPhoneDigits))
	}
	return phone, nil
}

func validateDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return "", invalid("date must be a non-empty string")
	}
	if !timeutil.IsValidISODate(date) {
		return "", invalid("date must be in YYYY-MM-DD format")
	}
	return date, nil
}

func validateGPA(gpa float64) (float64, error) {
	if gpa < MinGPA || gpa > MaxGPA {
		return 0, invalid(fmt.Sprintf("GPA must be between %.1f and %.1f", MinGPA, MaxGPA))
	}
	return gpa, nil
}

// titleCase uppercases the first letter of every word and lowercases the
// rest, treating any non-letter as a word boundary ("mary-jane" -> "Mary-Jane").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS (Business Logic)
// ══════════════════════════════════════════════════════════════════════════════

// FullName returns "First Last".
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// DisplayMajor returns the major, or "Undeclared" when none is set.
func (s *Student) DisplayMajor() string {
	if s.Major == "" {
		return "Undeclared"
	}
	return s.Major
}

// Age returns the student's age in full years as of today.
func (s *Student) Age() int {
	return s.AgeAt(timeutil.Now())
}

// AgeAt returns the age as of the given moment, applying the
// "not yet had this year's birthday" rule.
func (s *Student) AgeAt(now time.Time) int {
	birth, err := timeutil.ParseISODate(s.DateOfBirth)
	if err != nil {
		return 0
	}
	return timeutil.AgeAt(birth, now)
}

// AddCourse appends a course to the enrollment list. Returns false without
// mutating when the course is already present.
func (s *Student) AddCourse(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, invalid("course name must be a non-empty string")
	}
	for _, c := range s.Courses {
		if c == name {
			return false, nil
		}
	}
	s.Courses = append(s.Courses, name)
	return true, nil
}

// RemoveCourse removes a course and its grade, if any. The GPA is
// recomputed after a graded course is dropped, so it always reflects
// the remaining grades. Returns whether anything was removed.
func (s *Student) RemoveCourse(name string) bool {
	name = strings.TrimSpace(name)
	for i, c := range s.Courses {
		if c == name {
			s.Courses = append(s.Courses[:i], s.Courses[i+1:]...)
			if _, graded := s.Grades[name]; graded {
				delete(s.Grades, name)
				s.recomputeGPA()
			}
			return true
		}
	}
	return false
}

// HasCourse reports whether the student is enrolled in the course.
func (s *Student) HasCourse(name string) bool {
	for _, c := range s.Courses {
		if c == name {
			return true
		}
	}
	return false
}

// RecordGrade sets the grade for an enrolled course and recomputes the GPA.
func (s *Student) RecordGrade(course string, grade float64) error {
	course = strings.TrimSpace(course)
	if !s.HasCourse(course) {
		return invalid(fmt.Sprintf("course '%s' not found in student's course list", course))
	}
	if grade < MinGPA || grade > MaxGPA {
		return invalid(fmt.Sprintf("grade must be between %.1f and %.1f", MinGPA, MaxGPA))
	}
	s.Grades[course] = grade
	s.recomputeGPA()
	return nil
}

// recomputeGPA derives the GPA from recorded grades: the arithmetic mean
// when any grade exists, 0.0 otherwise.
func (s *Student) recomputeGPA() {
	if len(s.Grades) == 0 {
		s.GPA = 0.0
		return
	}
	var total float64
	for _, g := range s.Grades {
		total += g
	}
	s.GPA = total / float64(len(s.Grades))
}

// Update contains the optional fields accepted by ApplyUpdate.
// A nil pointer leaves the current value untouched. The student ID is
// deliberately absent: it never changes after creation.
type Update struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Major     *string
}

// ApplyUpdate overwrites the supplied fields, re-validating names, email
// and phone. All fields are validated before any assignment, so a failed
// update leaves the entity unchanged.
func (s *Student) ApplyUpdate(u Update) error {
	var (
		firstName, lastName, email, phone string
		err                               error
	)

	if u.FirstName != nil {
		if firstName, err = validateName(*u.FirstName, "first name"); err != nil {
			return err
		}
	}
	if u.LastName != nil {
		if lastName, err = validateName(*u.LastName, "last name"); err != nil {
			return err
		}
	}
	if u.Email != nil {
		if email, err = validateEmail(*u.Email); err != nil {
			return err
		}
	}
	if u.Phone != nil {
		if phone, err = validatePhone(*u.Phone); err != nil {
			return err
		}
	}

	if u.FirstName != nil {
		s.FirstName = firstName
	}
	if u.LastName != nil {
		s.LastName = lastName
	}
	if u.Email != nil {
		s.Email = email
	}
	if u.Phone != nil {
		s.Phone = phone
	}
	if u.Address != nil {
		s.Address = strings.TrimSpace(*u.Address)
	}
	if u.Major != nil {
		s.Major = strings.TrimSpace(*u.Major)
	}
	return nil
}

// String returns a short representation for logging.
func (s *Student) String() string {
	return fmt.Sprintf("Student{ID: %s, Name: %s, Major: %s, GPA: %.2f}",
		s.ID, s.FullName(), s.DisplayMajor(), s.GPA)
}

// Clone creates a deep copy of the student.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}

	clone := *s
	clone.Courses = make([]string, len(s.Courses))
	copy(clone.Courses, s.Courses)
	clone.Grades = make(map[string]float64, len(s.Grades))
	for k, v := range s.Grades {
		clone.Grades[k] = v
	}
	return &clone
}
