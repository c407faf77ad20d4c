package student

import (
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// SEARCH CRITERIA
// ══════════════════════════════════════════════════════════════════════════════

// Criteria is a set of named predicates combined with AND semantics:
// a student matches only when every supplied predicate holds. The zero
// value matches every student.
//
// Field access is a closed table: only the fields enumerated in
// textFieldAccessors can be matched by name. Unknown keys in Fields are
// ignored rather than rejecting the record, so a typo in a search key
// widens the result instead of silently emptying it.
type Criteria struct {
	// Name - case-insensitive substring match against "First Last".
	Name string

	// Major - case-insensitive substring match.
	Major string

	// Email - case-insensitive substring match.
	Email string

	// GPAMin / GPAMax - inclusive bounds on the overall GPA.
	GPAMin *float64
	GPAMax *float64

	// AgeMin / AgeMax - inclusive bounds on the computed age.
	AgeMin *int
	AgeMax *int

	// Fields - additional named text predicates (substring match) against
	// the closed accessor table. Keys not present in the table are ignored.
	Fields map[string]string
}

// textFieldAccessors is the closed set of student fields addressable by
// name in Criteria.Fields. No reflection: every searchable field has an
// explicit accessor.
var textFieldAccessors = map[string]func(*Student) string{
	"student_id":      func(s *Student) string { return s.ID },
	"first_name":      func(s *Student) string { return s.FirstName },
	"last_name":       func(s *Student) string { return s.LastName },
	"email":           func(s *Student) string { return s.Email },
	"phone":           func(s *Student) string { return s.Phone },
	"date_of_birth":   func(s *Student) string { return s.DateOfBirth },
	"address":         func(s *Student) string { return s.Address },
	"major":           func(s *Student) string { return s.Major },
	"enrollment_date": func(s *Student) string { return s.EnrollmentDate },
}

// IsEmpty reports whether no predicate is set.
func (c Criteria) IsEmpty() bool {
	return c.Name == "" && c.Major == "" && c.Email == "" &&
		c.GPAMin == nil && c.GPAMax == nil &&
		c.AgeMin == nil && c.AgeMax == nil &&
		len(c.Fields) == 0
}

// Matches evaluates all predicates against the student. Age bounds are
// computed relative to now so results are reproducible in tests.
func (c Criteria) Matches(s *Student, now time.Time) bool {
	if c.Name != "" && !containsFold(s.FullName(), c.Name) {
		return false
	}
	if c.Major != "" && !containsFold(s.Major, c.Major) {
		return false
	}
	if c.Email != "" && !containsFold(s.Email, c.Email) {
		return false
	}

	if c.GPAMin != nil && s.GPA < *c.GPAMin {
		return false
	}
	if c.GPAMax != nil && s.GPA > *c.GPAMax {
		return false
	}

	if c.AgeMin != nil || c.AgeMax != nil {
		age := s.AgeAt(now)
		if c.AgeMin != nil && age < *c.AgeMin {
			return false
		}
		if c.AgeMax != nil && age > *c.AgeMax {
			return false
		}
	}

	for field, want := range c.Fields {
		accessor, known := textFieldAccessors[field]
		if !known {
			continue // unrecognized keys never reject
		}
		if !containsFold(accessor(s), want) {
			return false
		}
	}

	return true
}

// containsFold is a case-insensitive substring test.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
