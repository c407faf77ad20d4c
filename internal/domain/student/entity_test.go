package student

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/domain/shared"
)

func validParams() Params {
	return Params{
		ID:          "STU001",
		FirstName:   "Alice",
		LastName:    "Johnson",
		Email:       "alice@uni.edu",
		Phone:       "5551234567",
		DateOfBirth: "2001-03-15",
		Address:     "123 Campus Drive",
		Major:       "Computer Science",
		GPA:         3.8,
	}
}

func TestNew_ValidStudent(t *testing.T) {
	s, err := New(validParams())
	require.NoError(t, err)

	assert.Equal(t, "STU001", s.ID)
	assert.Equal(t, "Alice", s.FirstName)
	assert.Equal(t, "Johnson", s.LastName)
	assert.Equal(t, "alice@uni.edu", s.Email)
	assert.Equal(t, 3.8, s.GPA)
	assert.Empty(t, s.Courses)
	assert.Empty(t, s.Grades)
	assert.NotEmpty(t, s.EnrollmentDate)
}

func TestNew_NormalizesFields(t *testing.T) {
	p := validParams()
	p.ID = "  stu042  "
	p.FirstName = "mary-jane"
	p.LastName = "o'brien"
	p.Email = "Mary.Jane@Uni.EDU"

	s, err := New(p)
	require.NoError(t, err)

	assert.Equal(t, "STU042", s.ID)
	assert.Equal(t, "Mary-Jane", s.FirstName)
	assert.Equal(t, "O'Brien", s.LastName)
	assert.Equal(t, "mary.jane@uni.edu", s.Email)
}

func TestNew_RejectsInvalidFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"empty id", func(p *Params) { p.ID = "" }},
		{"short id", func(p *Params) { p.ID = "AB" }},
		{"blank first name", func(p *Params) { p.FirstName = "   " }},
		{"blank last name", func(p *Params) { p.LastName = "" }},
		{"email without at", func(p *Params) { p.Email = "alice.uni.edu" }},
		{"email without tld", func(p *Params) { p.Email = "alice@uni" }},
		{"short phone", func(p *Params) { p.Phone = "555-1234" }},
		{"impossible date", func(p *Params) { p.DateOfBirth = "2001-13-40" }},
		{"wrong date layout", func(p *Params) { p.DateOfBirth = "15/03/2001" }},
		{"gpa too high", func(p *Params) { p.GPA = 4.5 }},
		{"gpa negative", func(p *Params) { p.GPA = -0.1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)

			s, err := New(p)
			assert.Nil(t, s)
			require.Error(t, err)
			assert.True(t, shared.IsValidation(err))
		})
	}
}

func TestNew_PhoneKeepsOriginalFormat(t *testing.T) {
	p := validParams()
	p.Phone = "(555) 123-4567"

	s, err := New(p)
	require.NoError(t, err)
	assert.Equal(t, "(555) 123-4567", s.Phone)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Alice", titleCase("alice"))
	assert.Equal(t, "Mary-Jane", titleCase("MARY-JANE"))
	assert.Equal(t, "Van Der Berg", titleCase("van der berg"))
	assert.Equal(t, "O'Brien", titleCase("o'brien"))
}

func TestAgeAt(t *testing.T) {
	s, err := New(validParams()) // born 2001-03-15
	require.NoError(t, err)

	beforeBirthday := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 24, s.AgeAt(beforeBirthday))

	onBirthday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 25, s.AgeAt(onBirthday))
}

func TestAddCourse(t *testing.T) {
	s, err := New(validParams())
	require.NoError(t, err)

	added, err := s.AddCourse("Algorithms")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"Algorithms"}, s.Courses)

	// Повторная запись на тот же курс - no-op.
	added, err = s.AddCourse("Algorithms")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, s.Courses, 1)

	added, err = s.AddCourse("")
	require.Error(t, err)
	assert.False(t, added)
}

func TestRecordGrade(t *testing.T) {
	s, err := New(validParams())
	require.NoError(t, err)

	err = s.RecordGrade("Algorithms", 3.8)
	require.Error(t, err, "grade for a course the student is not enrolled in")

	_, err = s.AddCourse("Algorithms")
	require.NoError(t, err)

	require.NoError(t, s.RecordGrade("Algorithms", 3.8))
	assert.Equal(t, 3.8, s.GPA)

	err = s.RecordGrade("Algorithms", 4.5)
	require.Error(t, err)
	assert.Equal(t, 3.8, s.GPA, "failed grade must not change the GPA")
}

func TestGPA_IsMeanOfGrades(t *testing.T) {
	s, err := New(validParams())
	require.NoError(t, err)

	for _, course := range []string{"A", "B", "C"} {
		_, err := s.AddCourse(course)
		require.NoError(t, err)
	}

	require.NoError(t, s.RecordGrade("A", 4.0))
	require.NoError(t, s.RecordGrade("B", 3.0))
	assert.InDelta(t, 3.5, s.GPA, 1e-9)

	require.NoError(t, s.RecordGrade("C", 2.0))
	assert.InDelta(t, 3.0, s.GPA, 1e-9)

	// Перезапись оценки пересчитывает среднее.
	require.NoError(t, s.RecordGrade("C", 3.5))
	assert.InDelta(t, 3.5, s.GPA, 1e-9)
}

func TestRemoveCourse_RecomputesGPA(t *testing.T) {
	s, err := New(validParams())
	require.NoError(t, err)

	_, err = s.AddCourse("Algorithms")
	require.NoError(t, err)
	require.NoError(t, s.RecordGrade("Algorithms", 3.8))
	require.Equal(t, 3.8, s.GPA)

	removed := s.RemoveCourse("Algorithms")
	assert.True(t, removed)
	assert.Empty(t, s.Courses)
	assert.Empty(t, s.Grades)
	assert.Equal(t, 0.0, s.GPA, "GPA must reflect the remaining grades after removal")
}

func TestRemoveCourse_MissingCourse(t *testing.T) {
	s, err := New(validParams())
	require.NoError(t, err)

	assert.False(t, s.RemoveCourse("Ghost Course"))
}

func TestApplyUpdate(t *testing.T) {
	s, err := New(validParams())
	require.NoError(t, err)

	newEmail := "Alice.Johnson@University.EDU"
	newMajor := "Mathematics"
	err = s.ApplyUpdate(Update{Email: &newEmail, Major: &newMajor})
	require.NoError(t, err)

	assert.Equal(t, "alice.johnson@university.edu", s.Email)
	assert.Equal(t, "Mathematics", s.Major)
	assert.Equal(t, "Alice", s.FirstName, "untouched fields keep their values")
}

func TestApplyUpdate_AtomicOnFailure(t *testing.T) {
	s, err := New(validParams())
	require.NoError(t, err)

	goodName := "bob"
	badEmail := "not-an-email"
	err = s.ApplyUpdate(Update{FirstName: &goodName, Email: &badEmail})
	require.Error(t, err)

	assert.Equal(t, "Alice", s.FirstName, "failed update must not apply any field")
	assert.Equal(t, "alice@uni.edu", s.Email)
}

func TestClone_IsDeep(t *testing.T) {
	s, err := New(validParams())
	require.NoError(t, err)
	_, err = s.AddCourse("Algorithms")
	require.NoError(t, err)
	require.NoError(t, s.RecordGrade("Algorithms", 3.5))

	clone := s.Clone()
	clone.Courses[0] = "Mutated"
	clone.Grades["Algorithms"] = 1.0

	assert.Equal(t, "Algorithms", s.Courses[0])
	assert.Equal(t, 3.5, s.Grades["Algorithms"])
}

func TestDisplayMajor(t *testing.T) {
	p := validParams()
	p.Major = ""
	s, err := New(p)
	require.NoError(t, err)

	assert.Equal(t, "Undeclared", s.DisplayMajor())
}
