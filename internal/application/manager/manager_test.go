package manager

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/application/command"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/student-registry/internal/observability"
	"github.com/alem-hub/student-registry/pkg/logger"
)

func newTestManager() (*Manager, *memory.Store) {
	repo := memory.New()
	log := logger.New(logger.Options{Output: nopWriter{}, Level: logger.LevelError})
	return New(repo, log, observability.New()), repo
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func aliceCommand() command.AddStudentCommand {
	return command.AddStudentCommand{
		ID:          "STU001",
		FirstName:   "Alice",
		LastName:    "Johnson",
		Email:       "alice@uni.edu",
		Phone:       "5551234567",
		DateOfBirth: "2001-03-15",
		Major:       "Computer Science",
	}
}

func TestManager_AddStudent(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	out := m.AddStudent(ctx, aliceCommand())
	assert.True(t, out.OK)
	assert.Equal(t, "Student Alice Johnson added successfully", out.Message)
}

func TestManager_AddStudent_Duplicate(t *testing.T) {
	m, repo := newTestManager()
	ctx := context.Background()

	require.True(t, m.AddStudent(ctx, aliceCommand()).OK)

	out := m.AddStudent(ctx, aliceCommand())
	assert.False(t, out.OK)
	assert.Equal(t, "Student with ID STU001 already exists", out.Message)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestManager_AddStudent_ValidationMessage(t *testing.T) {
	m, _ := newTestManager()

	cmd := aliceCommand()
	cmd.Email = "broken"
	out := m.AddStudent(context.Background(), cmd)

	assert.False(t, out.OK)
	assert.Contains(t, out.Message, "Validation error:")
}

func TestManager_GetStudent_CaseInsensitive(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	require.True(t, m.AddStudent(ctx, aliceCommand()).OK)

	s, out := m.GetStudent(ctx, "stu001")
	require.True(t, out.OK)
	assert.Equal(t, "STU001", s.StudentID)
	assert.Equal(t, "Alice Johnson", s.FullName)

	s, out = m.GetStudent(ctx, "STU404")
	assert.False(t, out.OK)
	assert.Nil(t, s)
	assert.Equal(t, "Student with ID STU404 not found", out.Message)
}

func TestManager_UpdateStudent_IDIsImmutable(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	require.True(t, m.AddStudent(ctx, aliceCommand()).OK)

	email := "new.alice@uni.edu"
	out := m.UpdateStudent(ctx, command.UpdateStudentCommand{
		StudentID: "STU001",
		Email:     &email,
	})
	require.True(t, out.OK)

	s, getOut := m.GetStudent(ctx, "STU001")
	require.True(t, getOut.OK)
	assert.Equal(t, "STU001", s.StudentID)
	assert.Equal(t, "new.alice@uni.edu", s.Email)
}

func TestManager_DeleteStudent(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	require.True(t, m.AddStudent(ctx, aliceCommand()).OK)

	out := m.DeleteStudent(ctx, "STU001")
	assert.True(t, out.OK)
	assert.Equal(t, "Student Alice Johnson deleted successfully", out.Message)

	out = m.DeleteStudent(ctx, "STU001")
	assert.False(t, out.OK)
}

func TestManager_CourseFlow(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	require.True(t, m.AddStudent(ctx, aliceCommand()).OK)

	out := m.AddCourse(ctx, "STU001", "Algorithms")
	assert.True(t, out.OK)

	// Повторная запись - no-op с неуспешным исходом.
	out = m.AddCourse(ctx, "STU001", "Algorithms")
	assert.False(t, out.OK)
	assert.Equal(t, "Course 'Algorithms' already exists for this student", out.Message)

	out = m.AddGrade(ctx, "STU001", "Algorithms", 3.8)
	assert.True(t, out.OK)

	s, getOut := m.GetStudent(ctx, "STU001")
	require.True(t, getOut.OK)
	assert.Equal(t, 3.8, s.GPA)

	out = m.RemoveCourse(ctx, "STU001", "Algorithms")
	assert.True(t, out.OK)

	s, getOut = m.GetStudent(ctx, "STU001")
	require.True(t, getOut.OK)
	assert.Empty(t, s.Courses)
	assert.Equal(t, 0.0, s.GPA, "GPA follows the grades after removal")

	out = m.RemoveCourse(ctx, "STU001", "Algorithms")
	assert.False(t, out.OK)
	assert.Equal(t, "Course 'Algorithms' not found for this student", out.Message)
}

func TestManager_AddGrade_UnknownCourse(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	require.True(t, m.AddStudent(ctx, aliceCommand()).OK)

	out := m.AddGrade(ctx, "STU001", "Ghost Course", 3.0)
	assert.False(t, out.OK)
	assert.Contains(t, out.Message, "Validation error:")
}

func TestManager_SearchStudents_NoMatches(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	require.True(t, m.AddStudent(ctx, aliceCommand()).OK)

	students, out := m.SearchStudents(ctx, student.Criteria{Name: "nobody"})
	assert.False(t, out.OK)
	assert.Empty(t, students)
	assert.Equal(t, "No students found matching the criteria", out.Message)
}

func TestManager_ExportImportCycle(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	require.True(t, m.AddStudent(ctx, aliceCommand()).OK)

	path := filepath.Join(t.TempDir(), "export.csv")
	out := m.ExportCSV(ctx, path)
	require.True(t, out.OK)

	_, err := os.Stat(path)
	require.NoError(t, err)

	// Импорт в пустой реестр.
	fresh, _ := newTestManager()
	result, out := fresh.ImportCSV(ctx, path)
	assert.True(t, out.OK)
	assert.Equal(t, 1, result.Imported)
	assert.Zero(t, result.Failed)

	s, getOut := fresh.GetStudent(ctx, "STU001")
	require.True(t, getOut.OK)
	assert.Equal(t, "Alice Johnson", s.FullName)
}

func TestManager_ImportCountsFailedRows(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "import.csv")
	csvData := "student_id,first_name,last_name,email,phone,date_of_birth\n" +
		"STU001,Alice,Johnson,alice@uni.edu,5551234567,2001-03-15\n" +
		"STU002,Bob,Smith,broken-email,5552345678,2000-07-22\n"
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	result, out := m.ImportCSV(ctx, path)
	assert.False(t, out.OK, "partial import reports failure")
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "line 3")

	_, getOut := m.GetStudent(ctx, "STU001")
	assert.True(t, getOut.OK, "good rows survive a partial failure")
}

func TestManager_RecordsMetrics(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	require.True(t, m.AddStudent(ctx, aliceCommand()).OK)
	m.AddStudent(ctx, aliceCommand()) // duplicate, fails

	counts := m.Metrics().OperationCounts()
	assert.Equal(t, 1.0, counts["AddStudent/ok"])
	assert.Equal(t, 1.0, counts["AddStudent/failed"])
}
