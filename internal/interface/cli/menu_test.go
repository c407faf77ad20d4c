package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/application/command"
	"github.com/alem-hub/student-registry/internal/application/manager"
	"github.com/alem-hub/student-registry/internal/application/query"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/student-registry/internal/observability"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// newTestApp строит сессию поверх memory-хранилища со сценарием ввода.
func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer, *manager.Manager) {
	t.Helper()
	log := logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
	m := manager.New(memory.New(), log, observability.New())

	var out bytes.Buffer
	return New(m, strings.NewReader(input), &out), &out, m
}

// script склеивает ответы на промпты в единый поток ввода.
func script(answers ...string) string {
	return strings.Join(answers, "\n") + "\n"
}

func addStudent(t *testing.T, m *manager.Manager, id, first, last, email, dob string) {
	t.Helper()
	out := m.AddStudent(context.Background(), command.AddStudentCommand{
		ID:          id,
		FirstName:   first,
		LastName:    last,
		Email:       email,
		Phone:       "5551234567",
		DateOfBirth: dob,
		Major:       "Computer Science",
	})
	require.True(t, out.OK, out.Message)
}

func TestSearchStudents_ByAgeRange(t *testing.T) {
	// Меню 6, критерии: только минимальный возраст, затем выход.
	input := script(
		"6",
		"",   // name
		"",   // major
		"",   // email
		"",   // min GPA
		"",   // max GPA
		"18", // min age
		"",   // max age
		"0",
	)
	app, out, m := newTestApp(t, input)
	ctx := context.Background()

	addStudent(t, m, "STU001", "Alice", "Johnson", "alice@uni.edu", "2001-03-15")
	addStudent(t, m, "STU002", "Tim", "Young", "tim@uni.edu", "2024-01-01")

	require.NoError(t, app.Run(ctx))

	assert.Contains(t, out.String(), "STU001")
	assert.NotContains(t, out.String(), "STU002", "under-age student must be filtered out")
}

func TestSearchStudents_ByEmail(t *testing.T) {
	input := script(
		"6",
		"",       // name
		"",       // major
		"alice@", // email
		"",       // min GPA
		"",       // max GPA
		"",       // min age
		"",       // max age
		"0",
	)
	app, out, m := newTestApp(t, input)
	ctx := context.Background()

	addStudent(t, m, "STU001", "Alice", "Johnson", "alice@uni.edu", "2001-03-15")
	addStudent(t, m, "STU002", "Bob", "Smith", "bob@uni.edu", "2000-07-22")

	require.NoError(t, app.Run(ctx))

	assert.Contains(t, out.String(), "STU001")
	assert.NotContains(t, out.String(), "STU002")
}

func TestSearchStudents_InvalidAgeBoundIsIgnored(t *testing.T) {
	input := script(
		"6",
		"", "", "", "", "",
		"abc", // bad min age widens instead of rejecting
		"",
		"0",
	)
	app, out, m := newTestApp(t, input)
	ctx := context.Background()

	addStudent(t, m, "STU001", "Alice", "Johnson", "alice@uni.edu", "2001-03-15")

	require.NoError(t, app.Run(ctx))

	assert.Contains(t, out.String(), "Ignoring invalid number: abc")
	assert.Contains(t, out.String(), "STU001")
}

func TestStudentTable_IncludesAge(t *testing.T) {
	var out bytes.Buffer
	p := presenter{out: &out}

	p.studentTable([]query.StudentDTO{{
		StudentID: "STU001",
		FullName:  "Alice Johnson",
		Major:     "Computer Science",
		GPA:       3.8,
		Age:       24,
	}})

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "Age")
	assert.Contains(t, lines[2], "24")
}
