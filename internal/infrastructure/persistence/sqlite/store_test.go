package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "students.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newStudent(t *testing.T, id string) *student.Student {
	t.Helper()
	s, err := student.New(student.Params{
		ID:          id,
		FirstName:   "Alice",
		LastName:    "Johnson",
		Email:       "alice@uni.edu",
		Phone:       "5551234567",
		DateOfBirth: "2001-03-15",
		Major:       "Computer Science",
		GPA:         3.8,
	})
	require.NoError(t, err)
	return s
}

func TestStore_AddAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	s := newStudent(t, "STU001")
	_, err := s.AddCourse("Algorithms")
	require.NoError(t, err)
	require.NoError(t, s.RecordGrade("Algorithms", 3.7))

	require.NoError(t, store.Add(ctx, s))

	got, err := store.GetByID(ctx, "stu001")
	require.NoError(t, err, "lookup is case-insensitive")
	assert.Equal(t, "STU001", got.ID)
	assert.Equal(t, []string{"Algorithms"}, got.Courses)
	assert.Equal(t, 3.7, got.Grades["Algorithms"])
	assert.Equal(t, 3.7, got.GPA)
}

func TestStore_AddDuplicateFails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, newStudent(t, "STU001")))

	err := store.Add(ctx, newStudent(t, "stu001"))
	require.Error(t, err)
	assert.True(t, shared.IsDuplicate(err))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_UpdateAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	s := newStudent(t, "STU001")
	require.NoError(t, store.Add(ctx, s))

	major := "Mathematics"
	require.NoError(t, s.ApplyUpdate(student.Update{Major: &major}))
	require.NoError(t, store.Update(ctx, s))

	got, err := store.GetByID(ctx, "STU001")
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", got.Major)

	require.NoError(t, store.Delete(ctx, "STU001"))
	_, err = store.GetByID(ctx, "STU001")
	assert.True(t, shared.IsNotFound(err))
}

func TestStore_UpdateAndDeleteMissingFail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Update(ctx, newStudent(t, "STU404"))
	assert.True(t, shared.IsNotFound(err))

	err = store.Delete(ctx, "STU404")
	assert.True(t, shared.IsNotFound(err))
}

func TestStore_CanceledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Add(ctx, newStudent(t, "STU001"))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.GetAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_GetAllPreservesInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"STU003", "STU001", "STU002"} {
		require.NoError(t, store.Add(ctx, newStudent(t, id)))
	}

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "STU003", all[0].ID)
	assert.Equal(t, "STU001", all[1].ID)
	assert.Equal(t, "STU002", all[2].ID)
}
