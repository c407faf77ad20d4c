package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

func newStudent(t *testing.T, id string) *student.Student {
	t.Helper()
	s, err := student.New(student.Params{
		ID:          id,
		FirstName:   "Alice",
		LastName:    "Johnson",
		Email:       "alice@uni.edu",
		Phone:       "5551234567",
		DateOfBirth: "2001-03-15",
		GPA:         3.8,
	})
	require.NoError(t, err)
	return s
}

func TestStore_Contract(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, newStudent(t, "STU001")))

	err := store.Add(ctx, newStudent(t, "stu001"))
	assert.True(t, shared.IsDuplicate(err))

	got, err := store.GetByID(ctx, "stu001")
	require.NoError(t, err)
	assert.Equal(t, "STU001", got.ID)

	require.NoError(t, store.Delete(ctx, "STU001"))
	_, err = store.GetByID(ctx, "STU001")
	assert.True(t, shared.IsNotFound(err))

	assert.True(t, shared.IsNotFound(store.Delete(ctx, "STU001")))
	assert.True(t, shared.IsNotFound(store.Update(ctx, newStudent(t, "STU001"))))
}

func TestStore_CanceledContext(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Add(ctx, newStudent(t, "STU001"))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.GetAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_OrderAndDetachedCopies(t *testing.T) {
	store := New()
	ctx := context.Background()

	for _, id := range []string{"STU002", "STU001"} {
		require.NoError(t, store.Add(ctx, newStudent(t, id)))
	}

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "STU002", all[0].ID)
	assert.Equal(t, "STU001", all[1].ID)

	_, err = all[0].AddCourse("Algorithms")
	require.NoError(t, err)

	again, err := store.GetByID(ctx, "STU002")
	require.NoError(t, err)
	assert.Empty(t, again.Courses)
}
