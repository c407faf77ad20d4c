package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := New(Options{
		Path:      filepath.Join(dir, "students.json"),
		BackupDir: filepath.Join(dir, "backups"),
	})
	require.NoError(t, err)
	return store, dir
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
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, newStudent(t, "STU001")))

	got, err := store.GetByID(ctx, "stu001")
	require.NoError(t, err, "lookup is case-insensitive")
	assert.Equal(t, "STU001", got.ID)
	assert.Equal(t, "Alice", got.FirstName)
}

func TestStore_AddDuplicateFails(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, newStudent(t, "STU001")))

	err := store.Add(ctx, newStudent(t, "stu001"))
	require.Error(t, err)
	assert.True(t, shared.IsDuplicate(err))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "failed add must not mutate the collection")
}

func TestStore_Update(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	s := newStudent(t, "STU001")
	require.NoError(t, store.Add(ctx, s))

	major := "Mathematics"
	require.NoError(t, s.ApplyUpdate(student.Update{Major: &major}))
	require.NoError(t, store.Update(ctx, s))

	got, err := store.GetByID(ctx, "STU001")
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", got.Major)
}

func TestStore_UpdateMissingFails(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Update(context.Background(), newStudent(t, "STU404"))
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, newStudent(t, "STU001")))
	require.NoError(t, store.Delete(ctx, "STU001"))

	_, err := store.GetByID(ctx, "STU001")
	assert.True(t, shared.IsNotFound(err))

	err = store.Delete(ctx, "STU001")
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestStore_GetAllPreservesOrder(t *testing.T) {
	store, _ := newTestStore(t)
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

func TestStore_MissingFileIsEmptyCollection(t *testing.T) {
	store, _ := newTestStore(t)

	all, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_MalformedFileIsEmptyCollection(t *testing.T) {
	store, dir := newTestStore(t)
	path := filepath.Join(dir, "students.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	all, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_LoadSkipsInvalidRecords(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	good := newStudent(t, "STU001").ToRecord()
	bad := good
	bad.StudentID = "STU002"
	bad.Email = "broken"

	data, err := json.Marshal([]student.Record{good, bad})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "students.json"), data, 0o644))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "one bad record must not take the collection down")
	assert.Equal(t, "STU001", all[0].ID)
}

func TestStore_WritesBackupBeforeMutation(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	// Первый Add: файла ещё нет, бэкапа не будет.
	require.NoError(t, store.Add(ctx, newStudent(t, "STU001")))
	// Второй Add делает бэкап существующего файла.
	require.NoError(t, store.Add(ctx, newStudent(t, "STU002")))

	backups, err := filepath.Glob(filepath.Join(dir, "backups", "students_backup_*.json"))
	require.NoError(t, err)
	require.NotEmpty(t, backups)

	name := filepath.Base(backups[0])
	assert.Regexp(t, `^students_backup_\d{8}_\d{6}\.json$`, name)

	// Бэкап - дословная копия предыдущего состояния.
	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	var records []student.Record
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "STU001", records[0].StudentID)
}

func TestStore_FailedRewriteKeepsPreviousState(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not restrict root")
	}
	store, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, newStudent(t, "STU001")))

	// Каталог данных только для чтения: временный файл не создастся.
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	err := store.Add(ctx, newStudent(t, "STU002"))
	require.Error(t, err)
	assert.True(t, shared.IsPersistence(err))

	require.NoError(t, os.Chmod(dir, 0o755))
	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "a failed rewrite must leave the previous state intact")
	assert.Equal(t, "STU001", all[0].ID)
}

func TestStore_BackupFailureDoesNotBlockWrite(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, newStudent(t, "STU001")))

	// На месте каталога бэкапов теперь обычный файл: бэкап падает,
	// но запись обязана пройти.
	backups := filepath.Join(dir, "backups")
	require.NoError(t, os.RemoveAll(backups))
	require.NoError(t, os.WriteFile(backups, []byte("not a directory"), 0o644))

	require.NoError(t, store.Add(ctx, newStudent(t, "STU002")))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStore_CanceledContext(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Add(ctx, newStudent(t, "STU001"))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.GetAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ReturnsDetachedCopies(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	s := newStudent(t, "STU001")
	require.NoError(t, store.Add(ctx, s))

	got, err := store.GetByID(ctx, "STU001")
	require.NoError(t, err)
	_, err = got.AddCourse("Algorithms")
	require.NoError(t, err)

	again, err := store.GetByID(ctx, "STU001")
	require.NoError(t, err)
	assert.Empty(t, again.Courses, "mutating a returned entity must not touch the store")
}
