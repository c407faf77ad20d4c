// Package jsonfile implements the student repository over a single
// JSON collection file. This is the default backend: the whole
// collection is loaded into memory and every write is a full rewrite
// of the file, preceded by a timestamped backup.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/logger"
	"github.com/alem-hub/student-registry/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// JSON FILE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// Store implements student.Repository backed by a JSON array file.
//
// Concurrency model: the store is built for single-user sequential
// access. Every mutation is load -> modify -> full rewrite, which is a
// known lost-update hazard under concurrent writers. There is no file
// locking; running two processes against the same file is unsupported.
type Store struct {
	path      string
	backupDir string
	log       *logger.Logger
}

// Options configures the file store.
type Options struct {
	// Path is the location of the collection file, e.g. "students.json".
	Path string

	// BackupDir is where pre-write backups go. Defaults to a "backups"
	// directory next to the collection file.
	BackupDir string

	Logger *logger.Logger
}

// New creates a file store. The collection file does not have to
// exist yet; the parent and backup directories are created eagerly.
func New(opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, shared.NewDomainError("storage", "New", shared.ErrInvalidInput,
			"collection file path must not be empty")
	}
	if opts.BackupDir == "" {
		opts.BackupDir = filepath.Join(filepath.Dir(opts.Path), "backups")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}

	if dir := filepath.Dir(opts.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, shared.WrapError("storage", "New", shared.ErrPersistence,
				"failed to create data directory", err)
		}
	}
	if err := os.MkdirAll(opts.BackupDir, 0o755); err != nil {
		return nil, shared.WrapError("storage", "New", shared.ErrPersistence,
			"failed to create backup directory", err)
	}

	return &Store{
		path:      opts.Path,
		backupDir: opts.BackupDir,
		log:       opts.Logger.With(logger.Component("jsonfile"), logger.Path(opts.Path)),
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Repository implementation
// ─────────────────────────────────────────────────────────────────────────────

// Add stores a new student. Fails without touching the file when the ID
// is already present.
func (st *Store) Add(ctx context.Context, s *student.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	students, err := st.load()
	if err != nil {
		return err
	}

	id := student.NormalizeID(s.ID)
	for _, existing := range students {
		if existing.ID == id {
			return student.ErrStudentAlreadyExists
		}
	}

	students = append(students, s.Clone())
	return st.save(students)
}

// GetByID returns the student with the given ID (case-insensitive).
func (st *Store) GetByID(ctx context.Context, id string) (*student.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	students, err := st.load()
	if err != nil {
		return nil, err
	}

	id = student.NormalizeID(id)
	for _, s := range students {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return nil, student.ErrStudentNotFound
}

// Update replaces the stored record with a matching ID.
func (st *Store) Update(ctx context.Context, s *student.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	students, err := st.load()
	if err != nil {
		return err
	}

	id := student.NormalizeID(s.ID)
	for i, existing := range students {
		if existing.ID == id {
			students[i] = s.Clone()
			return st.save(students)
		}
	}
	return student.ErrStudentNotFound
}

// Delete removes the record with the given ID.
func (st *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	students, err := st.load()
	if err != nil {
		return err
	}

	id = student.NormalizeID(id)
	for i, existing := range students {
		if existing.ID == id {
			students = append(students[:i], students[i+1:]...)
			return st.save(students)
		}
	}
	return student.ErrStudentNotFound
}

// GetAll returns every record in file order.
func (st *Store) GetAll(ctx context.Context) ([]*student.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	students, err := st.load()
	if err != nil {
		return nil, err
	}

	out := make([]*student.Student, len(students))
	for i, s := range students {
		out[i] = s.Clone()
	}
	return out, nil
}

// Count returns the number of stored records.
func (st *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	students, err := st.load()
	if err != nil {
		return 0, err
	}
	return len(students), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// File I/O
// ─────────────────────────────────────────────────────────────────────────────

// load reads the entire collection. A missing or malformed file yields
// an empty collection, not an error; individual invalid records are
// skipped with a warning so one bad row cannot take the registry down.
func (st *Store) load() ([]*student.Student, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*student.Student{}, nil
		}
		return nil, shared.WrapError("storage", "Load", shared.ErrPersistence,
			"failed to read collection file", err)
	}

	var records []student.Record
	if err := json.Unmarshal(data, &records); err != nil {
		st.log.Warn("collection file is malformed, starting with empty collection",
			logger.Err(err))
		return []*student.Student{}, nil
	}

	students := make([]*student.Student, 0, len(records))
	for _, r := range records {
		s, err := student.FromRecord(r)
		if err != nil {
			st.log.Warn("skipping invalid record",
				logger.StudentID(r.StudentID), logger.Err(err))
			continue
		}
		students = append(students, s)
	}
	return students, nil
}

// save writes the full collection: backup first, then an atomic
// rewrite via temp file + rename. A failed backup is logged and the
// write proceeds; a failed write leaves the previous file intact.
func (st *Store) save(students []*student.Student) error {
	if err := st.backup(); err != nil {
		st.log.Warn("backup failed, proceeding with write", logger.Err(err))
	}

	records := make([]student.Record, len(students))
	for i, s := range students {
		records[i] = s.ToRecord()
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return shared.WrapError("storage", "Save", shared.ErrPersistence,
			"failed to encode collection", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(st.path), ".students-*.json.tmp")
	if err != nil {
		return shared.WrapError("storage", "Save", shared.ErrPersistence,
			"failed to create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return shared.WrapError("storage", "Save", shared.ErrPersistence,
			"failed to write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return shared.WrapError("storage", "Save", shared.ErrPersistence,
			"failed to close temp file", err)
	}

	if err := os.Rename(tmpName, st.path); err != nil {
		os.Remove(tmpName)
		return shared.WrapError("storage", "Save", shared.ErrPersistence,
			"failed to replace collection file", err)
	}

	st.log.Debug("collection saved", logger.Count(len(students)))
	return nil
}

// backup copies the current file verbatim into the backup directory.
// No file, nothing to back up.
func (st *Store) backup() error {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	name := fmt.Sprintf("students_backup_%s.json", timeutil.BackupTimestamp(timeutil.Now()))
	target := filepath.Join(st.backupDir, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return err
	}

	st.log.Debug("backup written", logger.Path(target))
	return nil
}
