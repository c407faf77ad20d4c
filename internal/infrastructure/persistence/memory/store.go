// Package memory implements an in-memory student repository. It backs
// the "memory" storage mode (ephemeral sessions, demos) and serves as
// the repository test double across the application layer tests.
package memory

import (
	"context"
	"sync"

	"github.com/alem-hub/student-registry/internal/domain/student"
)

// Store implements student.Repository in process memory. Unlike the
// file backends it is safe for concurrent use, which keeps tests free
// to run handlers in parallel.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]*student.Student
	order []string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		byID:  make(map[string]*student.Student),
		order: make([]string, 0),
	}
}

// Add stores a new student.
func (st *Store) Add(ctx context.Context, s *student.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	id := student.NormalizeID(s.ID)
	if _, exists := st.byID[id]; exists {
		return student.ErrStudentAlreadyExists
	}
	st.byID[id] = s.Clone()
	st.order = append(st.order, id)
	return nil
}

// GetByID returns a copy of the student with the given ID.
func (st *Store) GetByID(ctx context.Context, id string) (*student.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st.mu.RLock()
	defer st.mu.RUnlock()

	s, exists := st.byID[student.NormalizeID(id)]
	if !exists {
		return nil, student.ErrStudentNotFound
	}
	return s.Clone(), nil
}

// Update replaces an existing record.
func (st *Store) Update(ctx context.Context, s *student.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	id := student.NormalizeID(s.ID)
	if _, exists := st.byID[id]; !exists {
		return student.ErrStudentNotFound
	}
	st.byID[id] = s.Clone()
	return nil
}

// Delete removes the record with the given ID.
func (st *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	id = student.NormalizeID(id)
	if _, exists := st.byID[id]; !exists {
		return student.ErrStudentNotFound
	}
	delete(st.byID, id)
	for i, stored := range st.order {
		if stored == id {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetAll returns all records in insertion order.
func (st *Store) GetAll(ctx context.Context) ([]*student.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]*student.Student, 0, len(st.order))
	for _, id := range st.order {
		out = append(out, st.byID[id].Clone())
	}
	return out, nil
}

// Count returns the number of stored records.
func (st *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.byID), nil
}
