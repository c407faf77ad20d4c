package query

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// Полный список студентов в порядке добавления.
// ══════════════════════════════════════════════════════════════════════════════

// ListStudentsQuery запрашивает список; параметров нет.
type ListStudentsQuery struct{}

// ListStudentsResult содержит список студентов.
type ListStudentsResult struct {
	// Students - все записи в порядке добавления.
	Students []StudentDTO `json:"students"`

	// TotalCount - общее число записей.
	TotalCount int `json:"total_count"`
}

// ListStudentsHandler обрабатывает запрос списка.
type ListStudentsHandler struct {
	repo student.Repository
}

// NewListStudentsHandler создаёт новый обработчик.
func NewListStudentsHandler(repo student.Repository) *ListStudentsHandler {
	return &ListStudentsHandler{repo: repo}
}

// Handle выполняет запрос.
func (h *ListStudentsHandler) Handle(ctx context.Context, _ ListStudentsQuery) (*ListStudentsResult, error) {
	students, err := h.repo.GetAll(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "ListStudents", shared.ErrPersistence,
			"failed to load collection", err)
	}

	out := make([]StudentDTO, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentDTO(s))
	}

	return &ListStudentsResult{Students: out, TotalCount: len(out)}, nil
}
