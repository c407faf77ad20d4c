package query

import (
	"context"
	"sort"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET TOP STUDENTS QUERY
// Топ-N студентов по GPA. Записи с gpa == 0 (нет оценок) не участвуют.
// ══════════════════════════════════════════════════════════════════════════════

// GetTopStudentsQuery содержит параметры запроса.
type GetTopStudentsQuery struct {
	// Limit - число записей (по умолчанию 10).
	Limit int
}

// Validate проверяет корректность параметров.
func (q *GetTopStudentsQuery) Validate() error {
	if q.Limit < 0 {
		return shared.NewDomainError("query", "GetTopStudents", shared.ErrValueOutOfRange,
			"limit cannot be negative")
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
	return nil
}

// GetTopStudentsResult содержит результат.
type GetTopStudentsResult struct {
	// Students - записи по убыванию GPA; при равенстве GPA
	// сохраняется порядок коллекции (стабильная сортировка).
	Students []StudentDTO `json:"students"`
}

// GetTopStudentsHandler обрабатывает запрос топа.
type GetTopStudentsHandler struct {
	repo student.Repository
}

// NewGetTopStudentsHandler создаёт новый обработчик.
func NewGetTopStudentsHandler(repo student.Repository) *GetTopStudentsHandler {
	return &GetTopStudentsHandler{repo: repo}
}

// Handle выполняет запрос.
func (h *GetTopStudentsHandler) Handle(ctx context.Context, query GetTopStudentsQuery) (*GetTopStudentsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	students, err := h.repo.GetAll(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetTopStudents", shared.ErrPersistence,
			"failed to load collection", err)
	}

	ranked := make([]*student.Student, 0, len(students))
	for _, s := range students {
		if s.GPA > 0 {
			ranked = append(ranked, s)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].GPA > ranked[j].GPA
	})

	if len(ranked) > query.Limit {
		ranked = ranked[:query.Limit]
	}

	out := make([]StudentDTO, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, NewStudentDTO(s))
	}

	return &GetTopStudentsResult{Students: out}, nil
}
