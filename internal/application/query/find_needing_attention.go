package query

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// FIND NEEDING ATTENTION QUERY
// Студенты с GPA на грани отчисления. Порог включает записи без оценок
// (gpa == 0): студент без единой оценки тоже требует внимания.
// ══════════════════════════════════════════════════════════════════════════════

// AttentionThreshold - верхняя граница GPA (включительно) для выборки.
const AttentionThreshold = 1.99

// FindNeedingAttentionQuery запрашивает выборку; параметров нет.
type FindNeedingAttentionQuery struct{}

// FindNeedingAttentionResult содержит результат.
type FindNeedingAttentionResult struct {
	// Students - записи с gpa <= 1.99 в порядке коллекции.
	Students []StudentDTO `json:"students"`
}

// FindNeedingAttentionHandler обрабатывает запрос.
type FindNeedingAttentionHandler struct {
	repo student.Repository
}

// NewFindNeedingAttentionHandler создаёт новый обработчик.
func NewFindNeedingAttentionHandler(repo student.Repository) *FindNeedingAttentionHandler {
	return &FindNeedingAttentionHandler{repo: repo}
}

// Handle выполняет запрос.
func (h *FindNeedingAttentionHandler) Handle(ctx context.Context, _ FindNeedingAttentionQuery) (*FindNeedingAttentionResult, error) {
	students, err := h.repo.GetAll(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "FindNeedingAttention", shared.ErrPersistence,
			"failed to load collection", err)
	}

	out := make([]StudentDTO, 0)
	for _, s := range students {
		if s.GPA <= AttentionThreshold {
			out = append(out, NewStudentDTO(s))
		}
	}

	return &FindNeedingAttentionResult{Students: out}, nil
}
