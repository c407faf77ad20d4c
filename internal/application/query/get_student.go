package query

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT QUERY
// Запись одного студента по ID (без учёта регистра).
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentQuery содержит идентификатор студента.
type GetStudentQuery struct {
	// StudentID - ID студента.
	StudentID string
}

// Validate проверяет корректность параметров.
func (q *GetStudentQuery) Validate() error {
	if student.NormalizeID(q.StudentID) == "" {
		return shared.NewDomainError("query", "GetStudent", shared.ErrEmptyValue,
			"student ID must not be empty")
	}
	return nil
}

// GetStudentResult содержит запись студента.
type GetStudentResult struct {
	Student StudentDTO `json:"student"`
}

// GetStudentHandler обрабатывает запрос.
type GetStudentHandler struct {
	repo student.Repository
}

// NewGetStudentHandler создаёт новый обработчик.
func NewGetStudentHandler(repo student.Repository) *GetStudentHandler {
	return &GetStudentHandler{repo: repo}
}

// Handle выполняет запрос.
func (h *GetStudentHandler) Handle(ctx context.Context, query GetStudentQuery) (*GetStudentResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	s, err := h.repo.GetByID(ctx, query.StudentID)
	if err != nil {
		return nil, err
	}

	return &GetStudentResult{Student: NewStudentDTO(s)}, nil
}
