package query

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET TRANSCRIPT QUERY
// Академическая выписка одного студента: курсы, оценки, итоговый GPA.
// ══════════════════════════════════════════════════════════════════════════════

// GetTranscriptQuery содержит идентификатор студента.
type GetTranscriptQuery struct {
	// StudentID - ID студента (регистр не важен).
	StudentID string
}

// Validate проверяет корректность параметров.
func (q *GetTranscriptQuery) Validate() error {
	if student.NormalizeID(q.StudentID) == "" {
		return shared.NewDomainError("query", "GetTranscript", shared.ErrEmptyValue,
			"student ID must not be empty")
	}
	return nil
}

// GetTranscriptResult содержит выписку.
type GetTranscriptResult struct {
	Transcript student.Transcript `json:"transcript"`
}

// GetTranscriptHandler обрабатывает запрос выписки.
type GetTranscriptHandler struct {
	repo student.Repository
}

// NewGetTranscriptHandler создаёт новый обработчик.
func NewGetTranscriptHandler(repo student.Repository) *GetTranscriptHandler {
	return &GetTranscriptHandler{repo: repo}
}

// Handle выполняет запрос.
func (h *GetTranscriptHandler) Handle(ctx context.Context, query GetTranscriptQuery) (*GetTranscriptResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	s, err := h.repo.GetByID(ctx, query.StudentID)
	if err != nil {
		return nil, err
	}

	return &GetTranscriptResult{Transcript: student.BuildTranscript(s)}, nil
}
