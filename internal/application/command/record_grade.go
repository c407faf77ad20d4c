package command

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD GRADE COMMAND
// Выставляет оценку за курс, на который студент записан.
// GPA пересчитывается автоматически. Повторное выставление
// перезаписывает предыдущую оценку.
// ══════════════════════════════════════════════════════════════════════════════

// RecordGradeCommand содержит ID студента, курс и оценку.
type RecordGradeCommand struct {
	StudentID string
	Course    string
	Grade     float64
}

// Validate проверяет корректность параметров.
func (c *RecordGradeCommand) Validate() error {
	if student.NormalizeID(c.StudentID) == "" {
		return shared.NewDomainError("command", "RecordGrade", shared.ErrEmptyValue,
			"student ID must not be empty")
	}
	return nil
}

// RecordGradeResult содержит исход.
type RecordGradeResult struct {
	Course string
	Grade  float64

	// GPA - итоговый GPA после пересчёта.
	GPA float64
}

// RecordGradeHandler обрабатывает команду выставления оценки.
type RecordGradeHandler struct {
	repo student.Repository
	log  *logger.Logger
}

// NewRecordGradeHandler создаёт новый обработчик.
func NewRecordGradeHandler(repo student.Repository, log *logger.Logger) *RecordGradeHandler {
	return &RecordGradeHandler{repo: repo, log: log}
}

// Handle выполняет команду.
func (h *RecordGradeHandler) Handle(ctx context.Context, cmd RecordGradeCommand) (*RecordGradeResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := h.repo.GetByID(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}

	if err := s.RecordGrade(cmd.Course, cmd.Grade); err != nil {
		return nil, err
	}

	if err := h.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	h.log.Info("grade recorded",
		logger.StudentID(s.ID),
		logger.String("course", cmd.Course),
		logger.Float64("grade", cmd.Grade),
	)
	return &RecordGradeResult{Course: cmd.Course, Grade: cmd.Grade, GPA: s.GPA}, nil
}
