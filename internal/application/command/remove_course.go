package command

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// REMOVE COURSE COMMAND
// Снимает студента с курса. Вместе с курсом удаляется его оценка,
// и GPA пересчитывается по оставшимся оценкам. Снятие с курса, на
// который студент не записан, - no-op без обращения к хранилищу.
// ══════════════════════════════════════════════════════════════════════════════

// RemoveCourseCommand содержит ID студента и название курса.
type RemoveCourseCommand struct {
	StudentID string
	Course    string
}

// Validate проверяет корректность параметров.
func (c *RemoveCourseCommand) Validate() error {
	if student.NormalizeID(c.StudentID) == "" {
		return shared.NewDomainError("command", "RemoveCourse", shared.ErrEmptyValue,
			"student ID must not be empty")
	}
	return nil
}

// RemoveCourseResult содержит исход снятия с курса.
type RemoveCourseResult struct {
	// Removed - false, если студент не был записан на курс.
	Removed bool
	Course  string

	// GPA - итоговый GPA после пересчёта.
	GPA float64
}

// RemoveCourseHandler обрабатывает команду снятия с курса.
type RemoveCourseHandler struct {
	repo student.Repository
	log  *logger.Logger
}

// NewRemoveCourseHandler создаёт новый обработчик.
func NewRemoveCourseHandler(repo student.Repository, log *logger.Logger) *RemoveCourseHandler {
	return &RemoveCourseHandler{repo: repo, log: log}
}

// Handle выполняет команду.
func (h *RemoveCourseHandler) Handle(ctx context.Context, cmd RemoveCourseCommand) (*RemoveCourseResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := h.repo.GetByID(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}

	if !s.RemoveCourse(cmd.Course) {
		return &RemoveCourseResult{Removed: false, Course: cmd.Course, GPA: s.GPA}, nil
	}

	if err := h.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	h.log.Info("course removed", logger.StudentID(s.ID), logger.String("course", cmd.Course))
	return &RemoveCourseResult{Removed: true, Course: cmd.Course, GPA: s.GPA}, nil
}
