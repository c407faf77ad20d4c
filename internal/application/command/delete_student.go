package command

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE STUDENT COMMAND
// Удаляет запись по ID. Удаление несуществующей записи - ошибка,
// коллекция при этом не меняется.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteStudentCommand содержит идентификатор записи.
type DeleteStudentCommand struct {
	StudentID string
}

// Validate проверяет корректность параметров.
func (c *DeleteStudentCommand) Validate() error {
	if student.NormalizeID(c.StudentID) == "" {
		return shared.NewDomainError("command", "DeleteStudent", shared.ErrEmptyValue,
			"student ID must not be empty")
	}
	return nil
}

// DeleteStudentResult содержит ID удалённой записи.
type DeleteStudentResult struct {
	StudentID string
}

// DeleteStudentHandler обрабатывает команду удаления.
type DeleteStudentHandler struct {
	repo student.Repository
	log  *logger.Logger
}

// NewDeleteStudentHandler создаёт новый обработчик.
func NewDeleteStudentHandler(repo student.Repository, log *logger.Logger) *DeleteStudentHandler {
	return &DeleteStudentHandler{repo: repo, log: log}
}

// Handle выполняет команду.
func (h *DeleteStudentHandler) Handle(ctx context.Context, cmd DeleteStudentCommand) (*DeleteStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	id := student.NormalizeID(cmd.StudentID)
	if err := h.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	h.log.Info("student deleted", logger.StudentID(id))
	return &DeleteStudentResult{StudentID: id}, nil
}
