package command

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE STUDENT COMMAND
// Обновляет контактные и учебные поля существующей записи.
// ID неизменяем: команда перечитывает каноническую запись из хранилища,
// применяет изменения и сохраняет её целиком.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateStudentCommand содержит ID и изменяемые поля.
// nil-указатель оставляет текущее значение без изменений.
type UpdateStudentCommand struct {
	StudentID string
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Major     *string
}

// Validate проверяет корректность параметров.
func (c *UpdateStudentCommand) Validate() error {
	if student.NormalizeID(c.StudentID) == "" {
		return shared.NewDomainError("command", "UpdateStudent", shared.ErrEmptyValue,
			"student ID must not be empty")
	}
	if c.FirstName == nil && c.LastName == nil && c.Email == nil &&
		c.Phone == nil && c.Address == nil && c.Major == nil {
		return shared.NewDomainError("command", "UpdateStudent", shared.ErrInvalidInput,
			"no fields to update")
	}
	return nil
}

// UpdateStudentResult содержит обновлённую запись.
type UpdateStudentResult struct {
	Student *student.Student
}

// UpdateStudentHandler обрабатывает команду обновления.
type UpdateStudentHandler struct {
	repo student.Repository
	log  *logger.Logger
}

// NewUpdateStudentHandler создаёт новый обработчик.
func NewUpdateStudentHandler(repo student.Repository, log *logger.Logger) *UpdateStudentHandler {
	return &UpdateStudentHandler{repo: repo, log: log}
}

// Handle выполняет команду: fetch -> mutate -> persist.
func (h *UpdateStudentHandler) Handle(ctx context.Context, cmd UpdateStudentCommand) (*UpdateStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := h.repo.GetByID(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}

	err = s.ApplyUpdate(student.Update{
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Email:     cmd.Email,
		Phone:     cmd.Phone,
		Address:   cmd.Address,
		Major:     cmd.Major,
	})
	if err != nil {
		return nil, err
	}

	if err := h.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	h.log.Info("student updated", logger.StudentID(s.ID))
	return &UpdateStudentResult{Student: s}, nil
}
