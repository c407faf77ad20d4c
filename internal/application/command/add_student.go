// Package command contains write operations following CQRS pattern.
// Commands modify state and return minimal results.
// Each command is a self-contained use case with validation.
package command

import (
	"context"
	"errors"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD STUDENT COMMAND
// Создаёт новую запись студента. Дубликат ID отклоняется дважды:
// явной проверкой здесь и ограничением уникальности в хранилище.
// Двойная проверка даёт понятное сообщение до обращения к записи,
// но не является гарантией при конкурентной записи.
// ══════════════════════════════════════════════════════════════════════════════

// AddStudentCommand содержит поля новой записи.
type AddStudentCommand struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth string
	Address     string
	Major       string
	GPA         float64
}

// AddStudentResult содержит созданную запись.
type AddStudentResult struct {
	Student *student.Student
}

// AddStudentHandler обрабатывает команду создания.
type AddStudentHandler struct {
	repo student.Repository
	log  *logger.Logger
}

// NewAddStudentHandler создаёт новый обработчик.
func NewAddStudentHandler(repo student.Repository, log *logger.Logger) *AddStudentHandler {
	return &AddStudentHandler{repo: repo, log: log}
}

// Handle выполняет команду.
func (h *AddStudentHandler) Handle(ctx context.Context, cmd AddStudentCommand) (*AddStudentResult, error) {
	s, err := student.New(student.Params{
		ID:          cmd.ID,
		FirstName:   cmd.FirstName,
		LastName:    cmd.LastName,
		Email:       cmd.Email,
		Phone:       cmd.Phone,
		DateOfBirth: cmd.DateOfBirth,
		Address:     cmd.Address,
		Major:       cmd.Major,
		GPA:         cmd.GPA,
	})
	if err != nil {
		return nil, err
	}

	// Явная предварительная проверка дубликата.
	if _, err := h.repo.GetByID(ctx, s.ID); err == nil {
		return nil, student.ErrStudentAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := h.repo.Add(ctx, s); err != nil {
		return nil, err
	}

	h.log.Info("student added", logger.StudentID(s.ID))
	return &AddStudentResult{Student: s}, nil
}
