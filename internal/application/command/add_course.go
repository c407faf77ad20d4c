package command

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD COURSE COMMAND
// Записывает студента на курс: fetch -> mutate -> persist.
// Повторная запись на тот же курс - no-op: хранилище не трогается,
// результат помечается флагом Added == false.
// ══════════════════════════════════════════════════════════════════════════════

// AddCourseCommand содержит ID студента и название курса.
type AddCourseCommand struct {
	StudentID string
	Course    string
}

// Validate проверяет корректность параметров.
func (c *AddCourseCommand) Validate() error {
	if student.NormalizeID(c.StudentID) == "" {
		return shared.NewDomainError("command", "AddCourse", shared.ErrEmptyValue,
			"student ID must not be empty")
	}
	return nil
}

// AddCourseResult содержит исход записи на курс.
type AddCourseResult struct {
	// Added - false, если студент уже записан на курс.
	Added  bool
	Course string
}

// AddCourseHandler обрабатывает команду записи на курс.
type AddCourseHandler struct {
	repo student.Repository
	log  *logger.Logger
}

// NewAddCourseHandler создаёт новый обработчик.
func NewAddCourseHandler(repo student.Repository, log *logger.Logger) *AddCourseHandler {
	return &AddCourseHandler{repo: repo, log: log}
}

// Handle выполняет команду.
func (h *AddCourseHandler) Handle(ctx context.Context, cmd AddCourseCommand) (*AddCourseResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := h.repo.GetByID(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}

	added, err := s.AddCourse(cmd.Course)
	if err != nil {
		return nil, err
	}
	if !added {
		return &AddCourseResult{Added: false, Course: cmd.Course}, nil
	}

	if err := h.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	h.log.Info("course added", logger.StudentID(s.ID), logger.String("course", cmd.Course))
	return &AddCourseResult{Added: true, Course: cmd.Course}, nil
}
