package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/internal/infrastructure/transfer"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// IMPORT STUDENTS COMMAND
// Массовая загрузка из CSV. Ошибка одной строки не прерывает импорт:
// строка пропускается, счётчики и диагностика накапливаются в результате.
// ══════════════════════════════════════════════════════════════════════════════

// ImportStudentsCommand содержит источник данных.
type ImportStudentsCommand struct {
	// Path - путь к CSV-файлу. Используется, когда Reader не задан.
	Path string

	// Reader - источник CSV. Имеет приоритет над Path.
	Reader io.Reader
}

// Validate проверяет корректность параметров.
func (c *ImportStudentsCommand) Validate() error {
	if c.Reader == nil && c.Path == "" {
		return shared.NewDomainError("command", "ImportStudents", shared.ErrInvalidInput,
			"either a path or a reader must be supplied")
	}
	return nil
}

// ImportStudentsResult содержит счётчики импорта.
type ImportStudentsResult struct {
	// Imported - число успешно добавленных записей.
	Imported int

	// Failed - число строк, не прошедших разбор, валидацию или добавление.
	Failed int

	// Failures - диагностика по каждой неудачной строке.
	Failures []string
}

// ImportStudentsHandler обрабатывает команду импорта.
type ImportStudentsHandler struct {
	repo student.Repository
	log  *logger.Logger
}

// NewImportStudentsHandler создаёт новый обработчик.
func NewImportStudentsHandler(repo student.Repository, log *logger.Logger) *ImportStudentsHandler {
	return &ImportStudentsHandler{repo: repo, log: log}
}

// Handle выполняет импорт построчно.
func (h *ImportStudentsHandler) Handle(ctx context.Context, cmd ImportStudentsCommand) (*ImportStudentsResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	reader := cmd.Reader
	if reader == nil {
		f, err := os.Open(cmd.Path)
		if err != nil {
			return nil, shared.WrapError("command", "ImportStudents", shared.ErrPersistence,
				"failed to open csv file", err)
		}
		defer f.Close()
		reader = f
	}

	rows, err := transfer.ReadRows(reader)
	if err != nil {
		return nil, err
	}

	result := &ImportStudentsResult{}
	for _, row := range rows {
		if row.Err != nil {
			result.fail(row.Line, row.Err)
			continue
		}

		s, err := student.New(row.Params)
		if err != nil {
			result.fail(row.Line, err)
			continue
		}
		for _, course := range row.Courses {
			if _, err := s.AddCourse(course); err != nil {
				break
			}
		}

		if err := h.repo.Add(ctx, s); err != nil {
			result.fail(row.Line, err)
			continue
		}
		result.Imported++
	}

	h.log.Info("csv import finished",
		logger.Int("imported", result.Imported),
		logger.Int("failed", result.Failed),
	)
	return result, nil
}

func (r *ImportStudentsResult) fail(line int, err error) {
	r.Failed++
	r.Failures = append(r.Failures, fmt.Sprintf("line %d: %s", line, shared.Message(err)))
}
