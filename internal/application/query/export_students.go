package query

import (
	"context"
	"io"
	"os"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/internal/infrastructure/transfer"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXPORT STUDENTS QUERY
// Выгрузка всей коллекции в CSV. Экспорт не изменяет состояние,
// поэтому живёт на стороне запросов.
// ══════════════════════════════════════════════════════════════════════════════

// ExportStudentsQuery содержит приёмник данных.
type ExportStudentsQuery struct {
	// Path - путь к создаваемому CSV-файлу. Используется, когда Writer не задан.
	Path string

	// Writer - приёмник CSV. Имеет приоритет над Path.
	Writer io.Writer
}

// Validate проверяет корректность параметров.
func (q *ExportStudentsQuery) Validate() error {
	if q.Writer == nil && q.Path == "" {
		return shared.NewDomainError("query", "ExportStudents", shared.ErrInvalidInput,
			"either a path or a writer must be supplied")
	}
	return nil
}

// ExportStudentsResult содержит счётчик выгруженных записей.
type ExportStudentsResult struct {
	Exported int
}

// ExportStudentsHandler обрабатывает запрос экспорта.
type ExportStudentsHandler struct {
	repo student.Repository
}

// NewExportStudentsHandler создаёт новый обработчик.
func NewExportStudentsHandler(repo student.Repository) *ExportStudentsHandler {
	return &ExportStudentsHandler{repo: repo}
}

// Handle выполняет экспорт.
func (h *ExportStudentsHandler) Handle(ctx context.Context, query ExportStudentsQuery) (*ExportStudentsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	students, err := h.repo.GetAll(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "ExportStudents", shared.ErrPersistence,
			"failed to load collection", err)
	}

	writer := query.Writer
	if writer == nil {
		f, err := os.Create(query.Path)
		if err != nil {
			return nil, shared.WrapError("query", "ExportStudents", shared.ErrPersistence,
				"failed to create csv file", err)
		}
		defer f.Close()
		writer = f
	}

	if err := transfer.WriteStudents(writer, students); err != nil {
		return nil, err
	}

	return &ExportStudentsResult{Exported: len(students)}, nil
}
