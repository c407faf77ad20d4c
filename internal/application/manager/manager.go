// Package manager is the facade over the command and query handlers.
// Every use case is translated into a structured outcome: a success
// flag plus a single-line human-readable message. Errors never cross
// this boundary to the presentation layer.
package manager

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alem-hub/student-registry/internal/application/command"
	"github.com/alem-hub/student-registry/internal/application/query"
	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/internal/observability"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTRY MANAGER (Facade)
// ══════════════════════════════════════════════════════════════════════════════

// Outcome - структурированный результат операции для слоя отображения.
type Outcome struct {
	// OK - успех операции.
	OK bool

	// Message - однострочное сообщение для пользователя.
	Message string
}

func success(format string, args ...any) Outcome {
	return Outcome{OK: true, Message: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...any) Outcome {
	return Outcome{OK: false, Message: fmt.Sprintf(format, args...)}
}

// Manager связывает обработчики команд и запросов в единый фасад.
// Каждая операция получает корреляционный ID для трассировки в логах
// и учитывается в метриках.
type Manager struct {
	log     *logger.Logger
	metrics *observability.Metrics
	repo    student.Repository

	addStudent       *command.AddStudentHandler
	updateStudent    *command.UpdateStudentHandler
	deleteStudent    *command.DeleteStudentHandler
	addCourse        *command.AddCourseHandler
	removeCourse     *command.RemoveCourseHandler
	recordGrade      *command.RecordGradeHandler
	importStudents   *command.ImportStudentsHandler
	getStudent       *query.GetStudentHandler
	listStudents     *query.ListStudentsHandler
	searchStudents   *query.SearchStudentsHandler
	getStatistics    *query.GetStatisticsHandler
	getTopStudents   *query.GetTopStudentsHandler
	needingAttention *query.FindNeedingAttentionHandler
	getTranscript    *query.GetTranscriptHandler
	exportStudents   *query.ExportStudentsHandler
}

// New создаёт менеджер со всеми обработчиками поверх одного репозитория.
func New(repo student.Repository, log *logger.Logger, metrics *observability.Metrics) *Manager {
	if log == nil {
		log = logger.Default()
	}
	if metrics == nil {
		metrics = observability.New()
	}

	return &Manager{
		log:     log.With(logger.Component("manager")),
		metrics: metrics,
		repo:    repo,

		addStudent:       command.NewAddStudentHandler(repo, log),
		updateStudent:    command.NewUpdateStudentHandler(repo, log),
		deleteStudent:    command.NewDeleteStudentHandler(repo, log),
		addCourse:        command.NewAddCourseHandler(repo, log),
		removeCourse:     command.NewRemoveCourseHandler(repo, log),
		recordGrade:      command.NewRecordGradeHandler(repo, log),
		importStudents:   command.NewImportStudentsHandler(repo, log),
		getStudent:       query.NewGetStudentHandler(repo),
		listStudents:     query.NewListStudentsHandler(repo),
		searchStudents:   query.NewSearchStudentsHandler(repo),
		getStatistics:    query.NewGetStatisticsHandler(repo),
		getTopStudents:   query.NewGetTopStudentsHandler(repo),
		needingAttention: query.NewFindNeedingAttentionHandler(repo),
		getTranscript:    query.NewGetTranscriptHandler(repo),
		exportStudents:   query.NewExportStudentsHandler(repo),
	}
}

// begin выдаёт операционный логгер с корреляционным ID.
func (m *Manager) begin(operation string) *logger.Logger {
	return m.log.With(
		logger.Operation(operation),
		logger.CorrelationID(uuid.NewString()),
	)
}

// finish фиксирует исход операции в логах и метриках.
func (m *Manager) finish(ctx context.Context, log *logger.Logger, operation string, out Outcome) Outcome {
	m.metrics.RecordOperation(operation, out.OK)
	if count, err := m.repo.Count(ctx); err == nil {
		m.metrics.SetStudentCount(count)
	}

	if out.OK {
		log.Info("operation completed", logger.String("message", out.Message))
	} else {
		log.Warn("operation failed", logger.String("message", out.Message))
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Write use cases
// ─────────────────────────────────────────────────────────────────────────────

// AddStudent создаёт новую запись.
func (m *Manager) AddStudent(ctx context.Context, cmd command.AddStudentCommand) Outcome {
	const op = "AddStudent"
	log := m.begin(op)

	result, err := m.addStudent.Handle(ctx, cmd)
	switch {
	case err == nil:
		return m.finish(ctx, log, op,
			success("Student %s added successfully", result.Student.FullName()))
	case shared.IsDuplicate(err):
		return m.finish(ctx, log, op,
			failure("Student with ID %s already exists", student.NormalizeID(cmd.ID)))
	case shared.IsValidation(err):
		return m.finish(ctx, log, op, failure("Validation error: %s", shared.Message(err)))
	default:
		return m.finish(ctx, log, op, failure("Failed to add student: %s", shared.Message(err)))
	}
}

// UpdateStudent обновляет поля существующей записи. ID не меняется.
func (m *Manager) UpdateStudent(ctx context.Context, cmd command.UpdateStudentCommand) Outcome {
	const op = "UpdateStudent"
	log := m.begin(op)

	result, err := m.updateStudent.Handle(ctx, cmd)
	switch {
	case err == nil:
		return m.finish(ctx, log, op,
			success("Student %s updated successfully", result.Student.FullName()))
	case shared.IsNotFound(err):
		return m.finish(ctx, log, op,
			failure("Student with ID %s not found", student.NormalizeID(cmd.StudentID)))
	case shared.IsValidation(err):
		return m.finish(ctx, log, op, failure("Validation error: %s", shared.Message(err)))
	default:
		return m.finish(ctx, log, op, failure("Error updating student: %s", shared.Message(err)))
	}
}

// DeleteStudent удаляет запись по ID.
func (m *Manager) DeleteStudent(ctx context.Context, id string) Outcome {
	const op = "DeleteStudent"
	log := m.begin(op)

	// Имя нужно для сообщения, поэтому запись читается до удаления.
	existing, err := m.getStudent.Handle(ctx, query.GetStudentQuery{StudentID: id})
	if err != nil {
		if shared.IsNotFound(err) {
			return m.finish(ctx, log, op,
				failure("Student with ID %s not found", student.NormalizeID(id)))
		}
		return m.finish(ctx, log, op, failure("Error deleting student: %s", shared.Message(err)))
	}

	if _, err := m.deleteStudent.Handle(ctx, command.DeleteStudentCommand{StudentID: id}); err != nil {
		if shared.IsNotFound(err) {
			return m.finish(ctx, log, op,
				failure("Student with ID %s not found", student.NormalizeID(id)))
		}
		return m.finish(ctx, log, op, failure("Error deleting student: %s", shared.Message(err)))
	}

	return m.finish(ctx, log, op,
		success("Student %s deleted successfully", existing.Student.FullName))
}

// AddCourse записывает студента на курс.
func (m *Manager) AddCourse(ctx context.Context, id, course string) Outcome {
	const op = "AddCourse"
	log := m.begin(op)

	result, err := m.addCourse.Handle(ctx, command.AddCourseCommand{StudentID: id, Course: course})
	switch {
	case err == nil && result.Added:
		return m.finish(ctx, log, op, success("Course '%s' added", result.Course))
	case err == nil:
		return m.finish(ctx, log, op,
			failure("Course '%s' already exists for this student", course))
	case shared.IsNotFound(err):
		return m.finish(ctx, log, op,
			failure("Student with ID %s not found", student.NormalizeID(id)))
	case shared.IsValidation(err):
		return m.finish(ctx, log, op, failure("Validation error: %s", shared.Message(err)))
	default:
		return m.finish(ctx, log, op, failure("Error adding course: %s", shared.Message(err)))
	}
}

// RemoveCourse снимает студента с курса.
func (m *Manager) RemoveCourse(ctx context.Context, id, course string) Outcome {
	const op = "RemoveCourse"
	log := m.begin(op)

	result, err := m.removeCourse.Handle(ctx, command.RemoveCourseCommand{StudentID: id, Course: course})
	switch {
	case err == nil && result.Removed:
		return m.finish(ctx, log, op, success("Course '%s' removed", result.Course))
	case err == nil:
		return m.finish(ctx, log, op,
			failure("Course '%s' not found for this student", course))
	case shared.IsNotFound(err):
		return m.finish(ctx, log, op,
			failure("Student with ID %s not found", student.NormalizeID(id)))
	default:
		return m.finish(ctx, log, op, failure("Error removing course: %s", shared.Message(err)))
	}
}

// AddGrade выставляет оценку за курс.
func (m *Manager) AddGrade(ctx context.Context, id, course string, grade float64) Outcome {
	const op = "AddGrade"
	log := m.begin(op)

	result, err := m.recordGrade.Handle(ctx, command.RecordGradeCommand{
		StudentID: id,
		Course:    course,
		Grade:     grade,
	})
	switch {
	case err == nil:
		return m.finish(ctx, log, op,
			success("Grade %.1f added for course '%s'", result.Grade, result.Course))
	case shared.IsNotFound(err):
		return m.finish(ctx, log, op,
			failure("Student with ID %s not found", student.NormalizeID(id)))
	case shared.IsValidation(err):
		return m.finish(ctx, log, op, failure("Validation error: %s", shared.Message(err)))
	default:
		return m.finish(ctx, log, op, failure("Error adding grade: %s", shared.Message(err)))
	}
}

// ImportCSV загружает записи из CSV-файла.
func (m *Manager) ImportCSV(ctx context.Context, path string) (command.ImportStudentsResult, Outcome) {
	const op = "ImportCSV"
	log := m.begin(op)

	result, err := m.importStudents.Handle(ctx, command.ImportStudentsCommand{Path: path})
	if err != nil {
		return command.ImportStudentsResult{},
			m.finish(ctx, log, op, failure("Error importing data: %s", shared.Message(err)))
	}

	if result.Failed > 0 {
		return *result, m.finish(ctx, log, op, failure(
			"Import finished: %d imported, %d failed", result.Imported, result.Failed))
	}
	return *result, m.finish(ctx, log, op,
		success("Successfully imported %d students", result.Imported))
}

// ─────────────────────────────────────────────────────────────────────────────
// Read use cases
// ─────────────────────────────────────────────────────────────────────────────

// GetStudent возвращает запись по ID.
func (m *Manager) GetStudent(ctx context.Context, id string) (*query.StudentDTO, Outcome) {
	const op = "GetStudent"
	log := m.begin(op)

	result, err := m.getStudent.Handle(ctx, query.GetStudentQuery{StudentID: id})
	switch {
	case err == nil:
		return &result.Student, m.finish(ctx, log, op, success("Student found"))
	case shared.IsNotFound(err):
		return nil, m.finish(ctx, log, op,
			failure("Student with ID %s not found", student.NormalizeID(id)))
	default:
		return nil, m.finish(ctx, log, op,
			failure("Error retrieving student: %s", shared.Message(err)))
	}
}

// ListStudents возвращает всю коллекцию.
func (m *Manager) ListStudents(ctx context.Context) ([]query.StudentDTO, Outcome) {
	const op = "ListStudents"
	log := m.begin(op)

	result, err := m.listStudents.Handle(ctx, query.ListStudentsQuery{})
	if err != nil {
		return nil, m.finish(ctx, log, op,
			failure("Error listing students: %s", shared.Message(err)))
	}
	return result.Students, m.finish(ctx, log, op,
		success("Total students: %d", result.TotalCount))
}

// SearchStudents выполняет поиск по критериям.
func (m *Manager) SearchStudents(ctx context.Context, criteria student.Criteria) ([]query.StudentDTO, Outcome) {
	const op = "SearchStudents"
	log := m.begin(op)

	result, err := m.searchStudents.Handle(ctx, query.SearchStudentsQuery{Criteria: criteria})
	if err != nil {
		return nil, m.finish(ctx, log, op,
			failure("Error searching students: %s", shared.Message(err)))
	}
	if result.TotalMatched == 0 {
		return nil, m.finish(ctx, log, op,
			failure("No students found matching the criteria"))
	}
	return result.Students, m.finish(ctx, log, op,
		success("Found %d matching student(s)", result.TotalMatched))
}

// GetTranscript возвращает академическую выписку студента.
func (m *Manager) GetTranscript(ctx context.Context, id string) (*student.Transcript, Outcome) {
	const op = "GetTranscript"
	log := m.begin(op)

	result, err := m.getTranscript.Handle(ctx, query.GetTranscriptQuery{StudentID: id})
	switch {
	case err == nil:
		return &result.Transcript, m.finish(ctx, log, op,
			success("Transcript generated successfully"))
	case shared.IsNotFound(err):
		return nil, m.finish(ctx, log, op,
			failure("Student with ID %s not found", student.NormalizeID(id)))
	default:
		return nil, m.finish(ctx, log, op,
			failure("Error generating transcript: %s", shared.Message(err)))
	}
}

// GetStatistics возвращает агрегированную статистику.
func (m *Manager) GetStatistics(ctx context.Context) (*query.GetStatisticsResult, Outcome) {
	const op = "GetStatistics"
	log := m.begin(op)

	result, err := m.getStatistics.Handle(ctx, query.GetStatisticsQuery{})
	if err != nil {
		return nil, m.finish(ctx, log, op,
			failure("Error generating statistics: %s", shared.Message(err)))
	}
	return result, m.finish(ctx, log, op, success("Statistics generated successfully"))
}

// TopStudents возвращает топ-N по GPA.
func (m *Manager) TopStudents(ctx context.Context, limit int) ([]query.StudentDTO, Outcome) {
	const op = "TopStudents"
	log := m.begin(op)

	result, err := m.getTopStudents.Handle(ctx, query.GetTopStudentsQuery{Limit: limit})
	if err != nil {
		return nil, m.finish(ctx, log, op,
			failure("Error retrieving top students: %s", shared.Message(err)))
	}
	return result.Students, m.finish(ctx, log, op,
		success("Top %d student(s) by GPA", len(result.Students)))
}

// StudentsNeedingAttention возвращает студентов с GPA не выше порога.
func (m *Manager) StudentsNeedingAttention(ctx context.Context) ([]query.StudentDTO, Outcome) {
	const op = "StudentsNeedingAttention"
	log := m.begin(op)

	result, err := m.needingAttention.Handle(ctx, query.FindNeedingAttentionQuery{})
	if err != nil {
		return nil, m.finish(ctx, log, op,
			failure("Error retrieving students: %s", shared.Message(err)))
	}
	return result.Students, m.finish(ctx, log, op,
		success("%d student(s) need attention", len(result.Students)))
}

// ExportCSV выгружает коллекцию в CSV-файл.
func (m *Manager) ExportCSV(ctx context.Context, path string) Outcome {
	const op = "ExportCSV"
	log := m.begin(op)

	result, err := m.exportStudents.Handle(ctx, query.ExportStudentsQuery{Path: path})
	if err != nil {
		return m.finish(ctx, log, op,
			failure("Error exporting data: %s", shared.Message(err)))
	}
	return m.finish(ctx, log, op,
		success("Data exported successfully to %s (%d records)", path, result.Exported))
}

// Metrics возвращает счётчики операций текущей сессии.
func (m *Manager) Metrics() *observability.Metrics {
	return m.metrics
}
