package query

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// SEARCH STUDENTS QUERY
// Поиск студентов по набору именованных предикатов (AND-семантика).
// Пустой набор критериев возвращает всю коллекцию.
// ══════════════════════════════════════════════════════════════════════════════

// SearchStudentsQuery содержит критерии поиска.
type SearchStudentsQuery struct {
	// Criteria - набор предикатов; все заданные должны выполняться.
	Criteria student.Criteria
}

// Validate проверяет корректность числовых границ.
func (q *SearchStudentsQuery) Validate() error {
	c := q.Criteria
	if c.GPAMin != nil && (*c.GPAMin < student.MinGPA || *c.GPAMin > student.MaxGPA) {
		return shared.NewDomainError("query", "SearchStudents", shared.ErrValueOutOfRange,
			"gpa lower bound out of range")
	}
	if c.GPAMax != nil && (*c.GPAMax < student.MinGPA || *c.GPAMax > student.MaxGPA) {
		return shared.NewDomainError("query", "SearchStudents", shared.ErrValueOutOfRange,
			"gpa upper bound out of range")
	}
	if c.AgeMin != nil && *c.AgeMin < 0 {
		return shared.NewDomainError("query", "SearchStudents", shared.ErrValueOutOfRange,
			"age lower bound cannot be negative")
	}
	if c.AgeMax != nil && *c.AgeMax < 0 {
		return shared.NewDomainError("query", "SearchStudents", shared.ErrValueOutOfRange,
			"age upper bound cannot be negative")
	}
	return nil
}

// SearchStudentsResult содержит найденных студентов.
type SearchStudentsResult struct {
	// Students - совпавшие записи в порядке хранения.
	Students []StudentDTO `json:"students"`

	// TotalMatched - число совпадений.
	TotalMatched int `json:"total_matched"`
}

// SearchStudentsHandler обрабатывает поисковые запросы.
type SearchStudentsHandler struct {
	repo student.Repository
}

// NewSearchStudentsHandler создаёт новый обработчик поиска.
func NewSearchStudentsHandler(repo student.Repository) *SearchStudentsHandler {
	return &SearchStudentsHandler{repo: repo}
}

// Handle выполняет поиск. Предикаты вычисляются в памяти над полной
// коллекцией: реестр однопользовательский, объём данных невелик.
func (h *SearchStudentsHandler) Handle(ctx context.Context, query SearchStudentsQuery) (*SearchStudentsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	students, err := h.repo.GetAll(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "SearchStudents", shared.ErrPersistence,
			"failed to load collection", err)
	}

	now := timeutil.Now()
	matched := make([]StudentDTO, 0, len(students))
	for _, s := range students {
		if query.Criteria.Matches(s, now) {
			matched = append(matched, NewStudentDTO(s))
		}
	}

	return &SearchStudentsResult{
		Students:     matched,
		TotalMatched: len(matched),
	}, nil
}
