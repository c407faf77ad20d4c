package query

import (
	"context"
	"math"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STATISTICS QUERY
// Агрегированная статистика по всей коллекции: число записей, средний
// GPA, распределение по специальностям и возрастная гистограмма.
// ══════════════════════════════════════════════════════════════════════════════

// Age bucket labels. The last bucket doubles as the catch-all: every
// age that does not fall into the first three buckets lands in it,
// including ages below 18. That fallthrough mirrors the historical
// bucketing and is pinned by tests.
const (
	Bucket18to20 = "18-20"
	Bucket21to25 = "21-25"
	Bucket26to30 = "26-30"
	Bucket30Plus = "30+"
)

// UndeclaredMajor is the distribution label for an empty major.
const UndeclaredMajor = "Undeclared"

// GetStatisticsQuery запрашивает статистику; параметров нет.
type GetStatisticsQuery struct{}

// GetStatisticsResult содержит агрегированную статистику.
type GetStatisticsResult struct {
	// TotalStudents - общее число записей.
	TotalStudents int `json:"total_students"`

	// AverageGPA - средний GPA по записям с gpa > 0, округлённый
	// до двух знаков; 0.0, если таких записей нет.
	AverageGPA float64 `json:"average_gpa"`

	// MajorDistribution - специальность -> число студентов.
	MajorDistribution map[string]int `json:"major_distribution"`

	// AgeBuckets - возрастная гистограмма с фиксированными корзинами.
	AgeBuckets map[string]int `json:"age_buckets"`
}

// GetStatisticsHandler обрабатывает запрос статистики.
type GetStatisticsHandler struct {
	repo student.Repository
}

// NewGetStatisticsHandler создаёт новый обработчик статистики.
func NewGetStatisticsHandler(repo student.Repository) *GetStatisticsHandler {
	return &GetStatisticsHandler{repo: repo}
}

// Handle вычисляет статистику за один проход по коллекции.
func (h *GetStatisticsHandler) Handle(ctx context.Context, _ GetStatisticsQuery) (*GetStatisticsResult, error) {
	students, err := h.repo.GetAll(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetStatistics", shared.ErrPersistence,
			"failed to load collection", err)
	}

	result := &GetStatisticsResult{
		TotalStudents:     len(students),
		MajorDistribution: make(map[string]int),
		AgeBuckets: map[string]int{
			Bucket18to20: 0,
			Bucket21to25: 0,
			Bucket26to30: 0,
			Bucket30Plus: 0,
		},
	}

	now := timeutil.Now()
	var gpaSum float64
	var gpaCount int

	for _, s := range students {
		if s.GPA > 0 {
			gpaSum += s.GPA
			gpaCount++
		}

		result.MajorDistribution[s.DisplayMajor()]++
		result.AgeBuckets[ageBucket(s.AgeAt(now))]++
	}

	if gpaCount > 0 {
		result.AverageGPA = math.Round(gpaSum/float64(gpaCount)*100) / 100
	}

	return result, nil
}

// ageBucket maps an age to its histogram bucket.
func ageBucket(age int) string {
	switch {
	case age >= 18 && age <= 20:
		return Bucket18to20
	case age >= 21 && age <= 25:
		return Bucket21to25
	case age >= 26 && age <= 30:
		return Bucket26to30
	default:
		return Bucket30Plus
	}
}
