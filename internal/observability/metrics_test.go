package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordsOperations(t *testing.T) {
	m := New()

	m.RecordOperation("AddStudent", true)
	m.RecordOperation("AddStudent", true)
	m.RecordOperation("AddStudent", false)
	m.SetStudentCount(2)

	counts := m.OperationCounts()
	assert.Equal(t, 2.0, counts["AddStudent/ok"])
	assert.Equal(t, 1.0, counts["AddStudent/failed"])
}

func TestMetrics_DisabledDiscardsEverything(t *testing.T) {
	m := NewDisabled()

	m.RecordOperation("AddStudent", true)
	m.SetStudentCount(5)

	assert.Empty(t, m.OperationCounts())
}
