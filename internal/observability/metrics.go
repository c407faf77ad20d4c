// Package observability provides in-process operation metrics for the
// registry. Metrics live in a private Prometheus registry: there is no
// network listener, the counters back the session summary printed on
// exit and are available to tests through Gather.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Status labels for the operations counter.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Metrics tracks registry operation counts and collection size.
type Metrics struct {
	enabled    bool
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	students   prometheus.Gauge
}

// New creates a Metrics instance with its own private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "student_registry",
		Name:      "operations_total",
		Help:      "Registry operations by name and outcome.",
	}, []string{"operation", "status"})

	students := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "student_registry",
		Name:      "students",
		Help:      "Current number of student records.",
	})

	registry.MustRegister(operations, students)

	return &Metrics{
		enabled:    true,
		registry:   registry,
		operations: operations,
		students:   students,
	}
}

// NewDisabled creates a Metrics instance that discards all updates.
// Selected when metrics collection is switched off in configuration;
// callers keep recording without checking a flag.
func NewDisabled() *Metrics {
	m := New()
	m.enabled = false
	return m
}

// RecordOperation increments the counter for one finished operation.
func (m *Metrics) RecordOperation(operation string, ok bool) {
	if !m.enabled {
		return
	}
	status := StatusOK
	if !ok {
		status = StatusFailed
	}
	m.operations.WithLabelValues(operation, status).Inc()
}

// SetStudentCount updates the collection size gauge.
func (m *Metrics) SetStudentCount(n int) {
	if !m.enabled {
		return
	}
	m.students.Set(float64(n))
}

// Gather exposes the raw metric families, mainly for the exit summary
// and tests.
func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}

// OperationCounts flattens the operations counter into a
// "operation/status" -> count map for display.
func (m *Metrics) OperationCounts() map[string]float64 {
	counts := make(map[string]float64)

	families, err := m.registry.Gather()
	if err != nil {
		return counts
	}
	for _, family := range families {
		if family.GetName() != "student_registry_operations_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			var operation, status string
			for _, label := range metric.GetLabel() {
				switch label.GetName() {
				case "operation":
					operation = label.GetValue()
				case "status":
					status = label.GetValue()
				}
			}
			counts[operation+"/"+status] = metric.GetCounter().GetValue()
		}
	}
	return counts
}
