package service

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Operation outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// MetricsService encapsulates Prometheus instrumentation for registry operations and console commands.
type MetricsService struct {
	registry        *prometheus.Registry
	operations      *prometheus.CounterVec
	entities        *prometheus.GaugeVec
	grades          prometheus.Histogram
	commandDuration *prometheus.HistogramVec
}

// NewMetricsService registers the registry collectors on a private Prometheus registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_operations_total",
		Help: "Total registry mutations by operation and outcome",
	}, []string{"operation", "outcome"})

	entities := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "registry_entities",
		Help: "Number of registered entities by kind",
	}, []string{"kind"})

	grades := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "registry_assigned_grades",
		Help:    "Distribution of assigned grades",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})

	commandDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_command_duration_seconds",
		Help:    "Duration of console commands in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"command"})

	registry.MustRegister(operations, entities, grades, commandDuration)

	return &MetricsService{
		registry:        registry,
		operations:      operations,
		entities:        entities,
		grades:          grades,
		commandDuration: commandDuration,
	}
}

// Registry exposes the underlying Prometheus registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveOperation counts a registry mutation, labelled by whether err is nil.
func (m *MetricsService) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// SetEntityCount records the current size of a collection.
func (m *MetricsService) SetEntityCount(kind string, count int) {
	if m == nil {
		return
	}
	m.entities.WithLabelValues(kind).Set(float64(count))
}

// ObserveGrade records an accepted grade.
func (m *MetricsService) ObserveGrade(grade float64) {
	if m == nil {
		return
	}
	m.grades.Observe(grade)
}

// ObserveCommand records how long a console command took.
func (m *MetricsService) ObserveCommand(command string, duration time.Duration) {
	if m == nil {
		return
	}
	m.commandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// WriteText dumps every collected family in the Prometheus text exposition format.
func (m *MetricsService) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("write metric family %s: %w", family.GetName(), err)
		}
	}
	return nil
}
