package service

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()
	m.ObserveOperation("enroll_student", nil)
	m.ObserveOperation("enroll_student", nil)
	m.ObserveOperation("enroll_student", errors.New("full"))
	m.SetEntityCount(EntityCourses, 3)
	m.ObserveGrade(95)
	m.ObserveCommand("enroll", 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("enroll_student", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("enroll_student", OutcomeFailure)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.entities.WithLabelValues(EntityCourses)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.commandDuration))
}

func TestMetricsServiceWriteText(t *testing.T) {
	m := NewMetricsService()
	m.ObserveOperation("add_student", nil)

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))
	assert.Contains(t, buf.String(), "# TYPE registry_operations_total counter")
	assert.Contains(t, buf.String(), `registry_operations_total{operation="add_student",outcome="success"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.ObserveOperation("x", nil)
		m.SetEntityCount("x", 1)
		m.ObserveGrade(1)
		m.ObserveCommand("x", time.Second)
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteText(&bytes.Buffer{}))
}
