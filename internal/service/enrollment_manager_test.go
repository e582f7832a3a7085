package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/university-registry/pkg/errors"
)

func TestEnrollmentManagerRejectsDuplicates(t *testing.T) {
	m := NewEnrollmentManager(0)
	require.NoError(t, m.Enroll("CS101", "S001"))

	err := m.Enroll("CS101", "S001")
	assert.True(t, errors.Is(err, appErrors.ErrEnrollment))
	assert.Equal(t, []string{"S001"}, m.EnrolledStudents("CS101"))
}

func TestEnrollmentManagerCapacity(t *testing.T) {
	m := NewEnrollmentManager(0)
	assert.Equal(t, DefaultCourseCapacity, m.Capacity())
	for i := 0; i < DefaultCourseCapacity; i++ {
		require.NoError(t, m.Enroll("CS101", fmt.Sprintf("S%03d", i)))
	}
	err := m.Enroll("CS101", "S999")
	assert.True(t, errors.Is(err, appErrors.ErrEnrollment))
	assert.Equal(t, DefaultCourseCapacity, m.Count("CS101"))

	small := NewEnrollmentManager(1)
	require.NoError(t, small.Enroll("CS101", "S001"))
	assert.Error(t, small.Enroll("CS101", "S002"))
	require.NoError(t, small.Enroll("CS102", "S002"))
}

func TestEnrollmentManagerDropPreservesOrder(t *testing.T) {
	m := NewEnrollmentManager(0)
	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, m.Enroll("CS101", id))
	}
	require.NoError(t, m.Drop("CS101", "B"))
	assert.Equal(t, []string{"A", "C"}, m.EnrolledStudents("CS101"))

	err := m.Drop("CS101", "B")
	assert.True(t, errors.Is(err, appErrors.ErrEnrollment))
	assert.Error(t, m.Drop("CS999", "A"))

	require.NoError(t, m.Enroll("CS101", "B"))
	assert.Equal(t, []string{"A", "C", "B"}, m.EnrolledStudents("CS101"))
}

func TestEnrollmentManagerRosterIsCopy(t *testing.T) {
	m := NewEnrollmentManager(0)
	roster := m.EnrolledStudents("unknown")
	assert.NotNil(t, roster)
	assert.Empty(t, roster)
	assert.Equal(t, 0, m.Count("unknown"))

	require.NoError(t, m.Enroll("CS101", "S001"))
	roster = m.EnrolledStudents("CS101")
	roster[0] = "tampered"
	assert.Equal(t, []string{"S001"}, m.EnrolledStudents("CS101"))
}
