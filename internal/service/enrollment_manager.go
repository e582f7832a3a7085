package service

import (
	appErrors "github.com/noah-isme/university-registry/pkg/errors"
)

// DefaultCourseCapacity caps how many students one course may hold.
const DefaultCourseCapacity = 50

// EnrollmentManager tracks the ordered student roster of each course.
type EnrollmentManager struct {
	rosters  map[string][]string
	capacity int
}

// NewEnrollmentManager constructs an empty manager. A non-positive capacity falls back to the default.
func NewEnrollmentManager(capacity int) *EnrollmentManager {
	if capacity <= 0 {
		capacity = DefaultCourseCapacity
	}
	return &EnrollmentManager{
		rosters:  make(map[string][]string),
		capacity: capacity,
	}
}

// Capacity returns the per-course limit.
func (m *EnrollmentManager) Capacity() int {
	return m.capacity
}

// CanEnroll checks duplicate and capacity rules without mutating the roster.
func (m *EnrollmentManager) CanEnroll(courseCode, studentID string) error {
	roster := m.rosters[courseCode]
	for _, id := range roster {
		if id == studentID {
			return appErrors.Clonef(appErrors.ErrEnrollment, "student %s already enrolled in course %s", studentID, courseCode)
		}
	}
	if len(roster) >= m.capacity {
		return appErrors.Clonef(appErrors.ErrEnrollment, "course %s is full (capacity %d)", courseCode, m.capacity)
	}
	return nil
}

// Enroll appends the student to the course roster.
func (m *EnrollmentManager) Enroll(courseCode, studentID string) error {
	if err := m.CanEnroll(courseCode, studentID); err != nil {
		return err
	}
	m.rosters[courseCode] = append(m.rosters[courseCode], studentID)
	return nil
}

// Drop removes the student from the course roster, keeping the order of the rest.
func (m *EnrollmentManager) Drop(courseCode, studentID string) error {
	roster := m.rosters[courseCode]
	for i, id := range roster {
		if id != studentID {
			continue
		}
		updated := make([]string, 0, len(roster)-1)
		updated = append(updated, roster[:i]...)
		updated = append(updated, roster[i+1:]...)
		m.rosters[courseCode] = updated
		return nil
	}
	return appErrors.Clonef(appErrors.ErrEnrollment, "student %s not enrolled in course %s", studentID, courseCode)
}

// EnrolledStudents returns a copy of the roster, empty for unknown courses.
func (m *EnrollmentManager) EnrolledStudents(courseCode string) []string {
	return append([]string{}, m.rosters[courseCode]...)
}

// Count returns the number of students enrolled in the course.
func (m *EnrollmentManager) Count(courseCode string) int {
	return len(m.rosters[courseCode])
}
