package service

import (
	"github.com/noah-isme/university-registry/internal/dto"
	appErrors "github.com/noah-isme/university-registry/pkg/errors"
)

const (
	minGrade = 0.0
	maxGrade = 100.0

	// DefaultFailingThreshold is the grade below which a student fails.
	DefaultFailingThreshold = 40.0
)

// GradeBook maps student identifiers to a single grade each, remembering the order of first assignment.
type GradeBook struct {
	grades           map[string]float64
	order            []string
	failingThreshold float64
}

// NewGradeBook constructs an empty grade book. A non-positive threshold falls back to the default.
func NewGradeBook(failingThreshold float64) *GradeBook {
	if failingThreshold <= 0 {
		failingThreshold = DefaultFailingThreshold
	}
	return &GradeBook{
		grades:           make(map[string]float64),
		failingThreshold: failingThreshold,
	}
}

// AddGrade inserts or overwrites a grade. Overwriting keeps the original position.
func (b *GradeBook) AddGrade(studentID string, grade float64) error {
	if !(grade >= minGrade && grade <= maxGrade) {
		return appErrors.Clonef(appErrors.ErrGrade, "grade must be between 0 and 100, given %v", grade)
	}
	if _, exists := b.grades[studentID]; !exists {
		b.order = append(b.order, studentID)
	}
	b.grades[studentID] = grade
	return nil
}

// Grade returns the grade recorded for the student.
func (b *GradeBook) Grade(studentID string) (float64, error) {
	grade, ok := b.grades[studentID]
	if !ok {
		return 0, appErrors.Clonef(appErrors.ErrGrade, "no grade found for student %s", studentID)
	}
	return grade, nil
}

// Len reports how many students hold a grade.
func (b *GradeBook) Len() int {
	return len(b.order)
}

// Average returns the arithmetic mean, or 0 for an empty book.
func (b *GradeBook) Average() float64 {
	if len(b.order) == 0 {
		return 0
	}
	var total float64
	for _, id := range b.order {
		total += b.grades[id]
	}
	return total / float64(len(b.order))
}

// FailingStudents lists students strictly below the failing threshold, in assignment order.
func (b *GradeBook) FailingStudents() []string {
	failing := make([]string, 0)
	for _, id := range b.order {
		if b.grades[id] < b.failingThreshold {
			failing = append(failing, id)
		}
	}
	return failing
}

// HighestGrade returns the maximum grade. ok is false when the book is empty.
func (b *GradeBook) HighestGrade() (highest float64, ok bool) {
	for i, id := range b.order {
		if grade := b.grades[id]; i == 0 || grade > highest {
			highest = grade
		}
	}
	return highest, len(b.order) > 0
}

// Entries returns every grade in assignment order.
func (b *GradeBook) Entries() []dto.GradeEntry {
	entries := make([]dto.GradeEntry, 0, len(b.order))
	for _, id := range b.order {
		entries = append(entries, dto.GradeEntry{StudentID: id, Grade: b.grades[id]})
	}
	return entries
}
