package dto

// GradeEntry is one student's grade in assignment order.
type GradeEntry struct {
	StudentID string  `json:"student_id"`
	Grade     float64 `json:"grade"`
}

// GradeStatistics summarises the grade book.
type GradeStatistics struct {
	Count           int      `json:"count"`
	Average         float64  `json:"average"`
	Highest         float64  `json:"highest"`
	HasHighest      bool     `json:"has_highest"`
	FailingStudents []string `json:"failing_students"`
}

// PayrollEntry is the computed payment for one person.
type PayrollEntry struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Role    string  `json:"role"`
	Payment float64 `json:"payment"`
}
