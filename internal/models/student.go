package models

import (
	"fmt"
	"io"
	"strings"

	appErrors "github.com/noah-isme/university-registry/pkg/errors"
)

// StudentKind tags the student variant.
type StudentKind string

// Student variants.
const (
	StudentKindRegular       StudentKind = "REGULAR"
	StudentKindUndergraduate StudentKind = "UNDERGRADUATE"
	StudentKindGraduate      StudentKind = "GRADUATE"
)

// DefaultStudentCourseLimit caps how many courses one student may hold.
const DefaultStudentCourseLimit = 5

// tuition is the per-term charge for each student variant.
var tuition = map[StudentKind]float64{
	StudentKindRegular:       5000,
	StudentKindUndergraduate: 4000,
	StudentKindGraduate:      3500,
}

// StudentParams is the validated input shared by every student variant.
type StudentParams struct {
	Identity
	EnrollmentDate Date    `json:"enrollment_date"`
	Program        string  `json:"program" validate:"required"`
	GPA            float64 `json:"gpa" validate:"gte=0,lte=4"`
}

// UndergraduateDetails extends a student with degree information.
type UndergraduateDetails struct {
	Major              string `json:"major" validate:"required"`
	Minor              string `json:"minor"`
	ExpectedGraduation Date   `json:"expected_graduation"`
}

// GraduateDetails extends a student with thesis supervision information.
type GraduateDetails struct {
	Advisor       string `json:"advisor" validate:"required"`
	ThesisTitle   string `json:"thesis_title" validate:"required"`
	ResearchTopic string `json:"research_topic"`
}

// Student is a learner registered at the university.
type Student struct {
	Identity
	Kind           StudentKind
	EnrollmentDate Date
	Program        string
	GPA            float64
	Undergraduate  *UndergraduateDetails
	Graduate       *GraduateDetails

	courses []string
}

// NewStudent builds a regular student.
func NewStudent(p StudentParams) (*Student, error) {
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	return studentFromParams(StudentKindRegular, p), nil
}

// NewUndergraduateStudent builds an undergraduate student.
func NewUndergraduateStudent(p StudentParams, details UndergraduateDetails) (*Student, error) {
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	if err := validateStruct(details); err != nil {
		return nil, err
	}
	s := studentFromParams(StudentKindUndergraduate, p)
	s.Undergraduate = &details
	return s, nil
}

// NewGraduateStudent builds a graduate student.
func NewGraduateStudent(p StudentParams, details GraduateDetails) (*Student, error) {
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	if err := validateStruct(details); err != nil {
		return nil, err
	}
	s := studentFromParams(StudentKindGraduate, p)
	s.Graduate = &details
	return s, nil
}

func studentFromParams(kind StudentKind, p StudentParams) *Student {
	return &Student{
		Identity:       p.Identity,
		Kind:           kind,
		EnrollmentDate: p.EnrollmentDate,
		Program:        p.Program,
		GPA:            p.GPA,
	}
}

// CalculatePayment returns the tuition owed by the student's variant.
func (s *Student) CalculatePayment() float64 {
	return tuition[s.Kind]
}

// Display writes the student's details.
func (s *Student) Display(w io.Writer) {
	fmt.Fprintf(w, "Student: %s, ID: %s, Age: %d, Enrollment Date: %s, Program: %s, GPA: %.2f\n",
		s.Name, s.ID, s.Age, s.EnrollmentDate, s.Program, s.GPA)
	if len(s.courses) > 0 {
		fmt.Fprintf(w, "Courses: %s\n", strings.Join(s.courses, " "))
	}
	switch s.Kind {
	case StudentKindUndergraduate:
		if u := s.Undergraduate; u != nil {
			minor := u.Minor
			if minor == "" {
				minor = "none"
			}
			fmt.Fprintf(w, "Undergraduate | Major: %s, Minor: %s, Expected Graduation: %s\n", u.Major, minor, u.ExpectedGraduation)
		}
	case StudentKindGraduate:
		if g := s.Graduate; g != nil {
			fmt.Fprintf(w, "Graduate | Advisor: %s, Thesis: %s", g.Advisor, g.ThesisTitle)
			if g.ResearchTopic != "" {
				fmt.Fprintf(w, ", Research Topic: %s", g.ResearchTopic)
			}
			fmt.Fprintln(w)
		}
	}
}

// Courses returns the enrolled course codes in enrollment order.
func (s *Student) Courses() []string {
	return append([]string(nil), s.courses...)
}

// HasCourse reports whether the student is enrolled in the course.
func (s *Student) HasCourse(code string) bool {
	for _, c := range s.courses {
		if c == code {
			return true
		}
	}
	return false
}

// CanEnroll checks the per-student course limit and duplicates without mutating.
func (s *Student) CanEnroll(code string, limit int) error {
	if limit <= 0 {
		limit = DefaultStudentCourseLimit
	}
	if s.HasCourse(code) {
		return appErrors.Clonef(appErrors.ErrEnrollment, "student %s is already enrolled in course %s", s.ID, code)
	}
	if len(s.courses) >= limit {
		return appErrors.Clonef(appErrors.ErrEnrollment, "course limit reached for student %s", s.ID)
	}
	return nil
}

// EnrollCourse records a course on the student.
func (s *Student) EnrollCourse(code string, limit int) error {
	if err := s.CanEnroll(code, limit); err != nil {
		return err
	}
	s.courses = append(s.courses, code)
	return nil
}

// DropCourse removes a course, keeping the order of the others.
func (s *Student) DropCourse(code string) error {
	for i, c := range s.courses {
		if c == code {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			return nil
		}
	}
	return appErrors.Clonef(appErrors.ErrEnrollment, "student %s not enrolled in course %s", s.ID, code)
}

// SetProgram updates the program name.
func (s *Student) SetProgram(program string) error {
	if err := validateField("program", program, "required"); err != nil {
		return err
	}
	s.Program = program
	return nil
}

// SetGPA updates the GPA within 0..4.
func (s *Student) SetGPA(gpa float64) error {
	if err := validateField("gpa", gpa, "gte=0,lte=4"); err != nil {
		return err
	}
	s.GPA = gpa
	return nil
}

// SetEnrollmentDate updates the enrollment date.
func (s *Student) SetEnrollmentDate(d Date) error {
	if err := validateStruct(d); err != nil {
		return err
	}
	s.EnrollmentDate = d
	return nil
}

// Clone returns a deep copy.
func (s *Student) Clone() *Student {
	clone := *s
	clone.courses = s.Courses()
	if s.Undergraduate != nil {
		u := *s.Undergraduate
		clone.Undergraduate = &u
	}
	if s.Graduate != nil {
		g := *s.Graduate
		clone.Graduate = &g
	}
	return &clone
}
