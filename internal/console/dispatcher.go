package console

import (
	"bytes"
	"fmt"
	"io"
)

// Kind identifies a menu command. Values match the menu numbering.
type Kind int

// Menu commands.
const (
	ShowStudents Kind = iota + 1
	ShowCourses
	EnrollStudent
	AssignGrade
	ShowGrades
	ShowEnrollment
	Exit
)

var kindNames = map[Kind]string{
	ShowStudents:   "show_students",
	ShowCourses:    "show_courses",
	EnrollStudent:  "enroll_student",
	AssignGrade:    "assign_grade",
	ShowGrades:     "show_grades",
	ShowEnrollment: "show_enrollment",
	Exit:           "exit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Command is a parsed menu request.
type Command struct {
	Kind       Kind
	CourseCode string
	StudentID  string
	Grade      float64
}

// Result is the text a command produced and whether the session should end.
type Result struct {
	Output string
	Exit   bool
}

// Registry is the subset of the university system the console drives.
type Registry interface {
	ReportAllStudents(w io.Writer)
	ReportAllCourses(w io.Writer)
	EnrollStudent(courseCode, studentID string) error
	AssignGrade(studentID string, grade float64) error
	ReportGrades(w io.Writer)
	DisplayCourseEnrollment(w io.Writer, courseCode string)
}

// Dispatcher executes commands against a registry independently of where they were read from.
type Dispatcher struct {
	registry Registry
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(registry Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch runs a single command.
func (d *Dispatcher) Dispatch(cmd Command) (Result, error) {
	var buf bytes.Buffer
	switch cmd.Kind {
	case ShowStudents:
		d.registry.ReportAllStudents(&buf)
	case ShowCourses:
		d.registry.ReportAllCourses(&buf)
	case EnrollStudent:
		if err := d.registry.EnrollStudent(cmd.CourseCode, cmd.StudentID); err != nil {
			return Result{}, err
		}
		buf.WriteString("Enrollment successful.\n")
	case AssignGrade:
		if err := d.registry.AssignGrade(cmd.StudentID, cmd.Grade); err != nil {
			return Result{}, err
		}
		buf.WriteString("Grade assigned successfully.\n")
	case ShowGrades:
		d.registry.ReportGrades(&buf)
	case ShowEnrollment:
		d.registry.DisplayCourseEnrollment(&buf, cmd.CourseCode)
	case Exit:
		return Result{Output: "Exiting...\n", Exit: true}, nil
	default:
		buf.WriteString("Invalid choice. Please try again.\n")
	}
	return Result{Output: buf.String()}, nil
}
