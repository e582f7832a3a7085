package models

import (
	"fmt"
	"io"
)

// CourseParams is the validated input for a course.
type CourseParams struct {
	Code         string  `json:"code" validate:"required"`
	Title        string  `json:"title" validate:"required"`
	Credits      float64 `json:"credits" validate:"gt=0"`
	Description  string  `json:"description" validate:"required"`
	InstructorID string  `json:"instructor_id"`
}

// Course is a catalog entry. The instructor is referenced by professor ID and
// resolved through the registry that owns both.
type Course struct {
	Code         string
	Title        string
	Credits      float64
	Description  string
	InstructorID string
}

// NewCourse validates and builds a course.
func NewCourse(p CourseParams) (*Course, error) {
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	return &Course{
		Code:         p.Code,
		Title:        p.Title,
		Credits:      p.Credits,
		Description:  p.Description,
		InstructorID: p.InstructorID,
	}, nil
}

// HasInstructor reports whether an instructor is referenced.
func (c *Course) HasInstructor() bool {
	return c.InstructorID != ""
}

// Display writes the course and its resolved instructor, if any.
func (c *Course) Display(w io.Writer, instructor *Professor) {
	fmt.Fprintf(w, "Course: %s (%s) - %.1f credits\n", c.Title, c.Code, c.Credits)
	fmt.Fprintf(w, "Description: %s\n", c.Description)
	if instructor == nil {
		fmt.Fprintln(w, "No instructor assigned.")
		return
	}
	fmt.Fprint(w, "Instructor: ")
	instructor.Display(w)
}

// Clone returns a copy.
func (c *Course) Clone() *Course {
	clone := *c
	return &clone
}
