package models

import (
	"fmt"
	"io"

	appErrors "github.com/noah-isme/university-registry/pkg/errors"
)

// DepartmentParams is the validated input for a department.
type DepartmentParams struct {
	Name     string  `json:"name" validate:"required"`
	Location string  `json:"location" validate:"required"`
	Budget   float64 `json:"budget" validate:"gte=0"`
}

// Department groups professors under a budget.
type Department struct {
	Name     string
	Location string
	Budget   float64

	professorIDs []string
}

// NewDepartment validates and builds a department.
func NewDepartment(p DepartmentParams) (*Department, error) {
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	return &Department{Name: p.Name, Location: p.Location, Budget: p.Budget}, nil
}

// ProfessorIDs returns member IDs in assignment order.
func (d *Department) ProfessorIDs() []string {
	return append([]string(nil), d.professorIDs...)
}

// AddProfessor appends a member.
func (d *Department) AddProfessor(id string) error {
	for _, existing := range d.professorIDs {
		if existing == id {
			return appErrors.Clonef(appErrors.ErrUniversity, "professor %s already belongs to department %s", id, d.Name)
		}
	}
	d.professorIDs = append(d.professorIDs, id)
	return nil
}

// Display writes the department and the resolved member professors.
func (d *Department) Display(w io.Writer, professors []*Professor) {
	fmt.Fprintf(w, "Department: %s, Location: %s, Budget: $%.2f\n", d.Name, d.Location, d.Budget)
	if len(professors) == 0 {
		fmt.Fprintln(w, "No professors assigned.")
		return
	}
	fmt.Fprintln(w, "Professors:")
	for _, p := range professors {
		p.Display(w)
	}
}

// Clone returns a deep copy.
func (d *Department) Clone() *Department {
	clone := *d
	clone.professorIDs = d.ProfessorIDs()
	return &clone
}
