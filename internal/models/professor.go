package models

import (
	"fmt"
	"io"
)

// ProfessorRank tags the professor variant.
type ProfessorRank string

// Professor ranks.
const (
	RankProfessor ProfessorRank = "PROFESSOR"
	RankAssistant ProfessorRank = "ASSISTANT"
	RankAssociate ProfessorRank = "ASSOCIATE"
	RankFull      ProfessorRank = "FULL"
)

const (
	assistantRatePerYear        = 100.0
	associateRatePerPublication = 50.0
	fullGrantShare              = 0.05
)

// payScales maps each rank to its payment formula.
var payScales = map[ProfessorRank]func(p *Professor) float64{
	RankProfessor: func(p *Professor) float64 { return p.BaseSalary },
	RankAssistant: func(p *Professor) float64 {
		return p.BaseSalary + assistantRatePerYear*float64(p.YearsOfService)
	},
	RankAssociate: func(p *Professor) float64 {
		return p.BaseSalary + associateRatePerPublication*float64(p.Publications)
	},
	RankFull: func(p *Professor) float64 {
		return p.BaseSalary + fullGrantShare*p.ResearchGrants
	},
}

var rankTitles = map[ProfessorRank]string{
	RankProfessor: "Professor",
	RankAssistant: "Assistant Professor",
	RankAssociate: "Associate Professor",
	RankFull:      "Full Professor",
}

// Title returns the display name of the rank.
func (r ProfessorRank) Title() string {
	if title, ok := rankTitles[r]; ok {
		return title
	}
	return string(r)
}

// ProfessorParams is the validated input shared by every professor rank.
type ProfessorParams struct {
	Identity
	Department     string  `json:"department"`
	Specialization string  `json:"specialization" validate:"required"`
	HireDate       Date    `json:"hire_date"`
	BaseSalary     float64 `json:"base_salary" validate:"gte=0"`
}

type rankParams struct {
	YearsOfService int     `json:"years_of_service" validate:"gte=0"`
	Publications   int     `json:"publications" validate:"gte=0"`
	ResearchGrants float64 `json:"research_grants" validate:"gte=0"`
}

// Professor is a member of the teaching staff.
type Professor struct {
	Identity
	Rank           ProfessorRank
	Department     string
	Specialization string
	HireDate       Date
	BaseSalary     float64
	YearsOfService int
	Publications   int
	ResearchGrants float64
}

// NewProfessor builds an unranked professor paid the base salary.
func NewProfessor(p ProfessorParams) (*Professor, error) {
	return newProfessor(RankProfessor, p, rankParams{})
}

// NewAssistantProfessor builds an assistant professor paid per year of service.
func NewAssistantProfessor(p ProfessorParams, yearsOfService int) (*Professor, error) {
	return newProfessor(RankAssistant, p, rankParams{YearsOfService: yearsOfService})
}

// NewAssociateProfessor builds an associate professor paid per publication.
func NewAssociateProfessor(p ProfessorParams, publications int) (*Professor, error) {
	return newProfessor(RankAssociate, p, rankParams{Publications: publications})
}

// NewFullProfessor builds a full professor paid a share of research grants.
func NewFullProfessor(p ProfessorParams, researchGrants float64) (*Professor, error) {
	return newProfessor(RankFull, p, rankParams{ResearchGrants: researchGrants})
}

func newProfessor(rank ProfessorRank, p ProfessorParams, r rankParams) (*Professor, error) {
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	if err := validateStruct(r); err != nil {
		return nil, err
	}
	return &Professor{
		Identity:       p.Identity,
		Rank:           rank,
		Department:     p.Department,
		Specialization: p.Specialization,
		HireDate:       p.HireDate,
		BaseSalary:     p.BaseSalary,
		YearsOfService: r.YearsOfService,
		Publications:   r.Publications,
		ResearchGrants: r.ResearchGrants,
	}, nil
}

// CalculatePayment applies the rank's pay scale.
func (p *Professor) CalculatePayment() float64 {
	scale, ok := payScales[p.Rank]
	if !ok {
		return p.BaseSalary
	}
	return scale(p)
}

// Display writes the professor's details.
func (p *Professor) Display(w io.Writer) {
	fmt.Fprintf(w, "Professor: %s, ID: %s, Specialization: %s, Hire Date: %s, Salary: %.2f",
		p.Name, p.ID, p.Specialization, p.HireDate, p.BaseSalary)
	if p.Department != "" {
		fmt.Fprintf(w, ", Department: %s", p.Department)
	}
	fmt.Fprintln(w)
	switch p.Rank {
	case RankAssistant:
		fmt.Fprintf(w, "Rank: %s, Years of Service: %d\n", p.Rank.Title(), p.YearsOfService)
	case RankAssociate:
		fmt.Fprintf(w, "Rank: %s, Publications: %d\n", p.Rank.Title(), p.Publications)
	case RankFull:
		fmt.Fprintf(w, "Rank: %s, Research Grants: $%.2f\n", p.Rank.Title(), p.ResearchGrants)
	}
}

// SetSpecialization updates the specialization.
func (p *Professor) SetSpecialization(specialization string) error {
	if err := validateField("specialization", specialization, "required"); err != nil {
		return err
	}
	p.Specialization = specialization
	return nil
}

// SetDepartment updates the department name; empty clears it.
func (p *Professor) SetDepartment(department string) {
	p.Department = department
}

// SetHireDate updates the hire date.
func (p *Professor) SetHireDate(d Date) error {
	if err := validateStruct(d); err != nil {
		return err
	}
	p.HireDate = d
	return nil
}

// SetBaseSalary updates the base salary.
func (p *Professor) SetBaseSalary(salary float64) error {
	if err := validateField("base_salary", salary, "gte=0"); err != nil {
		return err
	}
	p.BaseSalary = salary
	return nil
}

// Clone returns a copy.
func (p *Professor) Clone() *Professor {
	clone := *p
	return &clone
}
