package dto

import "github.com/noah-isme/university-registry/internal/models"

// Seed is the YAML roster loaded into the registry at startup.
type Seed struct {
	Professors  []SeedProfessor  `yaml:"professors"`
	Courses     []SeedCourse     `yaml:"courses"`
	Students    []SeedStudent    `yaml:"students"`
	Departments []SeedDepartment `yaml:"departments"`
	Enrollments []SeedEnrollment `yaml:"enrollments"`
	Grades      []SeedGrade      `yaml:"grades"`
}

// SeedPerson carries the identity fields shared by students and professors.
type SeedPerson struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Age     int    `yaml:"age"`
	Contact string `yaml:"contact"`
}

// Identity converts the seed fields into a model identity.
func (p SeedPerson) Identity() models.Identity {
	return models.Identity{Name: p.Name, Age: p.Age, ID: p.ID, Contact: p.Contact}
}

// SeedProfessor describes a professor. Rank defaults to an unranked professor.
type SeedProfessor struct {
	SeedPerson     `yaml:",inline"`
	Rank           models.ProfessorRank `yaml:"rank"`
	Department     string               `yaml:"department"`
	Specialization string               `yaml:"specialization"`
	HireDate       models.Date          `yaml:"hire_date"`
	BaseSalary     float64              `yaml:"base_salary"`
	YearsOfService int                  `yaml:"years_of_service"`
	Publications   int                  `yaml:"publications"`
	ResearchGrants float64              `yaml:"research_grants"`
}

// SeedCourse describes a catalog course.
type SeedCourse struct {
	Code         string  `yaml:"code"`
	Title        string  `yaml:"title"`
	Credits      float64 `yaml:"credits"`
	Description  string  `yaml:"description"`
	InstructorID string  `yaml:"instructor"`
}

// SeedStudent describes a student. Kind defaults to a regular student.
type SeedStudent struct {
	SeedPerson     `yaml:",inline"`
	Kind           models.StudentKind `yaml:"kind"`
	EnrollmentDate models.Date        `yaml:"enrollment_date"`
	Program        string             `yaml:"program"`
	GPA            float64            `yaml:"gpa"`

	// Undergraduate fields.
	Major              string       `yaml:"major"`
	Minor              string       `yaml:"minor"`
	ExpectedGraduation *models.Date `yaml:"expected_graduation"`

	// Graduate fields.
	Advisor       string `yaml:"advisor"`
	ThesisTitle   string `yaml:"thesis_title"`
	ResearchTopic string `yaml:"research_topic"`
}

// SeedDepartment describes a department and its member professors.
type SeedDepartment struct {
	Name       string   `yaml:"name"`
	Location   string   `yaml:"location"`
	Budget     float64  `yaml:"budget"`
	Professors []string `yaml:"professors"`
}

// SeedEnrollment places a student in a course.
type SeedEnrollment struct {
	Course  string `yaml:"course"`
	Student string `yaml:"student"`
}

// SeedGrade records a student's grade.
type SeedGrade struct {
	Student string  `yaml:"student"`
	Grade   float64 `yaml:"grade"`
}
