package service

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/university-registry/internal/dto"
	"github.com/noah-isme/university-registry/internal/models"
	appErrors "github.com/noah-isme/university-registry/pkg/errors"
)

type seedTarget interface {
	AddProfessor(p *models.Professor) error
	AddCourse(c *models.Course) error
	AddStudent(s *models.Student) error
	AddDepartment(d *models.Department) error
	AssignProfessorToDepartment(departmentName, professorID string) error
	EnrollStudent(courseCode, studentID string) error
	AssignGrade(studentID string, grade float64) error
}

// SeedSummary counts what a seed applied.
type SeedSummary struct {
	Professors  int
	Courses     int
	Students    int
	Departments int
	Enrollments int
	Grades      int
}

// SeedService decodes YAML rosters and loads them into a registry.
type SeedService struct {
	logger *zap.Logger
}

// NewSeedService constructs a SeedService.
func NewSeedService(logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{logger: logger}
}

// Load decodes a roster, rejecting unknown keys. An empty document yields an empty seed.
func (s *SeedService) Load(r io.Reader) (*dto.Seed, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var seed dto.Seed
	if err := decoder.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return &seed, nil
		}
		return nil, appErrors.Wrap(err, appErrors.CodeValidation, "invalid seed file")
	}
	return &seed, nil
}

// Apply registers professors, courses, students and departments, then department memberships,
// enrollments and grades.
// It stops at the first failure; entities registered before it remain.
func (s *SeedService) Apply(target seedTarget, seed *dto.Seed) (SeedSummary, error) {
	var summary SeedSummary
	if seed == nil {
		return summary, nil
	}
	for _, sp := range seed.Professors {
		professor, err := buildProfessor(sp)
		if err == nil {
			err = target.AddProfessor(professor)
		}
		if err != nil {
			return summary, fmt.Errorf("seed professor %s: %w", sp.ID, err)
		}
		summary.Professors++
	}
	for _, sc := range seed.Courses {
		course, err := models.NewCourse(models.CourseParams{
			Code:         sc.Code,
			Title:        sc.Title,
			Credits:      sc.Credits,
			Description:  sc.Description,
			InstructorID: sc.InstructorID,
		})
		if err == nil {
			err = target.AddCourse(course)
		}
		if err != nil {
			return summary, fmt.Errorf("seed course %s: %w", sc.Code, err)
		}
		summary.Courses++
	}
	for _, ss := range seed.Students {
		student, err := buildStudent(ss)
		if err == nil {
			err = target.AddStudent(student)
		}
		if err != nil {
			return summary, fmt.Errorf("seed student %s: %w", ss.ID, err)
		}
		summary.Students++
	}
	listed := make(map[string]string)
	for _, sd := range seed.Departments {
		department, err := models.NewDepartment(models.DepartmentParams{Name: sd.Name, Location: sd.Location, Budget: sd.Budget})
		if err == nil {
			err = target.AddDepartment(department)
		}
		if err != nil {
			return summary, fmt.Errorf("seed department %s: %w", sd.Name, err)
		}
		for _, professorID := range sd.Professors {
			if err := target.AssignProfessorToDepartment(sd.Name, professorID); err != nil {
				return summary, fmt.Errorf("seed department %s: %w", sd.Name, err)
			}
			listed[professorID] = sd.Name
		}
		summary.Departments++
	}
	for _, sp := range seed.Professors {
		if sp.Department == "" || listed[sp.ID] == sp.Department {
			continue
		}
		if err := target.AssignProfessorToDepartment(sp.Department, sp.ID); err != nil {
			return summary, fmt.Errorf("seed professor %s: %w", sp.ID, err)
		}
	}
	for _, se := range seed.Enrollments {
		if err := target.EnrollStudent(se.Course, se.Student); err != nil {
			return summary, fmt.Errorf("seed enrollment %s/%s: %w", se.Course, se.Student, err)
		}
		summary.Enrollments++
	}
	for _, sg := range seed.Grades {
		if err := target.AssignGrade(sg.Student, sg.Grade); err != nil {
			return summary, fmt.Errorf("seed grade %s: %w", sg.Student, err)
		}
		summary.Grades++
	}
	s.logger.Info("seed applied",
		zap.Int("professors", summary.Professors),
		zap.Int("courses", summary.Courses),
		zap.Int("students", summary.Students),
		zap.Int("departments", summary.Departments),
		zap.Int("enrollments", summary.Enrollments),
		zap.Int("grades", summary.Grades),
	)
	return summary, nil
}

func buildProfessor(sp dto.SeedProfessor) (*models.Professor, error) {
	params := models.ProfessorParams{
		Identity:       sp.Identity(),
		Specialization: sp.Specialization,
		HireDate:       sp.HireDate,
		BaseSalary:     sp.BaseSalary,
	}
	switch sp.Rank {
	case "", models.RankProfessor:
		return models.NewProfessor(params)
	case models.RankAssistant:
		return models.NewAssistantProfessor(params, sp.YearsOfService)
	case models.RankAssociate:
		return models.NewAssociateProfessor(params, sp.Publications)
	case models.RankFull:
		return models.NewFullProfessor(params, sp.ResearchGrants)
	default:
		return nil, appErrors.Clonef(appErrors.ErrValidation, "unknown professor rank %q", sp.Rank)
	}
}

func buildStudent(ss dto.SeedStudent) (*models.Student, error) {
	params := models.StudentParams{
		Identity:       ss.Identity(),
		EnrollmentDate: ss.EnrollmentDate,
		Program:        ss.Program,
		GPA:            ss.GPA,
	}
	switch ss.Kind {
	case "", models.StudentKindRegular:
		return models.NewStudent(params)
	case models.StudentKindUndergraduate:
		details := models.UndergraduateDetails{Major: ss.Major, Minor: ss.Minor}
		if ss.ExpectedGraduation != nil {
			details.ExpectedGraduation = *ss.ExpectedGraduation
		}
		return models.NewUndergraduateStudent(params, details)
	case models.StudentKindGraduate:
		return models.NewGraduateStudent(params, models.GraduateDetails{
			Advisor:       ss.Advisor,
			ThesisTitle:   ss.ThesisTitle,
			ResearchTopic: ss.ResearchTopic,
		})
	default:
		return nil, appErrors.Clonef(appErrors.ErrValidation, "unknown student kind %q", ss.Kind)
	}
}
