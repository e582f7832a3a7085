package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/university-registry/internal/dto"
	"github.com/noah-isme/university-registry/internal/models"
	appErrors "github.com/noah-isme/university-registry/pkg/errors"
	"github.com/noah-isme/university-registry/pkg/export"
)

// Export kinds.
const (
	ExportStudents = "students"
	ExportCourses  = "courses"
	ExportGrades   = "grades"
	ExportPayroll  = "payroll"
)

// ExportKinds lists every supported export kind.
var ExportKinds = []string{ExportStudents, ExportCourses, ExportGrades, ExportPayroll}

type exportSource interface {
	Students() []*models.Student
	Professors() []*models.Professor
	Courses() []*models.Course
	GradeEntries() []dto.GradeEntry
	Payroll() []dto.PayrollEntry
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	Path   string
	Kind   string
	Format string
	Rows   int
}

// ExportService builds registry datasets and persists rendered files.
type ExportService struct {
	source    exportSource
	storage   fileStorage
	renderers map[string]export.Renderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. With no renderers given it renders CSV and PDF.
func NewExportService(source exportSource, storage fileStorage, logger *zap.Logger, renderers ...export.Renderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(renderers) == 0 {
		renderers = []export.Renderer{export.NewCSVExporter(), export.NewPDFExporter()}
	}
	byFormat := make(map[string]export.Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Extension()] = r
	}
	return &ExportService{
		source:    source,
		storage:   storage,
		renderers: byFormat,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate renders the requested dataset and stores it under the export directory.
func (s *ExportService) Generate(kind, format string) (*ExportResult, error) {
	renderer, ok := s.renderers[strings.ToLower(format)]
	if !ok {
		return nil, appErrors.Clonef(appErrors.ErrValidation, "unsupported export format %s", format)
	}
	dataset, err := s.buildDataset(kind)
	if err != nil {
		return nil, err
	}
	payload, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, "failed to render export")
	}
	filename := fmt.Sprintf("%s_%s.%s", kind, s.now().UTC().Format("20060102_150405"), renderer.Extension())
	path, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, "failed to store export")
	}
	s.logger.Info("export generated",
		zap.String("kind", kind),
		zap.String("format", renderer.Extension()),
		zap.String("path", path),
		zap.Int("rows", len(dataset.Rows)),
	)
	return &ExportResult{Path: path, Kind: kind, Format: renderer.Extension(), Rows: len(dataset.Rows)}, nil
}

func (s *ExportService) buildDataset(kind string) (export.Dataset, error) {
	switch kind {
	case ExportStudents:
		return s.buildStudentDataset(), nil
	case ExportCourses:
		return s.buildCourseDataset(), nil
	case ExportGrades:
		return s.buildGradeDataset(), nil
	case ExportPayroll:
		return s.buildPayrollDataset(), nil
	default:
		return export.Dataset{}, appErrors.Clonef(appErrors.ErrValidation, "unsupported export kind %s", kind)
	}
}

func (s *ExportService) buildStudentDataset() export.Dataset {
	students := s.source.Students()
	rows := make([]map[string]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, map[string]string{
			"ID":              st.ID,
			"Name":            st.Name,
			"Age":             strconv.Itoa(st.Age),
			"Kind":            string(st.Kind),
			"Program":         st.Program,
			"GPA":             fmt.Sprintf("%.2f", st.GPA),
			"Enrollment Date": st.EnrollmentDate.String(),
			"Courses":         strings.Join(st.Courses(), " "),
		})
	}
	return export.Dataset{
		Title:   "Student Roster",
		Headers: []string{"ID", "Name", "Age", "Kind", "Program", "GPA", "Enrollment Date", "Courses"},
		Rows:    rows,
	}
}

func (s *ExportService) buildCourseDataset() export.Dataset {
	instructors := make(map[string]string)
	for _, p := range s.source.Professors() {
		instructors[p.ID] = p.Name
	}
	courses := s.source.Courses()
	rows := make([]map[string]string, 0, len(courses))
	for _, c := range courses {
		instructor := instructors[c.InstructorID]
		if instructor == "" {
			instructor = "-"
		}
		rows = append(rows, map[string]string{
			"Code":        c.Code,
			"Title":       c.Title,
			"Credits":     fmt.Sprintf("%.1f", c.Credits),
			"Description": c.Description,
			"Instructor":  instructor,
		})
	}
	return export.Dataset{
		Title:   "Course Catalog",
		Headers: []string{"Code", "Title", "Credits", "Description", "Instructor"},
		Rows:    rows,
	}
}

func (s *ExportService) buildGradeDataset() export.Dataset {
	entries := s.source.GradeEntries()
	rows := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, map[string]string{
			"Student ID": e.StudentID,
			"Grade":      fmt.Sprintf("%.2f", e.Grade),
		})
	}
	return export.Dataset{
		Title:   "Grade Book",
		Headers: []string{"Student ID", "Grade"},
		Rows:    rows,
	}
}

func (s *ExportService) buildPayrollDataset() export.Dataset {
	entries := s.source.Payroll()
	rows := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, map[string]string{
			"ID":      e.ID,
			"Name":    e.Name,
			"Role":    e.Role,
			"Payment": fmt.Sprintf("%.2f", e.Payment),
		})
	}
	return export.Dataset{
		Title:   "Payroll",
		Headers: []string{"ID", "Name", "Role", "Payment"},
		Rows:    rows,
	}
}
