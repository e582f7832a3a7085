package service

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/university-registry/internal/dto"
	"github.com/noah-isme/university-registry/internal/models"
	appErrors "github.com/noah-isme/university-registry/pkg/errors"
)

// Entity kinds reported to metrics.
const (
	EntityStudents    = "students"
	EntityProfessors  = "professors"
	EntityCourses     = "courses"
	EntityDepartments = "departments"
)

// RegistryConfig tunes registry limits.
type RegistryConfig struct {
	CourseCapacity     int
	StudentCourseLimit int
	FailingThreshold   float64
}

// UniversitySystem owns every registered entity together with the grade book and enrollment rosters.
// It is not safe for concurrent use.
type UniversitySystem struct {
	students        map[string]*models.Student
	studentOrder    []string
	professors      map[string]*models.Professor
	professorOrder  []string
	courses         map[string]*models.Course
	courseOrder     []string
	departments     map[string]*models.Department
	departmentOrder []string

	grades      *GradeBook
	enrollments *EnrollmentManager
	courseLimit int

	metrics *MetricsService
	logger  *zap.Logger
}

// NewUniversitySystem constructs an empty registry.
func NewUniversitySystem(cfg RegistryConfig, metrics *MetricsService, logger *zap.Logger) *UniversitySystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.StudentCourseLimit <= 0 {
		cfg.StudentCourseLimit = models.DefaultStudentCourseLimit
	}
	return &UniversitySystem{
		students:    make(map[string]*models.Student),
		professors:  make(map[string]*models.Professor),
		courses:     make(map[string]*models.Course),
		departments: make(map[string]*models.Department),
		grades:      NewGradeBook(cfg.FailingThreshold),
		enrollments: NewEnrollmentManager(cfg.CourseCapacity),
		courseLimit: cfg.StudentCourseLimit,
		metrics:     metrics,
		logger:      logger,
	}
}

func (u *UniversitySystem) record(operation string, err error, fields ...zap.Field) error {
	u.metrics.ObserveOperation(operation, err)
	if err != nil {
		u.logger.Debug("registry operation rejected", append(fields, zap.String("operation", operation), zap.Error(err))...)
		return err
	}
	u.logger.Debug("registry operation applied", append(fields, zap.String("operation", operation))...)
	return nil
}

// AddStudent registers a student.
func (u *UniversitySystem) AddStudent(s *models.Student) error {
	return u.record("add_student", u.addStudent(s))
}

func (u *UniversitySystem) addStudent(s *models.Student) error {
	if s == nil {
		return appErrors.Clone(appErrors.ErrUniversity, "cannot add nil student")
	}
	if _, exists := u.students[s.ID]; exists {
		return appErrors.Clonef(appErrors.ErrUniversity, "student with ID %s already exists", s.ID)
	}
	if len(s.Courses()) > 0 {
		return appErrors.Clonef(appErrors.ErrUniversity, "student %s must be registered before enrolling in courses", s.ID)
	}
	u.students[s.ID] = s.Clone()
	u.studentOrder = append(u.studentOrder, s.ID)
	u.metrics.SetEntityCount(EntityStudents, len(u.studentOrder))
	return nil
}

// AddProfessor registers a professor. A named department must already be registered and gains the professor.
func (u *UniversitySystem) AddProfessor(p *models.Professor) error {
	return u.record("add_professor", u.addProfessor(p))
}

func (u *UniversitySystem) addProfessor(p *models.Professor) error {
	if p == nil {
		return appErrors.Clone(appErrors.ErrUniversity, "cannot add nil professor")
	}
	if _, exists := u.professors[p.ID]; exists {
		return appErrors.Clonef(appErrors.ErrUniversity, "professor with ID %s already exists", p.ID)
	}
	if p.Department != "" {
		department, ok := u.departments[p.Department]
		if !ok {
			return appErrors.Clonef(appErrors.ErrUniversity, "department %s does not exist", p.Department)
		}
		if err := department.AddProfessor(p.ID); err != nil {
			return err
		}
	}
	u.professors[p.ID] = p.Clone()
	u.professorOrder = append(u.professorOrder, p.ID)
	u.metrics.SetEntityCount(EntityProfessors, len(u.professorOrder))
	return nil
}

// AddCourse registers a course. A referenced instructor must already be registered.
func (u *UniversitySystem) AddCourse(c *models.Course) error {
	return u.record("add_course", u.addCourse(c))
}

func (u *UniversitySystem) addCourse(c *models.Course) error {
	if c == nil {
		return appErrors.Clone(appErrors.ErrUniversity, "cannot add nil course")
	}
	if _, exists := u.courses[c.Code]; exists {
		return appErrors.Clonef(appErrors.ErrUniversity, "course with code %s already exists", c.Code)
	}
	if c.HasInstructor() {
		if _, ok := u.professors[c.InstructorID]; !ok {
			return appErrors.Clonef(appErrors.ErrUniversity, "instructor %s for course %s is not a registered professor", c.InstructorID, c.Code)
		}
	}
	u.courses[c.Code] = c.Clone()
	u.courseOrder = append(u.courseOrder, c.Code)
	u.metrics.SetEntityCount(EntityCourses, len(u.courseOrder))
	return nil
}

// AddDepartment registers a department. Members must be registered professors.
func (u *UniversitySystem) AddDepartment(d *models.Department) error {
	return u.record("add_department", u.addDepartment(d))
}

func (u *UniversitySystem) addDepartment(d *models.Department) error {
	if d == nil {
		return appErrors.Clone(appErrors.ErrUniversity, "cannot add nil department")
	}
	if _, exists := u.departments[d.Name]; exists {
		return appErrors.Clonef(appErrors.ErrUniversity, "department %s already exists", d.Name)
	}
	for _, id := range d.ProfessorIDs() {
		if _, ok := u.professors[id]; !ok {
			return appErrors.Clonef(appErrors.ErrUniversity, "professor with ID %s does not exist", id)
		}
		if owner := u.departmentOf(id); owner != "" {
			return appErrors.Clonef(appErrors.ErrUniversity, "professor %s already belongs to department %s", id, owner)
		}
	}
	u.departments[d.Name] = d.Clone()
	u.departmentOrder = append(u.departmentOrder, d.Name)
	for _, id := range d.ProfessorIDs() {
		u.professors[id].SetDepartment(d.Name)
	}
	u.metrics.SetEntityCount(EntityDepartments, len(u.departmentOrder))
	return nil
}

// EnrollStudent places a student in a course. Either both the roster and the student's course list
// change or neither does.
func (u *UniversitySystem) EnrollStudent(courseCode, studentID string) error {
	return u.record("enroll_student", u.enrollStudent(courseCode, studentID),
		zap.String("course_code", courseCode), zap.String("student_id", studentID))
}

func (u *UniversitySystem) enrollStudent(courseCode, studentID string) error {
	if _, ok := u.courses[courseCode]; !ok {
		return appErrors.Clonef(appErrors.ErrEnrollment, "course with code %s does not exist", courseCode)
	}
	student, ok := u.students[studentID]
	if !ok {
		return appErrors.Clonef(appErrors.ErrEnrollment, "student with ID %s does not exist", studentID)
	}
	if err := student.CanEnroll(courseCode, u.courseLimit); err != nil {
		return err
	}
	if err := u.enrollments.Enroll(courseCode, studentID); err != nil {
		return err
	}
	if err := student.EnrollCourse(courseCode, u.courseLimit); err != nil {
		// CanEnroll already passed, so this only guards against a broken invariant.
		_ = u.enrollments.Drop(courseCode, studentID)
		return appErrors.Wrap(err, appErrors.CodeInternal, "enrollment state diverged")
	}
	return nil
}

// DropStudent removes a student from a course.
func (u *UniversitySystem) DropStudent(courseCode, studentID string) error {
	return u.record("drop_student", u.dropStudent(courseCode, studentID),
		zap.String("course_code", courseCode), zap.String("student_id", studentID))
}

func (u *UniversitySystem) dropStudent(courseCode, studentID string) error {
	if _, ok := u.courses[courseCode]; !ok {
		return appErrors.Clonef(appErrors.ErrEnrollment, "course with code %s does not exist", courseCode)
	}
	student, ok := u.students[studentID]
	if !ok {
		return appErrors.Clonef(appErrors.ErrEnrollment, "student with ID %s does not exist", studentID)
	}
	if !student.HasCourse(courseCode) {
		return appErrors.Clonef(appErrors.ErrEnrollment, "student %s not enrolled in course %s", studentID, courseCode)
	}
	if err := u.enrollments.Drop(courseCode, studentID); err != nil {
		return err
	}
	return student.DropCourse(courseCode)
}

// AssignGrade records a grade for a registered student.
func (u *UniversitySystem) AssignGrade(studentID string, grade float64) error {
	err := u.assignGrade(studentID, grade)
	if err == nil {
		u.metrics.ObserveGrade(grade)
	}
	return u.record("assign_grade", err, zap.String("student_id", studentID), zap.Float64("grade", grade))
}

func (u *UniversitySystem) assignGrade(studentID string, grade float64) error {
	if _, ok := u.students[studentID]; !ok {
		return appErrors.Clonef(appErrors.ErrGrade, "student with ID %s does not exist", studentID)
	}
	return u.grades.AddGrade(studentID, grade)
}

// AssignProfessorToDepartment adds a registered professor to a registered department.
func (u *UniversitySystem) AssignProfessorToDepartment(departmentName, professorID string) error {
	return u.record("assign_department", u.assignProfessorToDepartment(departmentName, professorID),
		zap.String("department", departmentName), zap.String("professor_id", professorID))
}

func (u *UniversitySystem) assignProfessorToDepartment(departmentName, professorID string) error {
	department, ok := u.departments[departmentName]
	if !ok {
		return appErrors.Clonef(appErrors.ErrUniversity, "department %s does not exist", departmentName)
	}
	professor, ok := u.professors[professorID]
	if !ok {
		return appErrors.Clonef(appErrors.ErrUniversity, "professor with ID %s does not exist", professorID)
	}
	if owner := u.departmentOf(professorID); owner != "" && owner != departmentName {
		return appErrors.Clonef(appErrors.ErrUniversity, "professor %s already belongs to department %s", professorID, owner)
	}
	if err := department.AddProfessor(professorID); err != nil {
		return err
	}
	professor.SetDepartment(departmentName)
	return nil
}

func (u *UniversitySystem) departmentOf(professorID string) string {
	for _, name := range u.departmentOrder {
		for _, id := range u.departments[name].ProfessorIDs() {
			if id == professorID {
				return name
			}
		}
	}
	return ""
}

// UpdateStudent applies fn to a copy of the student and stores the copy only if fn succeeds.
func (u *UniversitySystem) UpdateStudent(studentID string, fn func(*models.Student) error) error {
	return u.record("update_student", u.updateStudent(studentID, fn), zap.String("student_id", studentID))
}

func (u *UniversitySystem) updateStudent(studentID string, fn func(*models.Student) error) error {
	current, ok := u.students[studentID]
	if !ok {
		return appErrors.Clonef(appErrors.ErrUniversity, "student with ID %s does not exist", studentID)
	}
	draft := current.Clone()
	if err := fn(draft); err != nil {
		return err
	}
	if draft.ID != studentID || strings.Join(draft.Courses(), ",") != strings.Join(current.Courses(), ",") {
		return appErrors.Clone(appErrors.ErrUniversity, "student identity and enrollments cannot be changed by an update")
	}
	u.students[studentID] = draft
	return nil
}

// UpdateProfessor applies fn to a copy of the professor and stores the copy only if fn succeeds.
func (u *UniversitySystem) UpdateProfessor(professorID string, fn func(*models.Professor) error) error {
	return u.record("update_professor", u.updateProfessor(professorID, fn), zap.String("professor_id", professorID))
}

func (u *UniversitySystem) updateProfessor(professorID string, fn func(*models.Professor) error) error {
	current, ok := u.professors[professorID]
	if !ok {
		return appErrors.Clonef(appErrors.ErrUniversity, "professor with ID %s does not exist", professorID)
	}
	draft := current.Clone()
	if err := fn(draft); err != nil {
		return err
	}
	if draft.ID != professorID {
		return appErrors.Clone(appErrors.ErrUniversity, "professor identity cannot be changed by an update")
	}
	if draft.Department != current.Department {
		return appErrors.Clone(appErrors.ErrUniversity, "professor department changes go through department assignment")
	}
	u.professors[professorID] = draft
	return nil
}

// Student returns a copy of the registered student.
func (u *UniversitySystem) Student(id string) (*models.Student, error) {
	s, ok := u.students[id]
	if !ok {
		return nil, appErrors.Clonef(appErrors.ErrUniversity, "student with ID %s does not exist", id)
	}
	return s.Clone(), nil
}

// Professor returns a copy of the registered professor.
func (u *UniversitySystem) Professor(id string) (*models.Professor, error) {
	p, ok := u.professors[id]
	if !ok {
		return nil, appErrors.Clonef(appErrors.ErrUniversity, "professor with ID %s does not exist", id)
	}
	return p.Clone(), nil
}

// Course returns a copy of the registered course.
func (u *UniversitySystem) Course(code string) (*models.Course, error) {
	c, ok := u.courses[code]
	if !ok {
		return nil, appErrors.Clonef(appErrors.ErrUniversity, "course with code %s does not exist", code)
	}
	return c.Clone(), nil
}

// Students returns copies of every student in registration order.
func (u *UniversitySystem) Students() []*models.Student {
	out := make([]*models.Student, 0, len(u.studentOrder))
	for _, id := range u.studentOrder {
		out = append(out, u.students[id].Clone())
	}
	return out
}

// Professors returns copies of every professor in registration order.
func (u *UniversitySystem) Professors() []*models.Professor {
	out := make([]*models.Professor, 0, len(u.professorOrder))
	for _, id := range u.professorOrder {
		out = append(out, u.professors[id].Clone())
	}
	return out
}

// Courses returns copies of every course in registration order.
func (u *UniversitySystem) Courses() []*models.Course {
	out := make([]*models.Course, 0, len(u.courseOrder))
	for _, code := range u.courseOrder {
		out = append(out, u.courses[code].Clone())
	}
	return out
}

// Departments returns copies of every department in registration order.
func (u *UniversitySystem) Departments() []*models.Department {
	out := make([]*models.Department, 0, len(u.departmentOrder))
	for _, name := range u.departmentOrder {
		out = append(out, u.departments[name].Clone())
	}
	return out
}

// EnrolledStudents returns the course roster, empty for unknown courses.
func (u *UniversitySystem) EnrolledStudents(courseCode string) []string {
	return u.enrollments.EnrolledStudents(courseCode)
}

// Grade returns the grade of a student.
func (u *UniversitySystem) Grade(studentID string) (float64, error) {
	return u.grades.Grade(studentID)
}

// GradeEntries returns every grade in assignment order.
func (u *UniversitySystem) GradeEntries() []dto.GradeEntry {
	return u.grades.Entries()
}

// GradeStatistics summarises the grade book.
func (u *UniversitySystem) GradeStatistics() dto.GradeStatistics {
	highest, ok := u.grades.HighestGrade()
	return dto.GradeStatistics{
		Count:           u.grades.Len(),
		Average:         u.grades.Average(),
		Highest:         highest,
		HasHighest:      ok,
		FailingStudents: u.grades.FailingStudents(),
	}
}

// Payroll computes the payment of every person, professors first.
func (u *UniversitySystem) Payroll() []dto.PayrollEntry {
	entries := make([]dto.PayrollEntry, 0, len(u.professorOrder)+len(u.studentOrder))
	for _, id := range u.professorOrder {
		p := u.professors[id]
		entries = append(entries, dto.PayrollEntry{ID: p.ID, Name: p.Name, Role: p.Rank.Title(), Payment: p.CalculatePayment()})
	}
	for _, id := range u.studentOrder {
		s := u.students[id]
		entries = append(entries, dto.PayrollEntry{ID: s.ID, Name: s.Name, Role: studentRole(s.Kind), Payment: s.CalculatePayment()})
	}
	return entries
}

func studentRole(kind models.StudentKind) string {
	switch kind {
	case models.StudentKindGraduate:
		return "Graduate Student"
	case models.StudentKindUndergraduate:
		return "Undergraduate Student"
	default:
		return "Student"
	}
}

// ReportAllStudents writes every student's details.
func (u *UniversitySystem) ReportAllStudents(w io.Writer) {
	if len(u.studentOrder) == 0 {
		fmt.Fprintln(w, "No students available.")
		return
	}
	fmt.Fprintln(w, "--- All Students ---")
	for _, id := range u.studentOrder {
		u.students[id].Display(w)
	}
}

// ReportAllCourses writes every course with its resolved instructor.
func (u *UniversitySystem) ReportAllCourses(w io.Writer) {
	if len(u.courseOrder) == 0 {
		fmt.Fprintln(w, "No courses available.")
		return
	}
	fmt.Fprintln(w, "--- All Courses ---")
	for _, code := range u.courseOrder {
		c := u.courses[code]
		c.Display(w, u.professors[c.InstructorID])
	}
}

// ReportGrades writes every grade in assignment order.
func (u *UniversitySystem) ReportGrades(w io.Writer) {
	fmt.Fprintln(w, "--- All Grades ---")
	entries := u.grades.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No grades available.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "Student ID: %s, Grade: %.2f\n", e.StudentID, e.Grade)
	}
}

// DisplayCourseEnrollment writes the roster of one course.
func (u *UniversitySystem) DisplayCourseEnrollment(w io.Writer, courseCode string) {
	roster := u.enrollments.EnrolledStudents(courseCode)
	if len(roster) == 0 {
		fmt.Fprintf(w, "Students enrolled in %s: None\n", courseCode)
		return
	}
	fmt.Fprintf(w, "Students enrolled in %s: %s\n", courseCode, strings.Join(roster, " "))
}

// ReportPayments writes the computed payment of every person.
func (u *UniversitySystem) ReportPayments(w io.Writer) {
	entries := u.Payroll()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No payments available.")
		return
	}
	fmt.Fprintln(w, "--- Payments ---")
	for _, e := range entries {
		fmt.Fprintf(w, "%s (%s, %s): %.2f\n", e.Name, e.ID, e.Role, e.Payment)
	}
}

// ReportDepartments writes every department with its member professors.
func (u *UniversitySystem) ReportDepartments(w io.Writer) {
	if len(u.departmentOrder) == 0 {
		fmt.Fprintln(w, "No departments available.")
		return
	}
	fmt.Fprintln(w, "--- All Departments ---")
	for _, name := range u.departmentOrder {
		d := u.departments[name]
		members := make([]*models.Professor, 0)
		for _, id := range d.ProfessorIDs() {
			members = append(members, u.professors[id])
		}
		d.Display(w, members)
	}
}

// ReportGradeStatistics writes the grade book summary.
func (u *UniversitySystem) ReportGradeStatistics(w io.Writer) {
	stats := u.GradeStatistics()
	fmt.Fprintln(w, "--- Grade Statistics ---")
	if !stats.HasHighest {
		fmt.Fprintln(w, "No grades available.")
		return
	}
	fmt.Fprintf(w, "Graded Students: %d\n", stats.Count)
	fmt.Fprintf(w, "Average Grade: %.2f\n", stats.Average)
	fmt.Fprintf(w, "Highest Grade: %.2f\n", stats.Highest)
	if len(stats.FailingStudents) == 0 {
		fmt.Fprintln(w, "Failing Students: None")
		return
	}
	fmt.Fprintf(w, "Failing Students: %s\n", strings.Join(stats.FailingStudents, " "))
}
