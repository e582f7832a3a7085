package models

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/university-registry/pkg/errors"
)

func validIdentity(id string) Identity {
	return Identity{Name: "Alice", Age: 24, ID: id, Contact: "9999999999"}
}

func validStudentParams() StudentParams {
	return StudentParams{
		Identity:       validIdentity("S001"),
		EnrollmentDate: Date{Day: 1, Month: 1, Year: 2020},
		Program:        "M.Tech",
		GPA:            3.8,
	}
}

func validProfessorParams() ProfessorParams {
	return ProfessorParams{
		Identity:       Identity{Name: "Dr. Smith", Age: 50, ID: "P001", Contact: "1234567890"},
		Specialization: "AI",
		HireDate:       Date{Day: 1, Month: 1, Year: 2020},
		BaseSalary:     12000,
	}
}

func TestNewDate(t *testing.T) {
	d, err := NewDate(15, 8, 2022)
	require.NoError(t, err)
	assert.Equal(t, "15/8/2022", d.String())

	invalid := [][3]int{{0, 1, 2020}, {32, 1, 2020}, {1, 0, 2020}, {1, 13, 2020}, {1, 1, 1899}}
	for _, c := range invalid {
		_, err := NewDate(c[0], c[1], c[2])
		assert.True(t, errors.Is(err, appErrors.ErrValidation), "%v", c)
	}
}

func TestNewStudentStoresInputs(t *testing.T) {
	s, err := NewStudent(validStudentParams())
	require.NoError(t, err)

	assert.Equal(t, "Alice", s.Name)
	assert.Equal(t, 24, s.Age)
	assert.Equal(t, "S001", s.ID)
	assert.Equal(t, "9999999999", s.Contact)
	assert.Equal(t, "M.Tech", s.Program)
	assert.Equal(t, 3.8, s.GPA)
	assert.Equal(t, StudentKindRegular, s.Kind)
	assert.Equal(t, 5000.0, s.CalculatePayment())
	assert.Empty(t, s.Courses())
}

func TestNewStudentValidation(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(p *StudentParams)
		category *appErrors.Error
		message  string
	}{
		{"empty name", func(p *StudentParams) { p.Name = "" }, appErrors.ErrValidation, "name cannot be empty"},
		{"zero age", func(p *StudentParams) { p.Age = 0 }, appErrors.ErrValidation, "age must be at least 1, given 0"},
		{"old age", func(p *StudentParams) { p.Age = 131 }, appErrors.ErrValidation, "age must be at most 130, given 131"},
		{"empty id", func(p *StudentParams) { p.ID = "" }, appErrors.ErrValidation, "id cannot be empty"},
		{"empty contact", func(p *StudentParams) { p.Contact = "" }, appErrors.ErrValidation, "contact cannot be empty"},
		{"empty program", func(p *StudentParams) { p.Program = "" }, appErrors.ErrValidation, "program cannot be empty"},
		{"negative gpa", func(p *StudentParams) { p.GPA = -0.1 }, appErrors.ErrGrade, "gpa must be at least 0, given -0.1"},
		{"gpa above four", func(p *StudentParams) { p.GPA = 4.5 }, appErrors.ErrGrade, "gpa must be at most 4, given 4.5"},
		{"bad enrollment month", func(p *StudentParams) { p.EnrollmentDate.Month = 13 }, appErrors.ErrValidation, "enrollment_date.month must be at most 12, given 13"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validStudentParams()
			tc.mutate(&p)
			s, err := NewStudent(p)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, tc.category))
			assert.True(t, errors.Is(err, appErrors.ErrUniversity))
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestStudentVariants(t *testing.T) {
	grad, err := NewGraduateStudent(validStudentParams(), GraduateDetails{Advisor: "Dr. Smith", ThesisTitle: "AI & Ethics"})
	require.NoError(t, err)
	assert.Equal(t, StudentKindGraduate, grad.Kind)
	assert.Equal(t, 3500.0, grad.CalculatePayment())

	under, err := NewUndergraduateStudent(validStudentParams(), UndergraduateDetails{Major: "CSE", ExpectedGraduation: Date{Day: 30, Month: 6, Year: 2025}})
	require.NoError(t, err)
	assert.Equal(t, 4000.0, under.CalculatePayment())

	_, err = NewGraduateStudent(validStudentParams(), GraduateDetails{ThesisTitle: "x"})
	assert.EqualError(t, err, "advisor cannot be empty")
	_, err = NewGraduateStudent(validStudentParams(), GraduateDetails{Advisor: "x"})
	assert.EqualError(t, err, "thesis_title cannot be empty")
	_, err = NewUndergraduateStudent(validStudentParams(), UndergraduateDetails{Major: "CSE"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestStudentDisplay(t *testing.T) {
	grad, err := NewGraduateStudent(validStudentParams(), GraduateDetails{Advisor: "Dr. Smith", ThesisTitle: "AI & Ethics"})
	require.NoError(t, err)
	require.NoError(t, grad.EnrollCourse("CS101", 0))

	var buf bytes.Buffer
	grad.Display(&buf)
	assert.Equal(t, "Student: Alice, ID: S001, Age: 24, Enrollment Date: 1/1/2020, Program: M.Tech, GPA: 3.80\n"+
		"Courses: CS101\n"+
		"Graduate | Advisor: Dr. Smith, Thesis: AI & Ethics\n", buf.String())
}

func TestStudentCourseLimitAndDuplicates(t *testing.T) {
	s, err := NewStudent(validStudentParams())
	require.NoError(t, err)

	for _, code := range []string{"A", "B", "C", "D", "E"} {
		require.NoError(t, s.EnrollCourse(code, DefaultStudentCourseLimit))
	}
	err = s.EnrollCourse("F", DefaultStudentCourseLimit)
	assert.True(t, errors.Is(err, appErrors.ErrEnrollment))
	err = s.CanEnroll("A", 10)
	assert.EqualError(t, err, "student S001 is already enrolled in course A")

	require.NoError(t, s.DropCourse("B"))
	assert.Equal(t, []string{"A", "C", "D", "E"}, s.Courses())
	assert.True(t, errors.Is(s.DropCourse("B"), appErrors.ErrEnrollment))
}

func TestStudentSetters(t *testing.T) {
	s, err := NewStudent(validStudentParams())
	require.NoError(t, err)

	require.NoError(t, s.SetGPA(2.5))
	assert.Equal(t, 2.5, s.GPA)
	assert.True(t, errors.Is(s.SetGPA(5), appErrors.ErrGrade))
	assert.Equal(t, 2.5, s.GPA)

	require.NoError(t, s.SetAge(30))
	assert.EqualError(t, s.SetAge(0), "age must be at least 1, given 0")
	assert.Equal(t, 30, s.Age)

	assert.EqualError(t, s.SetContact(""), "contact cannot be empty")
	assert.EqualError(t, s.SetProgram(""), "program cannot be empty")

	require.NoError(t, s.SetEnrollmentDate(Date{Day: 15, Month: 8, Year: 2022}))
	assert.True(t, errors.Is(s.SetEnrollmentDate(Date{Day: 1, Month: 13, Year: 2022}), appErrors.ErrValidation))
	assert.Equal(t, "15/8/2022", s.EnrollmentDate.String())
}

func TestStudentCloneIsDeep(t *testing.T) {
	s, err := NewGraduateStudent(validStudentParams(), GraduateDetails{Advisor: "A", ThesisTitle: "T"})
	require.NoError(t, err)
	require.NoError(t, s.EnrollCourse("CS101", 0))

	clone := s.Clone()
	require.NoError(t, clone.EnrollCourse("CS102", 0))
	clone.Graduate.Advisor = "B"

	assert.Equal(t, []string{"CS101"}, s.Courses())
	assert.Equal(t, "A", s.Graduate.Advisor)
}

func TestProfessorPayScales(t *testing.T) {
	base, err := NewProfessor(validProfessorParams())
	require.NoError(t, err)
	assert.Equal(t, 12000.0, base.CalculatePayment())

	p := validProfessorParams()
	p.BaseSalary = 6000
	assistant, err := NewAssistantProfessor(p, 5)
	require.NoError(t, err)
	assert.Equal(t, 6500.0, assistant.CalculatePayment())

	p.BaseSalary = 9000
	associate, err := NewAssociateProfessor(p, 12)
	require.NoError(t, err)
	assert.Equal(t, 9600.0, associate.CalculatePayment())

	p.BaseSalary = 12000
	full, err := NewFullProfessor(p, 1000000)
	require.NoError(t, err)
	assert.Equal(t, 62000.0, full.CalculatePayment())
	assert.Equal(t, "Full Professor", full.Rank.Title())
}

func TestProfessorValidation(t *testing.T) {
	p := validProfessorParams()
	p.BaseSalary = -1
	_, err := NewProfessor(p)
	assert.True(t, errors.Is(err, appErrors.ErrPayment))

	p = validProfessorParams()
	p.Specialization = ""
	_, err = NewProfessor(p)
	assert.EqualError(t, err, "specialization cannot be empty")

	_, err = NewFullProfessor(validProfessorParams(), -10)
	assert.True(t, errors.Is(err, appErrors.ErrPayment))
	_, err = NewAssistantProfessor(validProfessorParams(), -1)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	_, err = NewAssociateProfessor(validProfessorParams(), -1)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestProfessorDisplay(t *testing.T) {
	p := validProfessorParams()
	p.Department = "CSE"
	assistant, err := NewAssistantProfessor(p, 5)
	require.NoError(t, err)

	var buf bytes.Buffer
	assistant.Display(&buf)
	assert.Equal(t, "Professor: Dr. Smith, ID: P001, Specialization: AI, Hire Date: 1/1/2020, Salary: 12000.00, Department: CSE\n"+
		"Rank: Assistant Professor, Years of Service: 5\n", buf.String())
}

func TestProfessorSetters(t *testing.T) {
	prof, err := NewProfessor(validProfessorParams())
	require.NoError(t, err)

	assert.True(t, errors.Is(prof.SetBaseSalary(-5), appErrors.ErrPayment))
	require.NoError(t, prof.SetBaseSalary(15000))
	assert.Equal(t, 15000.0, prof.CalculatePayment())
	assert.Error(t, prof.SetSpecialization(""))
	prof.SetDepartment("ECE")
	assert.Equal(t, "ECE", prof.Department)

	require.NoError(t, prof.SetHireDate(Date{Day: 3, Month: 4, Year: 2015}))
	assert.True(t, errors.Is(prof.SetHireDate(Date{Day: 0, Month: 4, Year: 2015}), appErrors.ErrValidation))
	assert.Equal(t, "3/4/2015", prof.HireDate.String())
}

func TestNewCourse(t *testing.T) {
	params := CourseParams{Code: "CS101", Title: "Intro to AI", Credits: 3, Description: "Fundamentals of AI", InstructorID: "P001"}
	c, err := NewCourse(params)
	require.NoError(t, err)
	assert.Equal(t, "CS101", c.Code)
	assert.Equal(t, "Intro to AI", c.Title)
	assert.True(t, c.HasInstructor())

	for name, mutate := range map[string]func(p *CourseParams){
		"code":        func(p *CourseParams) { p.Code = "" },
		"title":       func(p *CourseParams) { p.Title = "" },
		"zero":        func(p *CourseParams) { p.Credits = 0 },
		"negative":    func(p *CourseParams) { p.Credits = -1 },
		"description": func(p *CourseParams) { p.Description = "" },
	} {
		p := params
		mutate(&p)
		_, err := NewCourse(p)
		assert.True(t, errors.Is(err, appErrors.ErrValidation), name)
	}
}

func TestCourseDisplay(t *testing.T) {
	c, err := NewCourse(CourseParams{Code: "CS102", Title: "Computer Networks", Credits: 3.5, Description: "Networking basics"})
	require.NoError(t, err)

	var buf bytes.Buffer
	c.Display(&buf, nil)
	assert.Equal(t, "Course: Computer Networks (CS102) - 3.5 credits\nDescription: Networking basics\nNo instructor assigned.\n", buf.String())

	prof, err := NewProfessor(validProfessorParams())
	require.NoError(t, err)
	buf.Reset()
	c.Display(&buf, prof)
	assert.Contains(t, buf.String(), "Instructor: Professor: Dr. Smith, ID: P001")
}

func TestDepartment(t *testing.T) {
	_, err := NewDepartment(DepartmentParams{Name: "CSE", Location: "Block A", Budget: -1})
	assert.True(t, errors.Is(err, appErrors.ErrPayment))
	_, err = NewDepartment(DepartmentParams{Name: "CSE", Budget: 1})
	assert.EqualError(t, err, "location cannot be empty")

	d, err := NewDepartment(DepartmentParams{Name: "CSE", Location: "Block A", Budget: 2000000})
	require.NoError(t, err)
	require.NoError(t, d.AddProfessor("P001"))
	assert.True(t, errors.Is(d.AddProfessor("P001"), appErrors.ErrUniversity))
	assert.Equal(t, []string{"P001"}, d.ProfessorIDs())

	var buf bytes.Buffer
	d.Display(&buf, nil)
	assert.Equal(t, "Department: CSE, Location: Block A, Budget: $2000000.00\nNo professors assigned.\n", buf.String())
}

func TestPersonInterface(t *testing.T) {
	s, err := NewStudent(validStudentParams())
	require.NoError(t, err)
	p, err := NewProfessor(validProfessorParams())
	require.NoError(t, err)

	people := []Person{s, p}
	assert.Equal(t, "S001", people[0].Profile().ID)
	assert.Equal(t, "P001", people[1].Profile().ID)
	assert.Equal(t, 17000.0, people[0].CalculatePayment()+people[1].CalculatePayment())
}
