package service

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/university-registry/pkg/errors"
	"github.com/noah-isme/university-registry/pkg/export"
	"github.com/noah-isme/university-registry/pkg/storage"
)

type failingStorage struct{}

func (failingStorage) Save(string, []byte) (string, error) {
	return "", errors.New("disk full")
}

func newExportServiceForTest(t *testing.T) (*ExportService, string) {
	t.Helper()
	u := seededRegistry(t)
	require.NoError(t, u.EnrollStudent("CS101", "S001"))
	require.NoError(t, u.AssignGrade("S001", 95))

	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	svc := NewExportService(u, store, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) }
	return svc, dir
}

func TestExportServiceGenerateCSV(t *testing.T) {
	svc, dir := newExportServiceForTest(t)

	result, err := svc.Generate(ExportGrades, "csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "grades_20240501_103000.csv"), result.Path)
	assert.Equal(t, 1, result.Rows)

	content, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "# Grade Book\nStudent ID,Grade\nS001,95.00\n", string(content))
}

func TestExportServiceCourseAndPayrollDatasets(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	result, err := svc.Generate(ExportCourses, "CSV")
	require.NoError(t, err)
	content, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "CS101,Intro to AI,3.0,Fundamentals of AI,Dr. Smith")

	result, err = svc.Generate(ExportPayroll, "csv")
	require.NoError(t, err)
	content, err = os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "# Payroll\nID,Name,Role,Payment\nP001,Dr. Smith,Professor,12000.00\nS001,Charlie,Student,5000.00\n", string(content))

	result, err = svc.Generate(ExportStudents, "csv")
	require.NoError(t, err)
	content, err = os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "S001,Charlie,20,REGULAR,B.Sc,3.20,1/1/2020,CS101")
}

func TestExportServiceGeneratePDF(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	result, err := svc.Generate(ExportStudents, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf", result.Format)

	content, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestExportServiceRejectsUnknownInputs(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	_, err := svc.Generate(ExportGrades, "xlsx")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Generate("attendance", "csv")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestExportServiceStorageFailure(t *testing.T) {
	u := seededRegistry(t)
	svc := NewExportService(u, failingStorage{}, nil, export.NewCSVExporter())

	_, err := svc.Generate(ExportGrades, "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeInternal, appErrors.FromError(err).Code)

	_, err = svc.Generate(ExportGrades, "pdf")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
