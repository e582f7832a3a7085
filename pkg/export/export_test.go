package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Grades",
		Headers: []string{"student_id", "grade"},
		Rows: []map[string]string{
			{"student_id": "S001", "grade": "95.00"},
			{"student_id": "S002", "grade": "88.00", "ignored": "x"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "# Grades\nstudent_id,grade\nS001,95.00\nS002,88.00\n", string(out))

	reader := csv.NewReader(bytes.NewReader(out))
	reader.Comment = '#'
	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"student_id", "grade"}, {"S001", "95.00"}, {"S002", "88.00"}}, records)

	untitled := sampleDataset()
	untitled.Title = ""
	out, err = NewCSVExporter().Render(untitled)
	require.NoError(t, err)
	assert.Equal(t, "student_id,grade\nS001,95.00\nS002,88.00\n", string(out))
}

func TestExportersRejectMissingHeaders(t *testing.T) {
	for _, r := range []Renderer{NewCSVExporter(), NewPDFExporter()} {
		_, err := r.Render(Dataset{})
		assert.Error(t, err, r.Extension())
	}
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty := sampleDataset()
	empty.Rows = nil
	out, err = NewPDFExporter().Render(empty)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
