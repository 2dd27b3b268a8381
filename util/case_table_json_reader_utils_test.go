package util

import (
	"covid-stats/models"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	tempFile, err := os.CreateTemp("", "test*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	_, err = tempFile.Write([]byte(content))
	if err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tempFile.Close()
	return tempFile.Name()
}

func TestReadCaseTableFromJSON(t *testing.T) {
	// Arrange
	content := `{
		"dates": ["2020-01-22", "2020-01-23", "2020-01-24"],
		"columns": [
			{"country": "US", "province": "", "values": [1, 2, 3]},
			{"country": "China", "province": "Hubei", "values": [444, "nan", "x"]},
			{"country": "France", "province": "France", "values": [null, "", "5"]}
		]
	}`
	tempFile := createTempFile(t, content)
	defer os.Remove(tempFile)

	// Act
	table, err := ReadCaseTableFromJSON(tempFile)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, time.Date(2020, time.January, 24, 0, 0, 0, 0, time.UTC), table.Date(2))
	assert.Len(t, table.Regions(), 3)

	hubei, err := table.Column(models.Region{Country: "China", Province: "Hubei"})
	require.NoError(t, err)
	assert.Equal(t, []models.Cell{models.Num(444), models.Missing(), models.Missing()}, hubei)

	france, err := table.Column(models.Region{Country: "France", Province: "France"})
	require.NoError(t, err)
	assert.Equal(t, []models.Cell{models.Missing(), models.Missing(), models.Num(5)}, france)
}

func TestReadCaseTableFromJSON_RowCountMismatch(t *testing.T) {
	content := `{"dates": ["2020-01-22"], "columns": [{"country": "US", "values": [1, 2]}]}`
	tempFile := createTempFile(t, content)
	defer os.Remove(tempFile)

	_, err := ReadCaseTableFromJSON(tempFile)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrRowCountMismatch)
}

func TestReadCaseTableFromJSON_MissingFile(t *testing.T) {
	_, err := ReadCaseTableFromJSON("/definitely/not/here.json")

	assert.Error(t, err)
}

func TestReadRegionsFromJSON(t *testing.T) {
	content := `[{"country": "US", "province": "California"}, {"country": "Italy"}]`
	tempFile := createTempFile(t, content)
	defer os.Remove(tempFile)

	regions, err := ReadRegionsFromJSON(tempFile)

	require.NoError(t, err)
	assert.Equal(t, []models.Region{
		{Country: "US", Province: "California"},
		{Country: "Italy"},
	}, regions)
}

func TestPrintSummaryRowsPartially(t *testing.T) {
	rows := []models.SummaryRow{{Region: "US", TotalCases: 10, PeakDate: models.PeakDateNotAvailable}}

	// This test validates that the function doesn't panic.
	PrintSummaryRowsPartially(rows)
}
