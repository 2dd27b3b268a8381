package util

import (
	"encoding/json"
	"fmt"
	"os"

	"covid-stats/models"
)

// ReadCaseTableFromJSON loads an already parsed case table from JSON on disk.
// Cell values are coerced on the way in: null, "", "nan" and non-numeric
// strings become missing.
func ReadCaseTableFromJSON(filePath string) (*models.Table, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var table models.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal case table: %w", err)
	}
	return &table, nil
}

// ReadRegionsFromJSON loads a list of regions from JSON on disk.
func ReadRegionsFromJSON(filePath string) ([]models.Region, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var regions []models.Region
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal regions: %w", err)
	}
	return regions, nil
}

// PrintSummaryRowsPartially prints the key fields of summary rows.
func PrintSummaryRowsPartially(rows []models.SummaryRow) {
	fmt.Printf("Summary rows: %d\n", len(rows))
	for _, r := range rows {
		fmt.Printf("%s: total=%d peak=%d on %s last7d=%d projected=%d\n",
			r.Region, r.TotalCases, r.PeakCases, r.PeakDate, r.Last7dAvg, r.ProjectedNext7d)
	}
}
