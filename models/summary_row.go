package models

// PeakDateNotAvailable marks a summary row whose series has no positive peak.
const PeakDateNotAvailable = "N/A"

// SummaryRow holds the descriptive statistics of one region.
// Numeric fields are truncated toward zero after aggregation.
type SummaryRow struct {
	Region          string `json:"region"`
	TotalCases      int64  `json:"total_cases"`
	PeakCases       int64  `json:"peak_cases"`
	PeakDate        string `json:"peak_date"`
	Last7dAvg       int64  `json:"last_7d_avg"`
	ProjectedNext7d int64  `json:"projected_next_7d"`
}

// HasPeak reports whether a positive peak was found.
func (s SummaryRow) HasPeak() bool {
	return s.PeakDate != PeakDateNotAvailable
}
