/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package markers

import "fmt"

// Messages shown alongside a report summary.
const (
	NoMarkersFoundMessage = "No recognized health markers were found."
	AllNormalMessage      = "All health markers are within normal ranges."
)

// ReportSummary counts the markers of a single extraction.
type ReportSummary struct {
	TotalMarkers    int      `json:"totalMarkers"`
	AbnormalMarkers int      `json:"abnormalMarkers"`
	NormalMarkers   int      `json:"normalMarkers"`
	Recommendations []string `json:"recommendations"`
	Message         string   `json:"message"`
}

// Summarize builds the report summary for an extraction result.
func Summarize(r *ExtractionResult) ReportSummary {
	summary := ReportSummary{Recommendations: []string{}}
	if r == nil {
		summary.Message = NoMarkersFoundMessage
		return summary
	}

	flagged := r.Flagged()

	summary.TotalMarkers = len(r.Markers)
	summary.AbnormalMarkers = len(flagged)
	summary.NormalMarkers = summary.TotalMarkers - summary.AbnormalMarkers

	seen := make(map[string]bool)

	for _, m := range flagged {
		if m.Recommendation != "" && !seen[m.Recommendation] {
			seen[m.Recommendation] = true
			summary.Recommendations = append(summary.Recommendations, m.Recommendation)
		}
	}

	switch {
	case summary.TotalMarkers == 0:
		summary.Message = NoMarkersFoundMessage
	case summary.AbnormalMarkers == 0:
		summary.Message = AllNormalMessage
	default:
		summary.Message = fmt.Sprintf("%d of %d health markers are outside the normal range.",
			summary.AbnormalMarkers, summary.TotalMarkers)
	}

	return summary
}
