/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/vitals/scoring"
)

type assessmentView struct {
	scoring.HealthAssessment

	Wearable      scoring.WearableSummary `json:"wearable"`
	ReportsScored int                     `json:"reports_scored"`

	// NoData is set when neither wearable readings nor lab markers were
	// available, so the score reflects an empty state.
	NoData bool `json:"no_data"`
}

// Assessment scores the profile's recent wearable data and lab reports.
func Assessment(c flamego.Context, o *Options) {
	profileID, ok := requireProfile(c, "compute health assessment")
	if !ok {
		return
	}

	ctx := c.Request().Context()

	wearable, err := wearableSummaryFn(ctx, profileID, o.WearableDays)
	if err != nil {
		handleError(c, err, "compute health assessment")
		return
	}

	recent, err := recentExtractionsFn(ctx, profileID, o.AssessmentReports)
	if err != nil {
		handleError(c, err, "compute health assessment")
		return
	}

	assessment := scoring.Score(wearable, recent)
	noData := wearable.IsEmpty() && !assessment.Present.LabData

	webLogger.Info("Computed health assessment",
		"profile_id", profileID,
		"score", assessment.Score,
		"rating", assessment.Rating,
		"reports", len(recent),
		"no_data", noData,
	)

	writeJSON(c, http.StatusOK, assessmentView{
		HealthAssessment: assessment,
		Wearable:         wearable,
		ReportsScored:    len(recent),
		NoData:           noData,
	})
}
