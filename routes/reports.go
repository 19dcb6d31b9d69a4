/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/vitals/db"
	"github.com/humaidq/vitals/markers"
)

// ========== Lab Report Handlers ==========

type reportView struct {
	*db.LabReport

	Summary markers.ReportSummary `json:"summary"`
}

func newReportView(report *db.LabReport) reportView {
	return reportView{LabReport: report, Summary: markers.Summarize(report.Result())}
}

// CreateReport extracts markers from the posted text and stores them as a
// report of the profile.
func CreateReport(c flamego.Context, o *Options) {
	profileID, err := idParam(c, "id")
	if err != nil {
		handleError(c, err, "create lab report")
		return
	}

	req, err := decodeExtractRequest(c, o)
	if err != nil {
		handleError(c, err, "create lab report")
		return
	}

	result := o.Extractor.Extract(*req.Text)

	report, err := createReportFn(c.Request().Context(), db.CreateLabReportInput{
		ProfileID: profileID,
		Filename:  req.Filename,
		Source:    req.Source,
		Result:    result,
	})
	if err != nil {
		handleError(c, err, "create lab report")
		return
	}

	writeJSON(c, http.StatusCreated, newReportView(report))
}

// ListReports returns the report summaries of a profile, newest first.
func ListReports(c flamego.Context) {
	profileID, ok := requireProfile(c, "list lab reports")
	if !ok {
		return
	}

	reports, err := listReportsFn(c.Request().Context(), profileID)
	if err != nil {
		handleError(c, err, "list lab reports")
		return
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{"reports": reports})
}

// GetReport returns a report with its markers and summary.
func GetReport(c flamego.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		handleError(c, err, "load lab report")
		return
	}

	report, err := getReportFn(c.Request().Context(), id)
	if err != nil {
		handleError(c, err, "load lab report")
		return
	}

	writeJSON(c, http.StatusOK, newReportView(report))
}

// DeleteReport removes a report.
func DeleteReport(c flamego.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		handleError(c, err, "delete lab report")
		return
	}

	if err := deleteReportFn(c.Request().Context(), id); err != nil {
		handleError(c, err, "delete lab report")
		return
	}

	writeJSON(c, http.StatusOK, map[string]string{"message": "Report deleted successfully"})
}

// MarkerHistory returns every stored reading of one marker for a profile.
func MarkerHistory(c flamego.Context, o *Options) {
	profileID, ok := requireProfile(c, "load marker history")
	if !ok {
		return
	}

	def, found := o.Extractor.Table().Lookup(c.Param("name"))
	if !found {
		writeError(c, http.StatusNotFound, errUnknownMarker.Error())
		return
	}

	points, err := markerHistoryFn(c.Request().Context(), profileID, def.Name)
	if err != nil {
		handleError(c, err, "load marker history")
		return
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"marker":      def.Name,
		"unit":        def.Unit,
		"normalRange": def.NormalRange(),
		"history":     points,
	})
}
