// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/vitals/db"
	"github.com/humaidq/vitals/markers"
	"github.com/humaidq/vitals/scoring"
)

func reportFromInput(in db.CreateLabReportInput) *db.LabReport {
	return &db.LabReport{
		ID:            uuid.New(),
		ProfileID:     uuid.MustParse(in.ProfileID),
		Filename:      in.Filename,
		Source:        in.Source,
		ExtractedText: in.Result.SourceText,
		TextLength:    in.Result.TextLength,
		Markers:       in.Result.Markers,
		MarkersFound:  in.Result.MarkersFound,
		FlaggedCount:  in.Result.FlaggedCount(),
		CreatedAt:     time.Now(),
	}
}

//nolint:paralleltest // mutates package-level function variables
func TestCreateReportStoresExtraction(t *testing.T) {
	stubDatabase(t)

	var got db.CreateLabReportInput

	createReportFn = func(_ context.Context, in db.CreateLabReportInput) (*db.LabReport, error) {
		got = in
		return reportFromInput(in), nil
	}

	f := newTestApp(Options{})
	rec := doRequest(f, http.MethodPost, "/api/profiles/"+testProfileID+"/reports",
		`{"text":"HDL: 35 mg/dL LDL: 160 mg/dL Glucose: 90 mg/dL","filename":"march.pdf","source":"pdf"}`)

	expectStatus(t, rec, http.StatusCreated)

	if got.ProfileID != testProfileID || got.Filename != "march.pdf" || got.Source != markers.SourcePDF {
		t.Fatalf("unexpected report input %+v", got)
	}
	if got.Result == nil || got.Result.MarkersFound != 3 {
		t.Fatalf("expected 3 extracted markers, got %+v", got.Result)
	}

	body := decodeBody(t, rec)

	summary, _ := body["summary"].(map[string]interface{})
	if summary["abnormalMarkers"] != float64(2) || summary["totalMarkers"] != float64(3) {
		t.Fatalf("unexpected summary %v", summary)
	}
}

//nolint:paralleltest // mutates package-level function variables
func TestCreateReportUnknownProfile(t *testing.T) {
	stubDatabase(t)

	createReportFn = func(context.Context, db.CreateLabReportInput) (*db.LabReport, error) {
		return nil, db.ErrHealthProfileNotFound
	}

	f := newTestApp(Options{})
	rec := doRequest(f, http.MethodPost, "/api/profiles/"+testProfileID+"/reports", `{"text":"TSH 2.1"}`)

	expectError(t, rec, http.StatusNotFound, db.ErrHealthProfileNotFound.Error())
}

//nolint:paralleltest // mutates package-level function variables
func TestGetReportNotFound(t *testing.T) {
	stubDatabase(t)

	getReportFn = func(context.Context, string) (*db.LabReport, error) {
		return nil, db.ErrLabReportNotFound
	}

	f := newTestApp(Options{})
	rec := doRequest(f, http.MethodGet, "/api/reports/"+testProfileID, "")

	expectError(t, rec, http.StatusNotFound, db.ErrLabReportNotFound.Error())
}

//nolint:paralleltest // mutates package-level function variables
func TestMarkerHistoryResolvesAlias(t *testing.T) {
	stubDatabase(t)

	var gotName string

	markerHistoryFn = func(_ context.Context, _ string, name string) ([]db.MarkerHistoryPoint, error) {
		gotName = name
		return []db.MarkerHistoryPoint{}, nil
	}

	f := newTestApp(Options{})

	rec := doRequest(f, http.MethodGet, "/api/profiles/"+testProfileID+"/markers/hdl/history", "")
	expectStatus(t, rec, http.StatusOK)

	if gotName != "HDL" {
		t.Fatalf("expected canonical marker name HDL, got %q", gotName)
	}

	body := decodeBody(t, rec)
	if body["normalRange"] != ">=40" {
		t.Fatalf("expected normal range >=40, got %v", body["normalRange"])
	}

	rec = doRequest(f, http.MethodGet, "/api/profiles/"+testProfileID+"/markers/unobtainium/history", "")
	expectError(t, rec, http.StatusNotFound, errUnknownMarker.Error())
}

//nolint:paralleltest // mutates package-level function variables
func TestAssessmentCombinesWearableAndReports(t *testing.T) {
	stubDatabase(t)

	var gotDays, gotReports int

	wearableSummaryFn = func(_ context.Context, _ string, days int) (scoring.WearableSummary, error) {
		gotDays = days

		return scoring.WearableSummary{
			Steps:     &scoring.MetricSummary{Latest: 5000},
			HeartRate: &scoring.MetricSummary{Latest: 72},
			Sleep:     &scoring.MetricSummary{Latest: 8},
		}, nil
	}

	recentExtractionsFn = func(_ context.Context, _ string, n int) ([]*markers.ExtractionResult, error) {
		gotReports = n

		return []*markers.ExtractionResult{
			markers.NewExtractor(markers.DefaultTable()).Extract("FERRITIN: 22 ng/mL"),
		}, nil
	}

	f := newTestApp(Options{WearableDays: 14, AssessmentReports: 2})
	rec := doRequest(f, http.MethodGet, "/api/profiles/"+testProfileID+"/assessment", "")

	expectStatus(t, rec, http.StatusOK)

	if gotDays != 14 || gotReports != 2 {
		t.Fatalf("expected configured window 14 days / 2 reports, got %d / %d", gotDays, gotReports)
	}

	body := decodeBody(t, rec)
	if body["score"] != float64(70) || body["rating"] != string(scoring.RatingGood) {
		t.Fatalf("expected 70/Good, got %v/%v", body["score"], body["rating"])
	}
	if body["reports_scored"] != float64(1) {
		t.Fatalf("expected 1 scored report, got %v", body["reports_scored"])
	}
	if body["no_data"] != false {
		t.Fatalf("expected no_data false, got %v", body["no_data"])
	}

	factors, _ := body["factors"].([]interface{})
	if len(factors) != 2 || factors[0] != scoring.FactorLowSteps {
		t.Fatalf("unexpected factors %v", factors)
	}
}

//nolint:paralleltest // mutates package-level function variables
func TestAssessmentWithoutData(t *testing.T) {
	stubDatabase(t)

	wearableSummaryFn = func(context.Context, string, int) (scoring.WearableSummary, error) {
		return scoring.WearableSummary{}, nil
	}
	recentExtractionsFn = func(context.Context, string, int) ([]*markers.ExtractionResult, error) {
		return nil, nil
	}

	f := newTestApp(Options{})
	rec := doRequest(f, http.MethodGet, "/api/profiles/"+testProfileID+"/assessment", "")

	expectStatus(t, rec, http.StatusOK)

	if !strings.Contains(rec.Body.String(), `"factors":[]`) {
		t.Fatalf("expected empty factor list, got %s", rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["score"] != float64(100) || body["rating"] != string(scoring.RatingExcellent) {
		t.Fatalf("expected 100/Excellent, got %v/%v", body["score"], body["rating"])
	}
	if body["no_data"] != true {
		t.Fatalf("expected no_data true for an empty profile, got %v", body["no_data"])
	}
}

//nolint:paralleltest // mutates package-level function variables
func TestAssessmentMissingProfile(t *testing.T) {
	stubDatabase(t)

	getProfileFn = func(context.Context, string) (*db.HealthProfile, error) {
		return nil, db.ErrHealthProfileNotFound
	}

	f := newTestApp(Options{})
	rec := doRequest(f, http.MethodGet, "/api/profiles/"+testProfileID+"/assessment", "")

	expectError(t, rec, http.StatusNotFound, db.ErrHealthProfileNotFound.Error())
}
