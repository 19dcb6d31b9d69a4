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
)

func ferritinHistory() []db.MarkerHistoryPoint {
	start := time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)

	return []db.MarkerHistoryPoint{
		{ReportID: uuid.New(), Name: "FERRITIN", Value: 22, Unit: "ng/mL", Status: markers.StatusLow, RecordedAt: start},
		{ReportID: uuid.New(), Name: "FERRITIN", Value: 45, Unit: "ng/mL", Status: markers.StatusNormal, RecordedAt: start.AddDate(0, 3, 0)},
	}
}

//nolint:paralleltest // mutates package-level function variables
func TestMarkerChartRendersHTML(t *testing.T) {
	stubDatabase(t)

	markerHistoryFn = func(context.Context, string, string) ([]db.MarkerHistoryPoint, error) {
		return ferritinHistory(), nil
	}

	f := newTestApp(Options{})
	rec := doRequest(f, http.MethodGet, "/health/"+testProfileID+"/markers/ferritin/chart", "")

	expectStatus(t, rec, http.StatusOK)

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}

	html := rec.Body.String()
	for _, want := range []string{"echarts", "FERRITIN", "Jan 10, 2025 09:00"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected chart to contain %q", want)
		}
	}
}

//nolint:paralleltest // mutates package-level function variables
func TestMarkerChartWithoutHistory(t *testing.T) {
	stubDatabase(t)

	markerHistoryFn = func(context.Context, string, string) ([]db.MarkerHistoryPoint, error) {
		return nil, nil
	}

	f := newTestApp(Options{})

	rec := doRequest(f, http.MethodGet, "/health/"+testProfileID+"/markers/ferritin/chart", "")
	expectError(t, rec, http.StatusNotFound, errNoMarkerHistory.Error())

	rec = doRequest(f, http.MethodGet, "/health/"+testProfileID+"/markers/unobtainium/chart", "")
	expectError(t, rec, http.StatusNotFound, errUnknownMarker.Error())
}

func TestChartBounds(t *testing.T) {
	t.Parallel()

	low, high := 38.0, 380.0

	def := markers.MarkerDefinition{Name: "FERRITIN", Low: &low, High: &high}

	gotMin, gotMax := chartBounds(def, 22, 45)

	lo, ok := gotMin.(float64)
	if !ok || lo != 0 {
		t.Fatalf("expected min clamped to 0, got %v", gotMin)
	}

	hi, ok := gotMax.(float64)
	if !ok || hi <= high {
		t.Fatalf("expected max above the high bound, got %v", gotMax)
	}

	gotMin, gotMax = chartBounds(markers.MarkerDefinition{Name: "X"}, 5, 5)
	if gotMin != nil || gotMax != nil {
		t.Fatalf("expected nil bounds for a flat series, got %v %v", gotMin, gotMax)
	}
}

func TestGenerateMarkerChartUsesReadingUnit(t *testing.T) {
	t.Parallel()

	def, ok := markers.DefaultTable().Lookup("FERRITIN")
	if !ok {
		t.Fatal("expected FERRITIN definition")
	}

	points := ferritinHistory()
	points[1].Unit = "ug/L"

	html, err := generateMarkerChart(def, points)
	if err != nil {
		t.Fatalf("generateMarkerChart returned error: %v", err)
	}

	if !strings.Contains(string(html), "ug/L") {
		t.Fatal("expected the latest reading unit on the y axis")
	}
}
