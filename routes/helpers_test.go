// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/flamego/flamego"
	"github.com/google/uuid"

	"github.com/humaidq/vitals/db"
)

var errShouldNotBeCalled = errors.New("should not be called")

// stubDatabase replaces every db function variable with a failing stub and
// restores the originals when the test ends.
func stubDatabase(t *testing.T) {
	t.Helper()

	originalListProfiles := listProfilesFn
	originalGetProfile := getProfileFn
	originalCreateProfile := createProfileFn
	originalUpdateProfile := updateProfileFn
	originalDeleteProfile := deleteProfileFn
	originalCreateReport := createReportFn
	originalListReports := listReportsFn
	originalGetReport := getReportFn
	originalDeleteReport := deleteReportFn
	originalRecentExtractions := recentExtractionsFn
	originalMarkerHistory := markerHistoryFn
	originalAddWearable := addWearableFn
	originalAddWearableBulk := addWearableBulkFn
	originalListWearable := listWearableFn
	originalDeleteWearable := deleteWearableFn
	originalWearableSummary := wearableSummaryFn

	t.Cleanup(func() {
		listProfilesFn = originalListProfiles
		getProfileFn = originalGetProfile
		createProfileFn = originalCreateProfile
		updateProfileFn = originalUpdateProfile
		deleteProfileFn = originalDeleteProfile
		createReportFn = originalCreateReport
		listReportsFn = originalListReports
		getReportFn = originalGetReport
		deleteReportFn = originalDeleteReport
		recentExtractionsFn = originalRecentExtractions
		markerHistoryFn = originalMarkerHistory
		addWearableFn = originalAddWearable
		addWearableBulkFn = originalAddWearableBulk
		listWearableFn = originalListWearable
		deleteWearableFn = originalDeleteWearable
		wearableSummaryFn = originalWearableSummary
	})

	getProfileFn = func(_ context.Context, id string) (*db.HealthProfile, error) {
		return &db.HealthProfile{ID: uuid.MustParse(id), Name: "Test", CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
	}
	listProfilesFn = func(context.Context) ([]db.HealthProfileSummary, error) {
		return nil, errShouldNotBeCalled
	}
	createProfileFn = func(context.Context, db.ProfileInput) (string, error) {
		return "", errShouldNotBeCalled
	}
	updateProfileFn = func(context.Context, string, db.ProfileInput) error {
		return errShouldNotBeCalled
	}
	deleteProfileFn = func(context.Context, string) error {
		return errShouldNotBeCalled
	}
	createReportFn = func(context.Context, db.CreateLabReportInput) (*db.LabReport, error) {
		return nil, errShouldNotBeCalled
	}
	listReportsFn = func(context.Context, string) ([]db.LabReportSummary, error) {
		return nil, errShouldNotBeCalled
	}
	getReportFn = func(context.Context, string) (*db.LabReport, error) {
		return nil, errShouldNotBeCalled
	}
	deleteReportFn = func(context.Context, string) error {
		return errShouldNotBeCalled
	}
	addWearableFn = func(context.Context, string, db.WearableDataInput) (*db.WearableDataPoint, error) {
		return nil, errShouldNotBeCalled
	}
	addWearableBulkFn = func(context.Context, string, []db.WearableDataInput) ([]db.WearableDataPoint, error) {
		return nil, errShouldNotBeCalled
	}
	listWearableFn = func(context.Context, string, db.WearableFilter) ([]db.WearableDataPoint, error) {
		return nil, errShouldNotBeCalled
	}
	deleteWearableFn = func(context.Context, string) error {
		return errShouldNotBeCalled
	}
	recentExtractionsFn = nil
	markerHistoryFn = nil
	wearableSummaryFn = nil
}

func newTestApp(opts Options) *flamego.Flame {
	f := flamego.New()
	f.Use(RequestLogger)
	Mount(f, opts)

	return f
}

func doRequest(f *flamego.Flame, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}

	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("expected status %d, got %d (body %s)", status, rec.Code, rec.Body.String())
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, contains string) {
	t.Helper()

	expectStatus(t, rec, status)

	body := decodeBody(t, rec)

	msg, _ := body["error"].(string)
	if !strings.Contains(msg, contains) {
		t.Fatalf("expected error containing %q, got %q", contains, msg)
	}
}

