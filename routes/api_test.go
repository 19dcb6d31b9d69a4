// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flamego/flamego"

	"github.com/humaidq/vitals/db"
	"github.com/humaidq/vitals/markers"
)

const testProfileID = "7a3c8f3e-5b1d-4d5e-9a61-0c2a3b4d5e6f"

//nolint:paralleltest // mutates package-level function variables
func TestExtractReturnsMarkersAndSummary(t *testing.T) {
	stubDatabase(t)

	f := newTestApp(Options{})
	rec := doRequest(f, http.MethodPost, "/api/extract", `{"text":"FERRITIN: 22 ng/mL"}`)

	expectStatus(t, rec, http.StatusOK)

	body := decodeBody(t, rec)
	if got := body["markersFound"]; got != float64(1) {
		t.Fatalf("expected 1 marker, got %v", got)
	}

	found, _ := body["markers"].([]interface{})
	if len(found) != 1 {
		t.Fatalf("expected one marker entry, got %v", body["markers"])
	}

	marker, _ := found[0].(map[string]interface{})
	if marker["name"] != "FERRITIN" || marker["status"] != "low" || marker["unit"] != "ng/mL" {
		t.Fatalf("unexpected marker %v", marker)
	}

	summary, _ := body["summary"].(map[string]interface{})
	if summary["abnormalMarkers"] != float64(1) {
		t.Fatalf("expected 1 abnormal marker in summary, got %v", summary)
	}

	if got := rec.Header().Get("Cache-Control"); got != "" {
		t.Fatalf("expected no cache headers on POST, got %q", got)
	}
}

//nolint:paralleltest // mutates package-level function variables
func TestExtractRejectsMissingText(t *testing.T) {
	stubDatabase(t)

	f := newTestApp(Options{})

	rec := doRequest(f, http.MethodPost, "/api/extract", `{"source":"pdf"}`)
	expectError(t, rec, http.StatusBadRequest, "text")

	rec = doRequest(f, http.MethodPost, "/api/extract", `{"text":"x","source":"fax"}`)
	expectError(t, rec, http.StatusBadRequest, "source")

	rec = doRequest(f, http.MethodPost, "/api/extract", `not json`)
	expectStatus(t, rec, http.StatusBadRequest)
}

//nolint:paralleltest // mutates package-level function variables
func TestExtractRejectsOversizedText(t *testing.T) {
	stubDatabase(t)

	f := newTestApp(Options{MaxTextBytes: 16})

	rec := doRequest(f, http.MethodPost, "/api/extract", `{"text":"`+strings.Repeat("a", 32)+`"}`)
	expectError(t, rec, http.StatusRequestEntityTooLarge, "maximum")

	rec = doRequest(f, http.MethodPost, "/api/extract", `{"text":"`+strings.Repeat("a", 16)+`"}`)
	expectStatus(t, rec, http.StatusOK)
}

//nolint:paralleltest // mutates package-level function variables
func TestBodyLimitRejectsDeclaredLength(t *testing.T) {
	stubDatabase(t)

	opts := Options{MaxTextBytes: 16}
	f := newTestApp(opts)

	limit := opts.withDefaults().MaxBodyBytes()
	rec := doRequest(f, http.MethodPost, "/api/extract", `{"text":"`+strings.Repeat("a", int(limit))+`"}`)

	expectError(t, rec, http.StatusRequestEntityTooLarge, "maximum")
}

//nolint:paralleltest // mutates package-level function variables
func TestListMarkersReturnsTable(t *testing.T) {
	stubDatabase(t)

	f := newTestApp(Options{})
	rec := doRequest(f, http.MethodGet, "/api/markers", "")

	expectStatus(t, rec, http.StatusOK)

	body := decodeBody(t, rec)
	if got, want := body["count"], float64(markers.DefaultTable().Len()); got != want {
		t.Fatalf("expected count %v, got %v", want, got)
	}

	if got := rec.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("expected no-store cache header, got %q", got)
	}
}

//nolint:paralleltest // mutates package-level function variables
func TestGetProfileStatusCodes(t *testing.T) {
	stubDatabase(t)

	getProfileFn = func(_ context.Context, id string) (*db.HealthProfile, error) {
		return nil, db.ErrHealthProfileNotFound
	}

	f := newTestApp(Options{})

	rec := doRequest(f, http.MethodGet, "/api/profiles/not-a-uuid", "")
	expectError(t, rec, http.StatusBadRequest, errInvalidID.Error())

	rec = doRequest(f, http.MethodGet, "/api/profiles/"+testProfileID, "")
	expectError(t, rec, http.StatusNotFound, "not found")
}

//nolint:paralleltest // mutates package-level function variables
func TestCreateProfileValidationError(t *testing.T) {
	stubDatabase(t)

	createProfileFn = func(context.Context, db.ProfileInput) (string, error) {
		return "", db.ErrProfileNameRequired
	}

	f := newTestApp(Options{})
	rec := doRequest(f, http.MethodPost, "/api/profiles", `{"name":"  "}`)

	expectError(t, rec, http.StatusBadRequest, db.ErrProfileNameRequired.Error())
}

//nolint:paralleltest // mutates package-level function variables
func TestCreateProfileReturnsStoredProfile(t *testing.T) {
	stubDatabase(t)

	var got db.ProfileInput

	createProfileFn = func(_ context.Context, in db.ProfileInput) (string, error) {
		got = in
		return testProfileID, nil
	}

	f := newTestApp(Options{})
	rec := doRequest(f, http.MethodPost, "/api/profiles", `{"name":"Alice","gender":"Female","is_primary":true}`)

	expectStatus(t, rec, http.StatusCreated)

	if got.Name != "Alice" || !got.IsPrimary || got.Gender == nil || *got.Gender != db.GenderFemale {
		t.Fatalf("unexpected profile input %+v", got)
	}

	body := decodeBody(t, rec)
	if body["id"] != testProfileID {
		t.Fatalf("expected id %s, got %v", testProfileID, body["id"])
	}
}

//nolint:paralleltest // mutates package-level function variables
func TestInternalErrorsAreMasked(t *testing.T) {
	stubDatabase(t)

	listProfilesFn = func(context.Context) ([]db.HealthProfileSummary, error) {
		return nil, errors.New("connection reset by peer")
	}

	f := newTestApp(Options{})
	rec := doRequest(f, http.MethodGet, "/api/profiles", "")

	expectError(t, rec, http.StatusInternalServerError, "failed to list health profiles")

	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("internal error leaked into response: %s", rec.Body.String())
	}
}

//nolint:paralleltest // mutates package-level function variables
func TestUnknownRouteReturnsJSON(t *testing.T) {
	stubDatabase(t)

	f := newTestApp(Options{})
	rec := doRequest(f, http.MethodGet, "/api/nothing-here", "")

	expectError(t, rec, http.StatusNotFound, "not found")
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	t.Parallel()

	f := flamego.New()

	var got string

	f.Get("/", func(c flamego.Context) {
		got = clientIP(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", " 203.0.113.9 , 10.0.0.1")
	req.RemoteAddr = "192.0.2.1:1234"

	f.ServeHTTP(httptest.NewRecorder(), req)

	if got != "203.0.113.9" {
		t.Fatalf("expected forwarded client IP, got %q", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	t.Parallel()

	o := (&Options{}).withDefaults()

	if o.Extractor == nil {
		t.Fatal("expected default extractor")
	}
	if o.MaxTextBytes != DefaultMaxTextBytes {
		t.Fatalf("expected default text limit, got %d", o.MaxTextBytes)
	}
	if o.AssessmentReports != DefaultAssessmentReports || o.WearableDays != DefaultWearableDays {
		t.Fatalf("unexpected defaults %+v", o)
	}
	if o.MaxBodyBytes() <= o.MaxTextBytes {
		t.Fatalf("expected body limit above text limit, got %d", o.MaxBodyBytes())
	}
}
