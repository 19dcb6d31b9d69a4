// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/humaidq/vitals/markers"
)

func TestNormalizeProfileInput(t *testing.T) {
	t.Parallel()

	in, err := normalizeProfileInput(ProfileInput{Name: "  Humaid  ", Description: stringPtr("   ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.Name != "Humaid" || in.Description != nil {
		t.Fatalf("unexpected normalized input: %+v", in)
	}

	if _, err := normalizeProfileInput(ProfileInput{Name: " "}); !errors.Is(err, ErrProfileNameRequired) {
		t.Fatalf("expected ErrProfileNameRequired, got %v", err)
	}

	other := Gender("Other")
	if _, err := normalizeProfileInput(ProfileInput{Name: "A", Gender: &other}); !errors.Is(err, ErrInvalidGender) {
		t.Fatalf("expected ErrInvalidGender, got %v", err)
	}
}

func TestNormalizeReportInput(t *testing.T) {
	t.Parallel()

	in, err := normalizeReportInput(CreateLabReportInput{Result: markers.Extract("")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.Filename != DefaultReportFilename || in.Source != markers.SourceManualEntry {
		t.Fatalf("expected defaults, got %+v", in)
	}

	if _, err := normalizeReportInput(CreateLabReportInput{}); !errors.Is(err, ErrExtractionResultIsNil) {
		t.Fatalf("expected ErrExtractionResultIsNil, got %v", err)
	}

	_, err = normalizeReportInput(CreateLabReportInput{Source: "fax", Result: markers.Extract("")})
	if !errors.Is(err, ErrInvalidReportSource) {
		t.Fatalf("expected ErrInvalidReportSource, got %v", err)
	}
}

func TestNormalizeWearableInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      WearableDataInput
		wantErr error
	}{
		{name: "valid", in: WearableDataInput{DeviceType: " Fitbit ", DataType: "Steps", Value: floatPtr(5000)}},
		{name: "nil value allowed", in: WearableDataInput{DeviceType: "garmin", DataType: "sleep"}},
		{name: "missing device", in: WearableDataInput{DataType: "steps"}, wantErr: ErrDeviceTypeRequired},
		{name: "missing data type", in: WearableDataInput{DeviceType: "garmin"}, wantErr: ErrDataTypeRequired},
		{name: "negative value", in: WearableDataInput{DeviceType: "garmin", DataType: "steps", Value: floatPtr(-1)}, wantErr: ErrInvalidWearableValue},
		{name: "nan value", in: WearableDataInput{DeviceType: "garmin", DataType: "steps", Value: floatPtr(math.NaN())}, wantErr: ErrInvalidWearableValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := normalizeWearableInput(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	in, err := normalizeWearableInput(WearableDataInput{DeviceType: " Fitbit ", DataType: "Heart_Rate", RawData: json.RawMessage("null")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.DeviceType != "fitbit" || in.DataType != "heart_rate" || in.RawData != nil {
		t.Fatalf("unexpected normalized input: %+v", in)
	}
}

func TestLabReportResult(t *testing.T) {
	t.Parallel()

	report := LabReport{ExtractedText: "x", TextLength: 1}

	result := report.Result()
	if result.Markers == nil || result.MarkersFound != 0 || result.SourceText != "x" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestOperationsRequirePool(t *testing.T) {
	if pool != nil {
		t.Skip("database pool is initialized")
	}

	ctx := testContext()

	if _, err := GetHealthProfile(ctx, "x"); !errors.Is(err, ErrDatabaseConnectionNotInitialized) {
		t.Fatalf("expected ErrDatabaseConnectionNotInitialized, got %v", err)
	}

	if _, err := ListRecentExtractions(ctx, "x", 3); !errors.Is(err, ErrDatabaseConnectionNotInitialized) {
		t.Fatalf("expected ErrDatabaseConnectionNotInitialized, got %v", err)
	}

	if _, err := GetWearableSummary(ctx, "x", 7); !errors.Is(err, ErrDatabaseConnectionNotInitialized) {
		t.Fatalf("expected ErrDatabaseConnectionNotInitialized, got %v", err)
	}

	if err := Init(ctx, ""); !errors.Is(err, ErrDatabaseURLNotSet) {
		t.Fatalf("expected ErrDatabaseURLNotSet, got %v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !IsNotFound(ErrLabReportNotFound) || IsNotFound(ErrProfileNameRequired) {
		t.Fatal("unexpected IsNotFound classification")
	}
}
