// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
	"time"

	"github.com/humaidq/vitals/markers"
)

func testContext() context.Context {
	return context.Background()
}

func stringPtr(value string) *string {
	return &value
}

func floatPtr(value float64) *float64 {
	return &value
}

func mustCreateHealthProfile(t *testing.T, name string, isPrimary bool) string {
	t.Helper()

	profileID, err := CreateHealthProfile(testContext(), ProfileInput{Name: name, IsPrimary: isPrimary})
	if err != nil {
		t.Fatalf("failed to create health profile: %v", err)
	}

	return profileID
}

func mustCreateLabReport(t *testing.T, profileID, text string) *LabReport {
	t.Helper()

	report, err := CreateLabReport(testContext(), CreateLabReportInput{
		ProfileID: profileID,
		Source:    markers.SourceManualEntry,
		Result:    markers.Extract(text),
	})
	if err != nil {
		t.Fatalf("failed to create lab report: %v", err)
	}

	return report
}

func mustAddWearable(t *testing.T, profileID, dataType string, value float64, recordedAt time.Time) *WearableDataPoint {
	t.Helper()

	point, err := AddWearableData(testContext(), profileID, WearableDataInput{
		DeviceType: "fitbit",
		DataType:   dataType,
		Value:      &value,
		RecordedAt: &recordedAt,
	})
	if err != nil {
		t.Fatalf("failed to add wearable data: %v", err)
	}

	return point
}
