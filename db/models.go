/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/vitals/markers"
)

// Gender represents biological sex as recorded on a profile
type Gender string

// Gender values represent supported biological-sex categories.
const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Valid reports whether g is a known gender value.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// HealthProfile represents a person being tracked in the health system
type HealthProfile struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender      *Gender    `db:"gender" json:"gender,omitempty"`
	Description *string    `db:"description" json:"description,omitempty"`
	IsPrimary   bool       `db:"is_primary" json:"is_primary"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// HealthProfileSummary includes report statistics
type HealthProfileSummary struct {
	HealthProfile

	ReportCount  int        `db:"report_count" json:"report_count"`
	LastReportAt *time.Time `db:"last_report_at" json:"last_report_at,omitempty"`
}

// ProfileInput holds the editable fields of a health profile.
type ProfileInput struct {
	Name        string     `json:"name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      *Gender    `json:"gender,omitempty"`
	Description *string    `json:"description,omitempty"`
	IsPrimary   bool       `json:"is_primary"`
}

// DefaultReportFilename names reports entered by hand.
const DefaultReportFilename = "Manual Entry"

// LabReport is a persisted extraction result.
type LabReport struct {
	ID            uuid.UUID                 `db:"id" json:"id"`
	ProfileID     uuid.UUID                 `db:"profile_id" json:"profile_id"`
	Filename      string                    `db:"filename" json:"filename"`
	Source        markers.Source            `db:"source" json:"source"`
	ExtractedText string                    `db:"extracted_text" json:"extracted_text"`
	TextLength    int                       `db:"text_length" json:"text_length"`
	Markers       []markers.ExtractedMarker `db:"markers" json:"markers"`
	MarkersFound  int                       `db:"markers_found" json:"markers_found"`
	FlaggedCount  int                       `db:"flagged_count" json:"flagged_count"`
	CreatedAt     time.Time                 `db:"created_at" json:"created_at"`
}

// Result rebuilds the extraction result stored in the report.
func (r *LabReport) Result() *markers.ExtractionResult {
	list := r.Markers
	if list == nil {
		list = []markers.ExtractedMarker{}
	}

	return &markers.ExtractionResult{
		SourceText:   r.ExtractedText,
		TextLength:   r.TextLength,
		Markers:      list,
		MarkersFound: len(list),
	}
}

// LabReportSummary is a report row without its text and markers.
type LabReportSummary struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	ProfileID    uuid.UUID      `db:"profile_id" json:"profile_id"`
	Filename     string         `db:"filename" json:"filename"`
	Source       markers.Source `db:"source" json:"source"`
	MarkersFound int            `db:"markers_found" json:"markers_found"`
	FlaggedCount int            `db:"flagged_count" json:"flagged_count"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// CreateLabReportInput is the data needed to persist a report.
type CreateLabReportInput struct {
	ProfileID string
	Filename  string
	Source    markers.Source
	Result    *markers.ExtractionResult
}

// MarkerHistoryPoint is one reading of a marker across reports.
type MarkerHistoryPoint struct {
	ReportID   uuid.UUID      `db:"report_id" json:"report_id"`
	Name       string         `db:"name" json:"name"`
	Value      float64        `db:"value" json:"value"`
	Unit       string         `db:"unit" json:"unit"`
	Status     markers.Status `db:"status" json:"status"`
	RecordedAt time.Time      `db:"recorded_at" json:"recorded_at"`
}

// WearableDataPoint is a single reading from a wearable device.
type WearableDataPoint struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	ProfileID  uuid.UUID       `db:"profile_id" json:"profile_id"`
	DeviceType string          `db:"device_type" json:"device_type"`
	DataType   string          `db:"data_type" json:"data_type"`
	Value      *float64        `db:"value" json:"value"`
	Unit       string          `db:"unit" json:"unit"`
	RecordedAt time.Time       `db:"recorded_at" json:"recorded_at"`
	RawData    json.RawMessage `db:"raw_data" json:"raw_data,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// WearableDataInput is a reading to store. A nil RecordedAt means now.
type WearableDataInput struct {
	DeviceType string          `json:"device_type"`
	DataType   string          `json:"data_type"`
	Value      *float64        `json:"value"`
	Unit       string          `json:"unit"`
	RecordedAt *time.Time      `json:"recorded_at,omitempty"`
	RawData    json.RawMessage `json:"raw_data,omitempty"`
}

// WearableFilter narrows ListWearableData. Zero values match everything.
type WearableFilter struct {
	DeviceType string
	DataType   string
	Days       int
}
