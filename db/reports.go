/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/humaidq/vitals/markers"
)

// ========== Lab Report Operations ==========

// CreateLabReport persists an extraction result for a profile and returns the
// stored report.
func CreateLabReport(ctx context.Context, in CreateLabReportInput) (*LabReport, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	in, err := normalizeReportInput(in)
	if err != nil {
		return nil, err
	}

	list := in.Result.Markers
	if list == nil {
		list = []markers.ExtractedMarker{}
	}

	markersJSON, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("failed to encode markers: %w", err)
	}

	report := LabReport{
		Filename:      in.Filename,
		Source:        in.Source,
		ExtractedText: in.Result.SourceText,
		TextLength:    in.Result.TextLength,
		Markers:       list,
		MarkersFound:  len(list),
		FlaggedCount:  in.Result.FlaggedCount(),
	}

	query := `
		INSERT INTO lab_reports (profile_id, filename, source, extracted_text, text_length, markers, markers_found, flagged_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, profile_id, created_at
	`

	err = pool.QueryRow(ctx, query,
		in.ProfileID, report.Filename, string(report.Source), report.ExtractedText, report.TextLength,
		markersJSON, report.MarkersFound, report.FlaggedCount,
	).Scan(&report.ID, &report.ProfileID, &report.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrHealthProfileNotFound
		}

		return nil, fmt.Errorf("failed to create lab report: %w", err)
	}

	logger.Info("Created lab report",
		"report_id", report.ID,
		"profile_id", report.ProfileID,
		"source", report.Source,
		"markers_found", report.MarkersFound,
		"flagged", report.FlaggedCount,
	)

	return &report, nil
}

// ListLabReports returns report summaries for a profile, newest first
func ListLabReports(ctx context.Context, profileID string) ([]LabReportSummary, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, profile_id, filename, source, markers_found, flagged_count, created_at
		FROM lab_reports
		WHERE profile_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab reports: %w", err)
	}
	defer rows.Close()

	reports := []LabReportSummary{}

	for rows.Next() {
		var (
			report LabReportSummary
			source string
		)

		err := rows.Scan(
			&report.ID, &report.ProfileID, &report.Filename, &source,
			&report.MarkersFound, &report.FlaggedCount, &report.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lab report: %w", err)
		}

		report.Source = markers.Source(source)
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab reports: %w", err)
	}

	return reports, nil
}

// GetLabReport returns a single report with its markers
func GetLabReport(ctx context.Context, id string) (*LabReport, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, profile_id, filename, source, extracted_text, text_length, markers, markers_found, flagged_count, created_at
		FROM lab_reports
		WHERE id = $1
	`

	report, err := scanLabReport(pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLabReportNotFound
		}

		return nil, fmt.Errorf("failed to get lab report: %w", err)
	}

	return report, nil
}

// DeleteLabReport removes a report
func DeleteLabReport(ctx context.Context, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	command, err := pool.Exec(ctx, `DELETE FROM lab_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lab report: %w", err)
	}

	if command.RowsAffected() == 0 {
		return ErrLabReportNotFound
	}

	logger.Info("Deleted lab report", "report_id", id)

	return nil
}

// ListRecentExtractions returns the extraction results of the n most recent
// reports of a profile, newest first.
func ListRecentExtractions(ctx context.Context, profileID string, n int) ([]*markers.ExtractionResult, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	results := []*markers.ExtractionResult{}
	if n <= 0 {
		return results, nil
	}

	query := `
		SELECT id, profile_id, filename, source, extracted_text, text_length, markers, markers_found, flagged_count, created_at
		FROM lab_reports
		WHERE profile_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := pool.Query(ctx, query, profileID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent extractions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		report, err := scanLabReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lab report: %w", err)
		}

		results = append(results, report.Result())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab reports: %w", err)
	}

	return results, nil
}

// GetMarkerHistory returns every stored reading of a marker for a profile,
// oldest first. The name is matched case-insensitively.
func GetMarkerHistory(ctx context.Context, profileID, markerName string) ([]MarkerHistoryPoint, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	markerName = strings.TrimSpace(markerName)
	if markerName == "" {
		return nil, ErrMarkerNameRequired
	}

	query := `
		SELECT r.id, m->>'name', (m->>'value')::DOUBLE PRECISION, COALESCE(m->>'unit', ''), COALESCE(m->>'status', ''), r.created_at
		FROM lab_reports r
		CROSS JOIN LATERAL jsonb_array_elements(r.markers) AS m
		WHERE r.profile_id = $1 AND lower(m->>'name') = lower($2)
		ORDER BY r.created_at ASC, r.id ASC
	`

	rows, err := pool.Query(ctx, query, profileID, markerName)
	if err != nil {
		return nil, fmt.Errorf("failed to get marker history: %w", err)
	}
	defer rows.Close()

	points := []MarkerHistoryPoint{}

	for rows.Next() {
		var (
			point  MarkerHistoryPoint
			status string
		)

		if err := rows.Scan(&point.ReportID, &point.Name, &point.Value, &point.Unit, &status, &point.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan marker history: %w", err)
		}

		point.Status = markers.Status(status)
		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating marker history: %w", err)
	}

	return points, nil
}

func scanLabReport(row pgx.Row) (*LabReport, error) {
	var (
		report      LabReport
		source      string
		markersJSON []byte
	)

	err := row.Scan(
		&report.ID, &report.ProfileID, &report.Filename, &source,
		&report.ExtractedText, &report.TextLength, &markersJSON,
		&report.MarkersFound, &report.FlaggedCount, &report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	report.Source = markers.Source(source)
	report.Markers = []markers.ExtractedMarker{}

	if len(markersJSON) > 0 {
		if err := json.Unmarshal(markersJSON, &report.Markers); err != nil {
			return nil, fmt.Errorf("failed to decode markers: %w", err)
		}
	}

	return &report, nil
}
