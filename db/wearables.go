/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/humaidq/vitals/scoring"
)

// ========== Wearable Data Operations ==========

const insertWearableQuery = `
	INSERT INTO wearable_data (profile_id, device_type, data_type, value, unit, recorded_at, raw_data)
	VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()), $7)
	RETURNING id, profile_id, device_type, data_type, value, unit, recorded_at, raw_data, created_at
`

// AddWearableData stores one wearable reading
func AddWearableData(ctx context.Context, profileID string, in WearableDataInput) (*WearableDataPoint, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	in, err := normalizeWearableInput(in)
	if err != nil {
		return nil, err
	}

	point, err := scanWearablePoint(pool.QueryRow(ctx, insertWearableQuery, wearableArgs(profileID, in)...))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrHealthProfileNotFound
		}

		return nil, fmt.Errorf("failed to add wearable data: %w", err)
	}

	return point, nil
}

// AddWearableDataBulk stores several readings in one transaction using a
// single batch round trip. Either every reading is stored or none is.
func AddWearableDataBulk(ctx context.Context, profileID string, inputs []WearableDataInput) ([]WearableDataPoint, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if len(inputs) == 0 {
		return nil, ErrEmptyWearableBatch
	}

	batch := &pgx.Batch{}

	for i, in := range inputs {
		normalized, err := normalizeWearableInput(in)
		if err != nil {
			return nil, fmt.Errorf("data point %d: %w", i, err)
		}

		batch.Queue(insertWearableQuery, wearableArgs(profileID, normalized)...)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer rollback(ctx, tx)

	results := tx.SendBatch(ctx, batch)

	points := make([]WearableDataPoint, 0, len(inputs))

	for range inputs {
		point, err := scanWearablePoint(results.QueryRow())
		if err != nil {
			_ = results.Close()

			if isForeignKeyViolation(err) {
				return nil, ErrHealthProfileNotFound
			}

			return nil, fmt.Errorf("failed to add wearable data: %w", err)
		}

		points = append(points, *point)
	}

	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to close wearable batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit wearable data: %w", err)
	}

	logger.Info("Added wearable data", "profile_id", profileID, "count", len(points))

	return points, nil
}

// ListWearableData returns readings for a profile matching the filter, newest first
func ListWearableData(ctx context.Context, profileID string, filter WearableFilter) ([]WearableDataPoint, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	conditions := []string{"profile_id = $1"}
	args := []interface{}{profileID}

	if dt := strings.ToLower(strings.TrimSpace(filter.DeviceType)); dt != "" {
		args = append(args, dt)
		conditions = append(conditions, fmt.Sprintf("device_type = $%d", len(args)))
	}

	if dt := strings.ToLower(strings.TrimSpace(filter.DataType)); dt != "" {
		args = append(args, dt)
		conditions = append(conditions, fmt.Sprintf("data_type = $%d", len(args)))
	}

	if filter.Days > 0 {
		args = append(args, windowStart(time.Now(), filter.Days))
		conditions = append(conditions, fmt.Sprintf("recorded_at >= $%d", len(args)))
	}

	query := `
		SELECT id, profile_id, device_type, data_type, value, unit, recorded_at, raw_data, created_at
		FROM wearable_data
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY recorded_at DESC, created_at DESC
	`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list wearable data: %w", err)
	}
	defer rows.Close()

	points := []WearableDataPoint{}

	for rows.Next() {
		point, err := scanWearablePoint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wearable data: %w", err)
		}

		points = append(points, *point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wearable data: %w", err)
	}

	return points, nil
}

// DeleteWearableData removes one reading
func DeleteWearableData(ctx context.Context, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	command, err := pool.Exec(ctx, `DELETE FROM wearable_data WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wearable data: %w", err)
	}

	if command.RowsAffected() == 0 {
		return ErrWearableDataNotFound
	}

	return nil
}

// GetWearableSummary summarizes steps, heart rate and sleep over the last
// days. Each metric carries the most recent reading, the window average and
// the unit of the most recent reading. Metrics without readings stay nil.
func GetWearableSummary(ctx context.Context, profileID string, days int) (scoring.WearableSummary, error) {
	var summary scoring.WearableSummary

	if pool == nil {
		return summary, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT data_type, value, average, unit
		FROM (
			SELECT
				data_type,
				value,
				unit,
				AVG(value) OVER (PARTITION BY data_type) AS average,
				ROW_NUMBER() OVER (PARTITION BY data_type ORDER BY recorded_at DESC, created_at DESC) AS rn
			FROM wearable_data
			WHERE profile_id = $1
			  AND data_type = ANY($2)
			  AND value IS NOT NULL
			  AND recorded_at >= $3
		) windowed
		WHERE rn = 1
	`

	dataTypes := []string{scoring.DataTypeSteps, scoring.DataTypeHeartRate, scoring.DataTypeSleep}

	rows, err := pool.Query(ctx, query, profileID, dataTypes, windowStart(time.Now(), days))
	if err != nil {
		return summary, fmt.Errorf("failed to summarize wearable data: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			dataType string
			metric   scoring.MetricSummary
		)

		if err := rows.Scan(&dataType, &metric.Latest, &metric.Average, &metric.Unit); err != nil {
			return summary, fmt.Errorf("failed to scan wearable summary: %w", err)
		}

		summary.Set(dataType, &metric)
	}

	if err := rows.Err(); err != nil {
		return summary, fmt.Errorf("error iterating wearable summary: %w", err)
	}

	return summary, nil
}

func windowStart(now time.Time, days int) time.Time {
	if days <= 0 {
		days = 1
	}

	return now.AddDate(0, 0, -days)
}

func wearableArgs(profileID string, in WearableDataInput) []interface{} {
	var raw []byte
	if in.RawData != nil {
		raw = in.RawData
	}

	return []interface{}{profileID, in.DeviceType, in.DataType, in.Value, in.Unit, in.RecordedAt, raw}
}

func scanWearablePoint(row pgx.Row) (*WearableDataPoint, error) {
	var (
		point WearableDataPoint
		raw   []byte
	)

	err := row.Scan(
		&point.ID, &point.ProfileID, &point.DeviceType, &point.DataType, &point.Value, &point.Unit,
		&point.RecordedAt, &raw, &point.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(raw) > 0 {
		point.RawData = raw
	}

	return &point, nil
}
