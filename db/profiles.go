/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ========== Health Profile Operations ==========

// ListHealthProfiles returns all health profiles with report counts
func ListHealthProfiles(ctx context.Context) ([]HealthProfileSummary, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, name, date_of_birth, gender, description, is_primary, created_at, updated_at, report_count, last_report_at
		FROM health_profiles_summary
		ORDER BY is_primary DESC, name ASC
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list health profiles: %w", err)
	}
	defer rows.Close()

	profiles := []HealthProfileSummary{}

	for rows.Next() {
		var profile HealthProfileSummary

		err := rows.Scan(
			&profile.ID, &profile.Name, &profile.DateOfBirth, &profile.Gender, &profile.Description,
			&profile.IsPrimary,
			&profile.CreatedAt, &profile.UpdatedAt,
			&profile.ReportCount, &profile.LastReportAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}

		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, nil
}

// GetHealthProfile returns a single health profile by ID
func GetHealthProfile(ctx context.Context, id string) (*HealthProfile, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	var profile HealthProfile

	query := `
		SELECT id, name, date_of_birth, gender, description, is_primary, created_at, updated_at
		FROM health_profiles
		WHERE id = $1
	`

	err := pool.QueryRow(ctx, query, id).Scan(
		&profile.ID, &profile.Name, &profile.DateOfBirth, &profile.Gender, &profile.Description,
		&profile.IsPrimary,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHealthProfileNotFound
		}

		return nil, fmt.Errorf("failed to get health profile: %w", err)
	}

	return &profile, nil
}

// CreateHealthProfile creates a new health profile. Marking it primary clears
// the flag on any other profile.
func CreateHealthProfile(ctx context.Context, in ProfileInput) (string, error) {
	if pool == nil {
		return "", ErrDatabaseConnectionNotInitialized
	}

	in, err := normalizeProfileInput(in)
	if err != nil {
		return "", err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to start transaction: %w", err)
	}
	defer rollback(ctx, tx)

	if in.IsPrimary {
		_, err = tx.Exec(ctx, `UPDATE health_profiles SET is_primary = false WHERE is_primary = true`)
		if err != nil {
			return "", fmt.Errorf("failed to clear existing primary profile: %w", err)
		}
	}

	var id string

	query := `
		INSERT INTO health_profiles (name, date_of_birth, gender, description, is_primary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query, in.Name, in.DateOfBirth, in.Gender, in.Description, in.IsPrimary).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create health profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit health profile creation: %w", err)
	}

	logger.Info("Created health profile", "profile_id", id, "primary", in.IsPrimary)

	return id, nil
}

// UpdateHealthProfile updates a health profile
func UpdateHealthProfile(ctx context.Context, id string, in ProfileInput) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	in, err := normalizeProfileInput(in)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer rollback(ctx, tx)

	if in.IsPrimary {
		_, err = tx.Exec(ctx, `UPDATE health_profiles SET is_primary = false WHERE is_primary = true AND id <> $1`, id)
		if err != nil {
			return fmt.Errorf("failed to clear existing primary profile: %w", err)
		}
	}

	query := `
		UPDATE health_profiles
		SET name = $1, date_of_birth = $2, gender = $3, description = $4, is_primary = $5
		WHERE id = $6
	`

	command, err := tx.Exec(ctx, query, in.Name, in.DateOfBirth, in.Gender, in.Description, in.IsPrimary, id)
	if err != nil {
		return fmt.Errorf("failed to update health profile: %w", err)
	}

	if command.RowsAffected() == 0 {
		return ErrHealthProfileNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit health profile update: %w", err)
	}

	return nil
}

// DeleteHealthProfile deletes a health profile (cascades to reports and wearable data)
func DeleteHealthProfile(ctx context.Context, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	command, err := pool.Exec(ctx, `DELETE FROM health_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete health profile: %w", err)
	}

	if command.RowsAffected() == 0 {
		return ErrHealthProfileNotFound
	}

	logger.Info("Deleted health profile", "profile_id", id)

	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.Warn("Failed to roll back transaction", "error", err)
	}
}
