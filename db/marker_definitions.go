/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"

	"github.com/humaidq/vitals/markers"
)

// SyncMarkerDefinitions upserts the active marker table into the database so
// SQL consumers see the bounds used for classification. Rows for markers no
// longer in the table are kept but marked inactive.
func SyncMarkerDefinitions(ctx context.Context, table *markers.Table) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	definitions := table.Definitions()
	logger.Infof("Syncing %d marker definitions to database...", len(definitions))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer rollback(ctx, tx)

	query := `
		INSERT INTO marker_definitions (name, category, unit, unit_aliases, aliases, low, high, normal_range, recommendation_low, recommendation_high, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true)
		ON CONFLICT (name)
		DO UPDATE SET
			category = EXCLUDED.category,
			unit = EXCLUDED.unit,
			unit_aliases = EXCLUDED.unit_aliases,
			aliases = EXCLUDED.aliases,
			low = EXCLUDED.low,
			high = EXCLUDED.high,
			normal_range = EXCLUDED.normal_range,
			recommendation_low = EXCLUDED.recommendation_low,
			recommendation_high = EXCLUDED.recommendation_high,
			active = true,
			updated_at = now()
	`

	names := make([]string, 0, len(definitions))

	for _, def := range definitions {
		_, err := tx.Exec(ctx, query,
			def.Name, def.Category, def.Unit, nonNilStrings(def.UnitAliases), nonNilStrings(def.Aliases),
			def.Low, def.High, def.NormalRange(),
			def.RecommendationLow, def.RecommendationHigh,
		)
		if err != nil {
			return fmt.Errorf("failed to sync marker definition %s: %w", def.Name, err)
		}

		names = append(names, def.Name)
	}

	command, err := tx.Exec(ctx,
		`UPDATE marker_definitions SET active = false, updated_at = now() WHERE active AND NOT (name = ANY($1))`,
		names,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate stale marker definitions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit marker definitions: %w", err)
	}

	logger.Infof("Successfully synced %d marker definitions (%d deactivated)", len(names), command.RowsAffected())

	return nil
}

// ListActiveMarkerNames returns the names of synced, active definitions.
func ListActiveMarkerNames(ctx context.Context) ([]string, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	rows, err := pool.Query(ctx, `SELECT name FROM marker_definitions WHERE active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list marker definitions: %w", err)
	}
	defer rows.Close()

	names := []string{}

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan marker definition: %w", err)
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating marker definitions: %w", err)
	}

	return names, nil
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
