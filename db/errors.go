/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	ErrDatabaseURLNotSet                = errors.New("database URL is not set")
	ErrDatabaseNameNotSpecified         = errors.New("database name not specified in DATABASE_URL")
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")

	ErrHealthProfileNotFound = errors.New("health profile not found")
	ErrLabReportNotFound     = errors.New("lab report not found")
	ErrWearableDataNotFound  = errors.New("wearable data point not found")

	ErrProfileNameRequired   = errors.New("profile name is required")
	ErrInvalidGender         = errors.New("invalid gender")
	ErrInvalidReportSource   = errors.New("invalid report source")
	ErrDataTypeRequired      = errors.New("data type is required")
	ErrDeviceTypeRequired    = errors.New("device type is required")
	ErrInvalidWearableValue  = errors.New("wearable value must be a finite, non-negative number")
	ErrEmptyWearableBatch    = errors.New("no wearable data points supplied")
	ErrMarkerNameRequired    = errors.New("marker name is required")
	ErrExtractionResultIsNil = errors.New("extraction result is nil")
)

// IsNotFound reports whether err wraps one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrHealthProfileNotFound) ||
		errors.Is(err, ErrLabReportNotFound) ||
		errors.Is(err, ErrWearableDataNotFound)
}
