/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errInvalidID       = errors.New("invalid id")
	errInvalidDays     = errors.New("days must be a positive integer")
	errTextTooLarge    = errors.New("text exceeds the maximum accepted size")
	errNoMarkerHistory = errors.New("no readings recorded for marker")
	errUnknownMarker   = errors.New("unknown marker")
)
