/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"fmt"
	"math"
	"strings"

	"github.com/humaidq/vitals/markers"
)

func normalizeProfileInput(in ProfileInput) (ProfileInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, ErrProfileNameRequired
	}

	if in.Gender != nil && !in.Gender.Valid() {
		return in, fmt.Errorf("%w: %q", ErrInvalidGender, *in.Gender)
	}

	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			in.Description = nil
		} else {
			in.Description = &desc
		}
	}

	return in, nil
}

func normalizeReportInput(in CreateLabReportInput) (CreateLabReportInput, error) {
	if in.Result == nil {
		return in, ErrExtractionResultIsNil
	}

	in.Filename = strings.TrimSpace(in.Filename)
	if in.Filename == "" {
		in.Filename = DefaultReportFilename
	}

	switch in.Source {
	case "":
		in.Source = markers.SourceManualEntry
	case markers.SourceManualEntry, markers.SourcePDF, markers.SourceImage:
	default:
		return in, fmt.Errorf("%w: %q", ErrInvalidReportSource, in.Source)
	}

	return in, nil
}

func normalizeWearableInput(in WearableDataInput) (WearableDataInput, error) {
	in.DeviceType = strings.ToLower(strings.TrimSpace(in.DeviceType))
	if in.DeviceType == "" {
		return in, ErrDeviceTypeRequired
	}

	in.DataType = strings.ToLower(strings.TrimSpace(in.DataType))
	if in.DataType == "" {
		return in, ErrDataTypeRequired
	}

	if in.Value != nil && (math.IsNaN(*in.Value) || math.IsInf(*in.Value, 0) || *in.Value < 0) {
		return in, ErrInvalidWearableValue
	}

	in.Unit = strings.TrimSpace(in.Unit)

	if len(in.RawData) == 0 || string(in.RawData) == "null" {
		in.RawData = nil
	}

	return in, nil
}
