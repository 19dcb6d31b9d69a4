/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package markers

import (
	"encoding/json"
	"fmt"
)

// Status is the classification of a marker value against its normal range.
type Status string

// Status values for extracted markers.
const (
	StatusLow    Status = "low"
	StatusNormal Status = "normal"
	StatusHigh   Status = "high"
)

// Flagged reports whether the status is outside the normal range.
func (s Status) Flagged() bool {
	return s == StatusLow || s == StatusHigh
}

// UnmarshalJSON accepts only the known status strings.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch Status(raw) {
	case StatusLow, StatusNormal, StatusHigh:
		*s = Status(raw)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// ExtractedMarker is one matched marker reading.
type ExtractedMarker struct {
	Name           string  `json:"name"`
	Value          float64 `json:"value"`
	Unit           string  `json:"unit"`
	NormalRange    string  `json:"normalRange"`
	Status         Status  `json:"status"`
	Recommendation string  `json:"recommendation"`
}

// ExtractionResult is the output of a single extraction. Markers are in order
// of their first textual occurrence.
type ExtractionResult struct {
	SourceText   string            `json:"extractedText"`
	TextLength   int               `json:"textLength"`
	Markers      []ExtractedMarker `json:"markers"`
	MarkersFound int               `json:"markersFound"`
}

// Flagged returns the markers whose status is low or high.
func (r *ExtractionResult) Flagged() []ExtractedMarker {
	if r == nil {
		return nil
	}

	var flagged []ExtractedMarker

	for _, m := range r.Markers {
		if m.Status.Flagged() {
			flagged = append(flagged, m)
		}
	}

	return flagged
}

// FlaggedCount returns the number of markers outside their normal range.
func (r *ExtractionResult) FlaggedCount() int {
	if r == nil {
		return 0
	}

	count := 0

	for _, m := range r.Markers {
		if m.Status.Flagged() {
			count++
		}
	}

	return count
}

// HasMarkers reports whether at least one marker was extracted.
func (r *ExtractionResult) HasMarkers() bool {
	return r != nil && len(r.Markers) > 0
}
