/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/humaidq/vitals/markers"
)

// ScoreRequest is the JSON document accepted by the score command.
type ScoreRequest struct {
	Wearable WearableSummary             `json:"wearable"`
	Reports  []*markers.ExtractionResult `json:"reports"`
}

type rawScoreRequest struct {
	Wearable json.RawMessage   `json:"wearable"`
	Reports  []json.RawMessage `json:"reports"`
}

// DecodeScoreRequest reads a ScoreRequest. A wearable value that is not an
// object (or null), or a report marker without a status, is an
// InvalidInputError.
func DecodeScoreRequest(r io.Reader) (*ScoreRequest, error) {
	var raw rawScoreRequest

	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &markers.InvalidInputError{Field: "body", Reason: "empty"}
		}

		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &markers.InvalidInputError{Field: typeErr.Field, Reason: "expected " + typeErr.Type.String()}
		}

		return nil, &markers.InvalidInputError{Field: "body", Reason: err.Error(), Err: err}
	}

	req := &ScoreRequest{Reports: []*markers.ExtractionResult{}}

	wearable, err := decodeWearable(raw.Wearable)
	if err != nil {
		return nil, err
	}

	req.Wearable = wearable

	for i, data := range raw.Reports {
		var result markers.ExtractionResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, &markers.InvalidInputError{Field: fmt.Sprintf("reports[%d]", i), Reason: err.Error()}
		}

		// A marker without a status would silently count as normal.
		for j, m := range result.Markers {
			if m.Status == "" {
				return nil, &markers.InvalidInputError{
					Field:  fmt.Sprintf("reports[%d]", i),
					Reason: fmt.Sprintf("markers[%d]: status is required", j),
				}
			}
		}

		req.Reports = append(req.Reports, &result)
	}

	return req, nil
}

func decodeWearable(data json.RawMessage) (WearableSummary, error) {
	var summary WearableSummary

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return summary, nil
	}

	if trimmed[0] != '{' {
		return summary, &markers.InvalidInputError{Field: "wearable", Reason: "expected object"}
	}

	if err := json.Unmarshal(trimmed, &summary); err != nil {
		return summary, &markers.InvalidInputError{Field: "wearable", Reason: err.Error()}
	}

	return summary, nil
}
