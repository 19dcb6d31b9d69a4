/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package markers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Source describes where report text came from.
type Source string

// Source values accepted for reports.
const (
	SourceManualEntry Source = "manual_entry"
	SourcePDF         Source = "pdf"
	SourceImage       Source = "image"
)

// ExtractRequest is the JSON body accepted by extraction endpoints.
type ExtractRequest struct {
	Text     *string `json:"text"`
	Filename string  `json:"filename,omitempty"`
	Source   Source  `json:"source,omitempty"`
}

// Validate checks that the text argument is present and the source is known.
// An empty string is valid text.
func (r *ExtractRequest) Validate() error {
	if r.Text == nil {
		return &InvalidInputError{Field: "text", Reason: "required"}
	}

	switch r.Source {
	case "":
		r.Source = SourceManualEntry
	case SourceManualEntry, SourcePDF, SourceImage:
	default:
		return &InvalidInputError{Field: "source", Reason: fmt.Sprintf("unknown source %q", r.Source)}
	}

	return nil
}

// DecodeExtractRequest reads and validates an ExtractRequest.
func DecodeExtractRequest(r io.Reader) (*ExtractRequest, error) {
	var req ExtractRequest

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &InvalidInputError{Field: typeErr.Field, Reason: "expected " + typeErr.Type.String()}
		}

		if errors.Is(err, io.EOF) {
			return nil, &InvalidInputError{Field: "body", Reason: "empty"}
		}

		return nil, &InvalidInputError{Field: "body", Reason: err.Error(), Err: err}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return &req, nil
}
