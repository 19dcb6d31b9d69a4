/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/google/uuid"

	"github.com/humaidq/vitals/db"
	"github.com/humaidq/vitals/logging"
	"github.com/humaidq/vitals/markers"
)

var webLogger = logging.Logger(logging.SourceWeb)

// Default option values.
const (
	DefaultMaxTextBytes      = 1 << 20
	DefaultAssessmentReports = 3
	DefaultWearableDays      = 7

	// bodyOverhead leaves room for the JSON envelope around the text.
	bodyOverhead = 64 << 10
)

// Options configures the API handlers. It is mapped into the flamego
// injector by Mount.
type Options struct {
	Extractor         *markers.Extractor
	MaxTextBytes      int64
	AssessmentReports int
	WearableDays      int
}

func (o *Options) withDefaults() *Options {
	out := *o
	if out.Extractor == nil {
		out.Extractor = markers.NewExtractor(markers.DefaultTable())
	}

	if out.MaxTextBytes <= 0 {
		out.MaxTextBytes = DefaultMaxTextBytes
	}

	if out.AssessmentReports <= 0 {
		out.AssessmentReports = DefaultAssessmentReports
	}

	if out.WearableDays <= 0 {
		out.WearableDays = DefaultWearableDays
	}

	return &out
}

// MaxBodyBytes is the largest request body accepted for a given text limit.
func (o *Options) MaxBodyBytes() int64 {
	return o.MaxTextBytes + bodyOverhead
}

func writeJSON(c flamego.Context, status int, v interface{}) {
	c.ResponseWriter().Header().Set("Content-Type", "application/json")
	c.ResponseWriter().WriteHeader(status)

	if err := json.NewEncoder(c.ResponseWriter()).Encode(v); err != nil {
		webLogger.Warn("Failed to encode response", "error", err, "path", c.Request().URL.Path)
	}
}

func writeError(c flamego.Context, status int, message string) {
	writeJSON(c, status, map[string]string{"error": message})
}

// handleError maps an error onto a JSON error response.
func handleError(c flamego.Context, err error, action string) {
	var (
		inputErr *markers.InvalidInputError
		tooLarge *http.MaxBytesError
	)

	switch {
	case errors.As(err, &tooLarge), errors.Is(err, errTextTooLarge):
		writeError(c, http.StatusRequestEntityTooLarge, errTextTooLarge.Error())
	case errors.As(err, &inputErr):
		writeError(c, http.StatusBadRequest, inputErr.Error())
	case db.IsNotFound(err):
		writeError(c, http.StatusNotFound, err.Error())
	case isValidationError(err):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		webLogger.Error("Request failed", "action", action, "error", err, "path", c.Request().URL.Path)
		writeError(c, http.StatusInternalServerError, "failed to "+action)
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		db.ErrProfileNameRequired,
		db.ErrInvalidGender,
		db.ErrInvalidReportSource,
		db.ErrDataTypeRequired,
		db.ErrDeviceTypeRequired,
		db.ErrInvalidWearableValue,
		db.ErrEmptyWearableBatch,
		db.ErrMarkerNameRequired,
		errInvalidID,
		errInvalidDays,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(c flamego.Context, v interface{}) error {
	body := c.Request().Request.Body
	if body == nil {
		return &markers.InvalidInputError{Field: "body", Reason: "empty"}
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}

		if errors.Is(err, io.EOF) {
			return &markers.InvalidInputError{Field: "body", Reason: "empty"}
		}

		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &markers.InvalidInputError{Field: typeErr.Field, Reason: "expected " + typeErr.Type.String()}
		}

		return &markers.InvalidInputError{Field: "body", Reason: err.Error(), Err: err}
	}

	return nil
}

// idParam returns the named path parameter if it is a valid UUID.
func idParam(c flamego.Context, name string) (string, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return "", errInvalidID
	}

	return id.String(), nil
}

// decodeExtractRequest decodes and bounds an extraction request.
func decodeExtractRequest(c flamego.Context, o *Options) (*markers.ExtractRequest, error) {
	body := c.Request().Request.Body
	if body == nil {
		return nil, &markers.InvalidInputError{Field: "body", Reason: "empty"}
	}

	req, err := markers.DecodeExtractRequest(body)
	if err != nil {
		return nil, err
	}

	if int64(len(*req.Text)) > o.MaxTextBytes {
		return nil, errTextTooLarge
	}

	return req, nil
}
