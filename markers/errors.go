/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package markers

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTable         = errors.New("marker table has no definitions")
	ErrMissingName        = errors.New("marker definition has no canonical name")
	ErrDuplicateMarker    = errors.New("duplicate marker canonical name")
	ErrDuplicateAlias     = errors.New("alias is shared by more than one marker")
	ErrMissingUnit        = errors.New("marker definition has no unit")
	ErrInvalidRange       = errors.New("marker low bound exceeds high bound")
	ErrNoBounds           = errors.New("marker definition has neither low nor high bound")
	ErrInvalidStatus      = errors.New("invalid marker status")
	errDefinitionsMissing = errors.New("markers key missing from definition file")
)

// InvalidInputError reports a structurally absent or mistyped argument.
// Parsing failures inside the text are never reported this way.
type InvalidInputError struct {
	Field  string
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid input: %s", e.Field)
	}

	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// IsInvalidInput reports whether err carries an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
