/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/vitals/db"
)

// ========== Health Profile Handlers ==========

// ListProfiles returns all health profiles with report counts.
func ListProfiles(c flamego.Context) {
	profiles, err := listProfilesFn(c.Request().Context())
	if err != nil {
		handleError(c, err, "list health profiles")
		return
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{"profiles": profiles})
}

// CreateProfile creates a health profile.
func CreateProfile(c flamego.Context) {
	var in db.ProfileInput
	if err := decodeJSON(c, &in); err != nil {
		handleError(c, err, "create health profile")
		return
	}

	ctx := c.Request().Context()

	id, err := createProfileFn(ctx, in)
	if err != nil {
		handleError(c, err, "create health profile")
		return
	}

	profile, err := getProfileFn(ctx, id)
	if err != nil {
		handleError(c, err, "load health profile")
		return
	}

	writeJSON(c, http.StatusCreated, profile)
}

// GetProfile returns one health profile.
func GetProfile(c flamego.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		handleError(c, err, "load health profile")
		return
	}

	profile, err := getProfileFn(c.Request().Context(), id)
	if err != nil {
		handleError(c, err, "load health profile")
		return
	}

	writeJSON(c, http.StatusOK, profile)
}

// UpdateProfile replaces the editable fields of a health profile.
func UpdateProfile(c flamego.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		handleError(c, err, "update health profile")
		return
	}

	var in db.ProfileInput
	if err := decodeJSON(c, &in); err != nil {
		handleError(c, err, "update health profile")
		return
	}

	ctx := c.Request().Context()

	if err := updateProfileFn(ctx, id, in); err != nil {
		handleError(c, err, "update health profile")
		return
	}

	profile, err := getProfileFn(ctx, id)
	if err != nil {
		handleError(c, err, "load health profile")
		return
	}

	writeJSON(c, http.StatusOK, profile)
}

// DeleteProfile deletes a health profile with its reports and wearable data.
func DeleteProfile(c flamego.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		handleError(c, err, "delete health profile")
		return
	}

	if err := deleteProfileFn(c.Request().Context(), id); err != nil {
		handleError(c, err, "delete health profile")
		return
	}

	writeJSON(c, http.StatusOK, map[string]string{"message": "Health profile deleted successfully"})
}

// requireProfile writes a 404 and returns false when the profile is missing.
func requireProfile(c flamego.Context, action string) (string, bool) {
	id, err := idParam(c, "id")
	if err != nil {
		handleError(c, err, action)
		return "", false
	}

	if _, err := getProfileFn(c.Request().Context(), id); err != nil {
		handleError(c, err, action)
		return "", false
	}

	return id, true
}
