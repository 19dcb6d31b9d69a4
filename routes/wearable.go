/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"strconv"

	"github.com/flamego/flamego"

	"github.com/humaidq/vitals/db"
)

// ========== Wearable Data Handlers ==========

// AddWearable stores one wearable reading for a profile.
func AddWearable(c flamego.Context) {
	profileID, err := idParam(c, "id")
	if err != nil {
		handleError(c, err, "add wearable data")
		return
	}

	var in db.WearableDataInput
	if err := decodeJSON(c, &in); err != nil {
		handleError(c, err, "add wearable data")
		return
	}

	point, err := addWearableFn(c.Request().Context(), profileID, in)
	if err != nil {
		handleError(c, err, "add wearable data")
		return
	}

	writeJSON(c, http.StatusCreated, point)
}

// AddWearableBulk stores a list of readings atomically.
func AddWearableBulk(c flamego.Context) {
	profileID, err := idParam(c, "id")
	if err != nil {
		handleError(c, err, "add wearable data")
		return
	}

	var inputs []db.WearableDataInput
	if err := decodeJSON(c, &inputs); err != nil {
		handleError(c, err, "add wearable data")
		return
	}

	points, err := addWearableBulkFn(c.Request().Context(), profileID, inputs)
	if err != nil {
		handleError(c, err, "add wearable data")
		return
	}

	writeJSON(c, http.StatusCreated, map[string]interface{}{
		"message": "Successfully added " + strconv.Itoa(len(points)) + " data points",
		"data":    points,
	})
}

// ListWearable returns readings filtered by data_type, device_type and days.
func ListWearable(c flamego.Context, o *Options) {
	profileID, ok := requireProfile(c, "list wearable data")
	if !ok {
		return
	}

	days, err := queryDays(c, o.WearableDays)
	if err != nil {
		handleError(c, err, "list wearable data")
		return
	}

	points, err := listWearableFn(c.Request().Context(), profileID, db.WearableFilter{
		DataType:   c.Query("data_type"),
		DeviceType: c.Query("device_type"),
		Days:       days,
	})
	if err != nil {
		handleError(c, err, "list wearable data")
		return
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{"data": points})
}

// WearableSummary returns the latest and average of each scored metric.
func WearableSummary(c flamego.Context, o *Options) {
	profileID, ok := requireProfile(c, "summarize wearable data")
	if !ok {
		return
	}

	days, err := queryDays(c, o.WearableDays)
	if err != nil {
		handleError(c, err, "summarize wearable data")
		return
	}

	summary, err := wearableSummaryFn(c.Request().Context(), profileID, days)
	if err != nil {
		handleError(c, err, "summarize wearable data")
		return
	}

	writeJSON(c, http.StatusOK, summary)
}

// DeleteWearable removes one reading.
func DeleteWearable(c flamego.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		handleError(c, err, "delete wearable data")
		return
	}

	if err := deleteWearableFn(c.Request().Context(), id); err != nil {
		handleError(c, err, "delete wearable data")
		return
	}

	writeJSON(c, http.StatusOK, map[string]string{"message": "Data deleted successfully"})
}

func queryDays(c flamego.Context, fallback int) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return fallback, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, errInvalidDays
	}

	return days, nil
}
