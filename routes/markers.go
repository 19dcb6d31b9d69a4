/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/vitals/markers"
)

type markerDefinitionView struct {
	markers.MarkerDefinition

	NormalRange string `json:"normalRange"`
}

type extractionView struct {
	*markers.ExtractionResult

	Summary markers.ReportSummary `json:"summary"`
}

// ListMarkers returns the active marker definitions.
func ListMarkers(c flamego.Context, o *Options) {
	defs := o.Extractor.Table().Definitions()

	views := make([]markerDefinitionView, 0, len(defs))
	for _, def := range defs {
		views = append(views, markerDefinitionView{MarkerDefinition: def, NormalRange: def.NormalRange()})
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"markers": views,
		"count":   len(views),
	})
}

// Extract runs extraction over the posted text without storing anything.
func Extract(c flamego.Context, o *Options) {
	req, err := decodeExtractRequest(c, o)
	if err != nil {
		handleError(c, err, "extract markers")
		return
	}

	result := o.Extractor.Extract(*req.Text)

	webLogger.Info("Extracted markers",
		"source", req.Source,
		"text_length", result.TextLength,
		"markers_found", result.MarkersFound,
		"flagged", result.FlaggedCount(),
	)

	writeJSON(c, http.StatusOK, extractionView{ExtractionResult: result, Summary: markers.Summarize(result)})
}
