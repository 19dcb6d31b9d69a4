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

var (
	listProfilesFn      = db.ListHealthProfiles
	getProfileFn        = db.GetHealthProfile
	createProfileFn     = db.CreateHealthProfile
	updateProfileFn     = db.UpdateHealthProfile
	deleteProfileFn     = db.DeleteHealthProfile
	createReportFn      = db.CreateLabReport
	listReportsFn       = db.ListLabReports
	getReportFn         = db.GetLabReport
	deleteReportFn      = db.DeleteLabReport
	recentExtractionsFn = db.ListRecentExtractions
	markerHistoryFn     = db.GetMarkerHistory
	addWearableFn       = db.AddWearableData
	addWearableBulkFn   = db.AddWearableDataBulk
	listWearableFn      = db.ListWearableData
	deleteWearableFn    = db.DeleteWearableData
	wearableSummaryFn   = db.GetWearableSummary
)

// Mount registers the API and chart routes on f.
func Mount(f *flamego.Flame, opts Options) {
	o := opts.withDefaults()

	f.Map(o)
	f.Use(NoCacheHeaders())

	f.Group("/api", func() {
		f.Get("/markers", ListMarkers)
		f.Post("/extract", Extract)

		f.Get("/profiles", ListProfiles)
		f.Post("/profiles", CreateProfile)
		f.Get("/profiles/{id}", GetProfile)
		f.Put("/profiles/{id}", UpdateProfile)
		f.Delete("/profiles/{id}", DeleteProfile)

		f.Post("/profiles/{id}/reports", CreateReport)
		f.Get("/profiles/{id}/reports", ListReports)
		f.Get("/reports/{id}", GetReport)
		f.Delete("/reports/{id}", DeleteReport)

		f.Post("/profiles/{id}/wearable", AddWearable)
		f.Post("/profiles/{id}/wearable/bulk", AddWearableBulk)
		f.Get("/profiles/{id}/wearable", ListWearable)
		f.Get("/profiles/{id}/wearable/summary", WearableSummary)
		f.Delete("/wearable/{id}", DeleteWearable)

		f.Get("/profiles/{id}/assessment", Assessment)
		f.Get("/profiles/{id}/markers/{name}/history", MarkerHistory)
	}, BodyLimit(o.MaxBodyBytes()))

	f.Get("/health/{id}/markers/{name}/chart", MarkerChart)

	f.NotFound(func(c flamego.Context) {
		writeError(c, http.StatusNotFound, "not found")
	})
}
