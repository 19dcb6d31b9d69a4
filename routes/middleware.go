/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
)

// NoCacheHeaders disables caching for API responses and blocks indexing.
func NoCacheHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		header.Set("X-Robots-Tag", "noindex, nofollow, noarchive, nosnippet")

		if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
			header.Set("Cache-Control", "no-store, max-age=0")
			header.Set("Pragma", "no-cache")
			header.Set("Expires", "0")
		}

		c.Next()
	}
}

// BodyLimit rejects request bodies larger than maxBytes with 413. Bodies
// without a declared length are cut off while being read.
func BodyLimit(maxBytes int64) flamego.Handler {
	return func(c flamego.Context) {
		req := c.Request().Request

		if req.ContentLength > maxBytes {
			requestLogger.Warn("request body too large",
				"event", "body_too_large",
				"content_length", req.ContentLength,
				"limit", maxBytes,
				"path", req.URL.Path,
			)
			writeError(c, http.StatusRequestEntityTooLarge, errTextTooLarge.Error())

			return
		}

		if req.Body != nil {
			req.Body = http.MaxBytesReader(c.ResponseWriter(), req.Body, maxBytes)
		}

		c.Next()
	}
}
