/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/vitals/db"
	"github.com/humaidq/vitals/markers"
)

// ========== Marker Chart ==========

// MarkerChart renders the history of one marker as an HTML line chart with
// the normal range bounds drawn as dashed lines.
func MarkerChart(c flamego.Context, o *Options) {
	profileID, ok := requireProfile(c, "render marker chart")
	if !ok {
		return
	}

	def, found := o.Extractor.Table().Lookup(c.Param("name"))
	if !found {
		writeError(c, http.StatusNotFound, errUnknownMarker.Error())
		return
	}

	points, err := markerHistoryFn(c.Request().Context(), profileID, def.Name)
	if err != nil {
		handleError(c, err, "render marker chart")
		return
	}

	if len(points) == 0 {
		writeError(c, http.StatusNotFound, errNoMarkerHistory.Error())
		return
	}

	html, err := generateMarkerChart(def, points)
	if err != nil {
		handleError(c, err, "render marker chart")
		return
	}

	c.ResponseWriter().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.ResponseWriter().WriteHeader(http.StatusOK)

	if _, err := c.ResponseWriter().Write(html); err != nil {
		webLogger.Warn("Failed to write chart", "error", err)
	}
}

// generateMarkerChart creates a line chart for a marker with its normal range
func generateMarkerChart(def markers.MarkerDefinition, points []db.MarkerHistoryPoint) ([]byte, error) {
	unitLabel := def.Unit
	if points[len(points)-1].Unit != "" {
		unitLabel = points[len(points)-1].Unit
	}

	xAxis := make([]string, 0, len(points))
	yData := make([]opts.LineData, 0, len(points))

	dataMin, dataMax := points[0].Value, points[0].Value

	for _, point := range points {
		xAxis = append(xAxis, point.RecordedAt.Format("Jan 2, 2006 15:04"))
		yData = append(yData, opts.LineData{Value: point.Value})

		dataMin = min(dataMin, point.Value)
		dataMax = max(dataMax, point.Value)
	}

	yAxisMin, yAxisMax := chartBounds(def, dataMin, dataMax)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    def.Name,
			Subtitle: "Normal range: " + def.NormalRange() + " " + def.Unit,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: unitLabel,
			Min:  yAxisMin,
			Max:  yAxisMax,
		}),
	)

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			ShowSymbol: opts.Bool(true),
		}),
		charts.WithMarkPointNameTypeItemOpts(
			opts.MarkPointNameTypeItem{Name: "Max", Type: "max"},
			opts.MarkPointNameTypeItem{Name: "Min", Type: "min"},
		),
	}

	var markLineItems []interface{}

	if def.Low != nil {
		markLineItems = append(markLineItems, opts.MarkLineNameYAxisItem{Name: "Low", YAxis: *def.Low})
	}

	if def.High != nil {
		markLineItems = append(markLineItems, opts.MarkLineNameYAxisItem{Name: "High", YAxis: *def.High})
	}

	if len(markLineItems) > 0 {
		seriesOpts = append(seriesOpts, func(s *charts.SingleSeries) {
			s.MarkLines = &opts.MarkLines{
				Data: markLineItems,
				MarkLineStyle: opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					LineStyle: &opts.LineStyle{
						Color: "rgba(128, 128, 128, 0.6)",
						Type:  "dashed",
						Width: 1.5,
					},
				},
			}
		})
	}

	line.SetXAxis(xAxis).
		AddSeries(def.Name, yData).
		SetSeriesOptions(seriesOpts...)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// chartBounds pads the y axis so both the readings and the normal range are
// visible. Nil results leave scaling to the chart.
func chartBounds(def markers.MarkerDefinition, dataMin, dataMax float64) (interface{}, interface{}) {
	lo, hi := dataMin, dataMax
	if def.Low != nil {
		lo = min(lo, *def.Low)
	}

	if def.High != nil {
		hi = max(hi, *def.High)
	}

	if hi <= lo {
		return nil, nil
	}

	padding := (hi - lo) * 0.1

	return max(0, lo-padding), hi + padding
}
