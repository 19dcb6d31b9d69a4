/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package scoring

// Wearable data types summarized for scoring.
const (
	DataTypeSteps     = "steps"
	DataTypeHeartRate = "heart_rate"
	DataTypeSleep     = "sleep"
)

// MetricSummary is the latest reading and the window average of one metric.
type MetricSummary struct {
	Latest  float64 `json:"latest"`
	Average float64 `json:"average"`
	Unit    string  `json:"unit,omitempty"`
}

// Present reports whether the metric carries a real reading. A zero latest
// value counts as no data.
func (m *MetricSummary) Present() bool {
	return m != nil && m.Latest > 0
}

// WearableSummary groups the metrics used by Score. Nil fields are absent.
type WearableSummary struct {
	Steps     *MetricSummary `json:"steps,omitempty"`
	HeartRate *MetricSummary `json:"heart_rate,omitempty"`
	Sleep     *MetricSummary `json:"sleep,omitempty"`
}

// Set stores a metric summary under its data type. Unknown types are ignored.
func (w *WearableSummary) Set(dataType string, m *MetricSummary) {
	switch dataType {
	case DataTypeSteps:
		w.Steps = m
	case DataTypeHeartRate:
		w.HeartRate = m
	case DataTypeSleep:
		w.Sleep = m
	}
}

// IsEmpty reports whether no metric is present.
func (w WearableSummary) IsEmpty() bool {
	return !w.Steps.Present() && !w.HeartRate.Present() && !w.Sleep.Present()
}
