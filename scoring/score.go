/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package scoring

import (
	"fmt"

	"github.com/humaidq/vitals/markers"
)

// Score bounds and deductions.
const (
	MaxScore = 100
	MinScore = 0

	StepsTarget      = 8000
	HeartRateMin     = 60
	HeartRateMax     = 100
	SleepTargetHours = 7

	StepsPenalty     = 10
	HeartRatePenalty = 15
	SleepPenalty     = 15
	LabReportPenalty = 20
)

// Factor messages.
const (
	FactorLowSteps          = "Low step count"
	FactorHeartRate         = "Heart rate outside normal range"
	FactorInsufficientSleep = "Insufficient sleep"
)

// Rating is the label derived from a score.
type Rating string

// Ratings in descending order.
const (
	RatingExcellent      Rating = "Excellent"
	RatingGood           Rating = "Good"
	RatingFair           Rating = "Fair"
	RatingNeedsAttention Rating = "Needs Attention"
)

// RatingFor maps a score onto its rating.
func RatingFor(score int) Rating {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 60:
		return RatingGood
	case score >= 40:
		return RatingFair
	default:
		return RatingNeedsAttention
	}
}

// Presence tells callers which input categories carried data.
type Presence struct {
	Steps     bool `json:"steps"`
	HeartRate bool `json:"heart_rate"`
	Sleep     bool `json:"sleep"`
	LabData   bool `json:"lab_data"`
}

// HealthAssessment is the result of scoring. It is never persisted.
type HealthAssessment struct {
	Score   int      `json:"score"`
	Rating  Rating   `json:"rating"`
	Factors []string `json:"factors"`
	Present Presence `json:"present"`
}

// Score computes a health assessment from a wearable summary and the most
// recent extraction results, newest first.
func Score(wearable WearableSummary, recent []*markers.ExtractionResult) HealthAssessment {
	score := MaxScore
	factors := []string{}

	present := Presence{
		Steps:     wearable.Steps.Present(),
		HeartRate: wearable.HeartRate.Present(),
		Sleep:     wearable.Sleep.Present(),
	}

	if present.Steps && wearable.Steps.Latest < StepsTarget {
		score -= StepsPenalty

		factors = append(factors, FactorLowSteps)
	}

	if present.HeartRate && (wearable.HeartRate.Latest < HeartRateMin || wearable.HeartRate.Latest > HeartRateMax) {
		score -= HeartRatePenalty

		factors = append(factors, FactorHeartRate)
	}

	if present.Sleep && wearable.Sleep.Latest < SleepTargetHours {
		score -= SleepPenalty

		factors = append(factors, FactorInsufficientSleep)
	}

	for _, result := range recent {
		if result.HasMarkers() {
			present.LabData = true
		}

		flagged := result.FlaggedCount()
		if flagged == 0 {
			continue
		}

		score -= LabReportPenalty

		factors = append(factors, fmt.Sprintf("%d abnormal lab markers", flagged))
	}

	score = max(MinScore, min(MaxScore, score))

	return HealthAssessment{
		Score:   score,
		Rating:  RatingFor(score),
		Factors: factors,
		Present: present,
	}
}
