package usecase

import (
	"math"
	"time"
)

// Freshness horizon for both confidence decay and average weighting: an
// observation older than this contributes zero recency.
const freshnessWindowDays = 30.0

const (
	reportCountSaturation  = 10.0
	maxCountContribution   = 0.5
	maxRecencyContribution = 0.5
)

const (
	historyWeightFloor  = 0.3
	historyWeightSingle = 1.0
	historyWeightMulti  = 0.9
)

// confidenceScore blends report volume and recency into a [0,1] score.
// Each contributes up to half: volume saturates at ten reports, recency
// decays linearly to zero over the freshness window. A record with zero
// fresh evidence keeps its count-only floor.
func confidenceScore(reportCount int, daysSincePurchase float64) float64 {
	if reportCount < 0 {
		reportCount = 0
	}
	if daysSincePurchase < 0 {
		daysSincePurchase = 0
	}

	countPart := math.Min(float64(reportCount)/reportCountSaturation, maxCountContribution)
	recencyPart := math.Max(0, maxRecencyContribution*(1-daysSincePurchase/freshnessWindowDays))
	return math.Min(countPart+recencyPart, 1)
}

// weightedAverage folds a new price into the running average. The new
// observation's weight decays to zero over the freshness window; the
// accumulated history keeps at least the floor weight so one fresh data
// point cannot whiplash the average.
func weightedAverage(oldAvg, newPrice float64, reportCount int, daysSincePurchase float64) float64 {
	if daysSincePurchase < 0 {
		daysSincePurchase = 0
	}

	newWeight := math.Max(0, 1-daysSincePurchase/freshnessWindowDays)

	existing := historyWeightSingle
	if reportCount > 1 {
		existing = historyWeightMulti
	}
	existingWeight := math.Max(historyWeightFloor, existing)

	return (oldAvg*existingWeight + newPrice*newWeight) / (existingWeight + newWeight)
}

// daysSince measures whole and fractional days between a purchase date and
// now, clamped at zero for future-dated observations.
func daysSince(purchaseDate, now time.Time) float64 {
	days := now.Sub(purchaseDate).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}
