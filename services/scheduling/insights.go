package scheduling

import (
	"time"

	"medisched/models"
)

const (
	// defaultBestHour is reported when no historical waits exist: the
	// start of a typical clinic morning.
	defaultBestHour = 9
	// defaultDurationMins is the expected appointment duration with no
	// history for the type.
	defaultDurationMins = 30
	// limitedDemandRatio marks resources "limited" when the peak hour
	// exceeds this multiple of the average.
	limitedDemandRatio = 1.5
)

// highPriorityTypes are non-emergency types classified high-urgency
// regardless of the preferred date.
var highPriorityTypes = map[models.AppointmentType]bool{
	models.TypeProcedure: true,
}

// Summarize derives the insight block for a request from historical
// visits and the demand curve. All aggregation is deterministic; missing
// history falls back to fixed defaults.
func Summarize(req models.SchedulingRequest, visits []models.HistoricalVisit, demandByHour []float64, now time.Time) models.Insights {
	return models.Insights{
		BestHour:             bestHour(visits),
		ExpectedDurationMins: expectedDuration(req.Type, visits),
		UrgencyLevel:         classifyUrgency(req, now),
		ResourceAvailability: resourceAvailability(demandByHour),
	}
}

// bestHour is the hour with the lowest historical average wait; ties
// resolve to the lowest hour index.
func bestHour(visits []models.HistoricalVisit) int {
	var waitSums, counts [24]float64
	for _, v := range visits {
		if v.Hour < 0 || v.Hour >= 24 {
			continue
		}
		waitSums[v.Hour] += float64(v.WaitMins)
		counts[v.Hour]++
	}

	best, bestAvg := -1, 0.0
	for h := 0; h < 24; h++ {
		if counts[h] == 0 {
			continue
		}
		avg := waitSums[h] / counts[h]
		if best == -1 || avg < bestAvg {
			best, bestAvg = h, avg
		}
	}
	if best == -1 {
		return defaultBestHour
	}
	return best
}

// expectedDuration is the mean historical duration for the type.
func expectedDuration(t models.AppointmentType, visits []models.HistoricalVisit) int {
	sum, count := 0, 0
	for _, v := range visits {
		if v.Type != t || v.DurationMins <= 0 {
			continue
		}
		sum += v.DurationMins
		count++
	}
	if count == 0 {
		return defaultDurationMins
	}
	return sum / count
}

// classifyUrgency folds type class and lead time into a label.
func classifyUrgency(req models.SchedulingRequest, now time.Time) string {
	if req.Type.IsEmergency() || highPriorityTypes[req.Type] {
		return models.PriorityHigh
	}
	daysUntil := int(req.PreferredDate.Sub(now).Hours() / 24)
	switch {
	case daysUntil <= 1:
		return models.PriorityHigh
	case daysUntil <= 7:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// resourceAvailability compares peak hourly demand against the average.
func resourceAvailability(demandByHour []float64) string {
	if len(demandByHour) == 0 {
		return models.ResourceGood
	}
	var sum, peak float64
	for _, d := range demandByHour {
		sum += d
		if d > peak {
			peak = d
		}
	}
	avg := sum / float64(len(demandByHour))
	if avg > 0 && peak > limitedDemandRatio*avg {
		return models.ResourceLimited
	}
	return models.ResourceGood
}
