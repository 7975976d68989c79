package scheduling

import (
	"math"
	"strings"

	"medisched/models"
	"medisched/services/scoring"
)

// demandCap bounds raw hourly demand before normalization so a single
// outlier hour cannot saturate the feature.
const demandCap = 10.0

// specializationKeywords maps appointment types to specialization tokens
// that count as a partial match.
var specializationKeywords = map[models.AppointmentType][]string{
	models.TypeCheckup:      {"general", "family", "internal"},
	models.TypeConsultation: {"general", "internal", "specialist"},
	models.TypeFollowUp:     {"general", "family"},
	models.TypeProcedure:    {"surgery", "surgical", "procedural"},
	models.TypeEmergency:    {"emergency", "trauma", "critical"},
}

// ExtractFeatures normalizes a candidate plus its context into the
// Scorer input vector.
func ExtractFeatures(candidate models.CandidateSlot, req models.SchedulingRequest, demandByHour []float64, provider models.Provider) scoring.Features {
	hour := candidate.Start.Hour()
	angle := 2 * math.Pi * float64(candidate.Start.YearDay()) / 365.0

	return scoring.Features{
		HourOfDay:           float64(hour) / 23.0,
		DayOfWeek:           float64(candidate.Start.Weekday()) / 6.0,
		LoadRatio:           provider.LoadRatio(),
		TypeOrdinal:         float64(req.Type.Ordinal()) / float64(models.AppointmentTypeCount),
		UrgencyOrdinal:      float64(req.Urgency.Ordinal()) / float64(models.UrgencyCount),
		DemandLevel:         demandAt(demandByHour, hour),
		SpecializationMatch: specializationMatch(req.Type, provider),
		BreakProximity:      breakProximity(hour, provider.Break),
		SeasonSin:           math.Sin(angle),
		SeasonCos:           math.Cos(angle),
	}
}

// demandAt caps and normalizes the forecast demand for an hour to [0,1].
func demandAt(demandByHour []float64, hour int) float64 {
	if hour < 0 || hour >= len(demandByHour) {
		return 0
	}
	d := demandByHour[hour]
	if d < 0 {
		return 0
	}
	if d > demandCap {
		d = demandCap
	}
	return d / demandCap
}

// specializationMatch is the keyword-overlap heuristic: 1.0 when the
// provider's specialization names the appointment type or the provider
// prefers it, 0.5 on a keyword overlap, 0.3 otherwise.
func specializationMatch(t models.AppointmentType, provider models.Provider) float64 {
	spec := strings.ToLower(provider.Specialization)
	if strings.Contains(spec, string(t)) {
		return 1.0
	}
	for _, preferred := range provider.PreferredTypes {
		if preferred == t {
			return 1.0
		}
	}
	for _, kw := range specializationKeywords[t] {
		if strings.Contains(spec, kw) {
			return 0.5
		}
	}
	return 0.3
}

// breakProximity penalizes slots during (0) or adjacent to (0.3) the
// provider's break window.
func breakProximity(hour int, brk *models.HourWindow) float64 {
	if brk == nil || brk.End <= brk.Start {
		return 1
	}
	if hour >= brk.Start && hour < brk.End {
		return 0
	}
	if hour == brk.Start-1 || hour == brk.End {
		return 0.3
	}
	return 1
}
