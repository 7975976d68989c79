package scheduling

import (
	"time"

	"medisched/models"
)

// DefaultHorizonDays is the booking window candidates are drawn from.
const DefaultHorizonDays = 7

// GenerateCandidates enumerates raw (provider, hour) candidates over the
// horizon starting at the request's preferred date. Candidates carry only
// provider id and start time; scoring fills in the rest.
//
// Weekend days are skipped unless the appointment type is emergency-class
// or the urgency is the highest ordinal. Slots strictly before now are
// never emitted. No conflict filtering happens here.
func GenerateCandidates(req models.SchedulingRequest, providers []models.Provider, now time.Time, horizonDays int) []models.CandidateSlot {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	loc := req.PreferredDate.Location()
	base := time.Date(req.PreferredDate.Year(), req.PreferredDate.Month(), req.PreferredDate.Day(), 0, 0, 0, 0, loc)

	var candidates []models.CandidateSlot
	for dayOffset := 0; dayOffset < horizonDays; dayOffset++ {
		day := base.AddDate(0, 0, dayOffset)
		if !dayAllowed(day.Weekday(), req) {
			continue
		}
		for _, p := range providers {
			window, ok := p.HoursOn(day.Weekday())
			if !ok {
				continue
			}
			for h := window.Start; h < window.End; h++ {
				slotTime := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, loc)
				if slotTime.Before(now) {
					continue
				}
				candidates = append(candidates, models.CandidateSlot{
					ProviderID: p.ID,
					Start:      slotTime,
				})
			}
		}
	}
	return candidates
}

// dayAllowed applies the weekday rule: weekends are reserved for
// emergency-class appointments and top-urgency requests.
func dayAllowed(d time.Weekday, req models.SchedulingRequest) bool {
	if d != time.Saturday && d != time.Sunday {
		return true
	}
	return req.Type.IsEmergency() || req.Urgency.IsHighest()
}
