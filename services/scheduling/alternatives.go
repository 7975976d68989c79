package scheduling

import (
	"time"

	"medisched/models"
)

const (
	maxAlternatives = 5
	// alternativeScanDays bounds the next-available search past the
	// one-week mark; providers with no working hours would otherwise
	// never terminate the scan.
	alternativeScanDays = 21

	reasonAlternativeSpecialist = "alternative specialist available"
	reasonLaterWithPreferred    = "later availability with preferred doctor"
)

// FindAlternatives proposes secondary options when primary candidates are
// scarce or a provider is excluded: next-available slots at least one week
// past the preferred date for providers missing from the primaries, then
// later slots with the top primary providers. Capped at maxAlternatives;
// the list is not significance-ranked.
func FindAlternatives(req models.SchedulingRequest, providers []models.Provider, primaries []models.CandidateSlot, now time.Time) []models.AlternativeSlot {
	primarySet := make(map[string]struct{}, len(primaries))
	for _, c := range primaries {
		primarySet[c.ProviderID] = struct{}{}
	}

	after := req.PreferredDate.AddDate(0, 0, DefaultHorizonDays)
	var alternatives []models.AlternativeSlot

	for _, p := range providers {
		if _, seen := primarySet[p.ID]; seen {
			continue
		}
		if slot, ok := nextAvailableSlot(p, after, req, now); ok {
			alternatives = append(alternatives, models.AlternativeSlot{
				ProviderID: p.ID,
				Start:      slot,
				Reason:     reasonAlternativeSpecialist,
			})
		}
	}

	byID := make(map[string]models.Provider, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}
	for _, providerID := range topProviders(primaries, 3) {
		p, ok := byID[providerID]
		if !ok {
			continue
		}
		if slot, ok := nextAvailableSlot(p, after, req, now); ok {
			alternatives = append(alternatives, models.AlternativeSlot{
				ProviderID: p.ID,
				Start:      slot,
				Reason:     reasonLaterWithPreferred,
			})
		}
	}

	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}
	return alternatives
}

// topProviders returns up to n distinct provider ids in primary rank order.
func topProviders(primaries []models.CandidateSlot, n int) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, c := range primaries {
		if _, dup := seen[c.ProviderID]; dup {
			continue
		}
		seen[c.ProviderID] = struct{}{}
		ids = append(ids, c.ProviderID)
		if len(ids) == n {
			break
		}
	}
	return ids
}

// nextAvailableSlot finds the provider's first working hour on an allowed
// day at or after the given instant, scanning a bounded number of days.
func nextAvailableSlot(p models.Provider, after time.Time, req models.SchedulingRequest, now time.Time) (time.Time, bool) {
	loc := after.Location()
	base := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, loc)
	for dayOffset := 0; dayOffset < alternativeScanDays; dayOffset++ {
		day := base.AddDate(0, 0, dayOffset)
		if !dayAllowed(day.Weekday(), req) {
			continue
		}
		window, ok := p.HoursOn(day.Weekday())
		if !ok {
			continue
		}
		for h := window.Start; h < window.End; h++ {
			slotTime := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, loc)
			if slotTime.Before(now) || slotTime.Before(after) {
				continue
			}
			return slotTime, true
		}
	}
	return time.Time{}, false
}
