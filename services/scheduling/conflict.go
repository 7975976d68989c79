package scheduling

import (
	"time"

	"medisched/models"
)

// HasConflict reports whether the proposed interval overlaps any active
// booking for the provider. Intervals are half-open: a booking ending at
// 10:30 does not conflict with a proposal starting at 10:30.
//
// excludeBookingID skips one booking, for the reschedule case where the
// booking being moved must not conflict with itself. An empty booking
// list means no conflict; commit-time admission is the store's job.
func HasConflict(providerID string, proposedStart time.Time, durationMins int, bookings []models.Booking, excludeBookingID string) bool {
	proposedEnd := proposedStart.Add(time.Duration(durationMins) * time.Minute)
	for _, b := range bookings {
		if b.ProviderID != providerID || !b.IsActive() {
			continue
		}
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		start, end := b.Interval()
		if proposedStart.Before(end) && start.Before(proposedEnd) {
			return true
		}
	}
	return false
}
