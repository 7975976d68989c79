package bookingRepo

import (
	"fmt"
	"time"
)

// ConflictError reports that a commit lost the race for a slot: another
// active booking already occupies the proposed interval. Callers must
// re-request optimization rather than retry with a different slot.
type ConflictError struct {
	ProviderID string
	Start      time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("scheduling conflict: provider %s already booked at %s",
		e.ProviderID, e.Start.Format(time.RFC3339))
}

// NewConflictError builds a ConflictError for the given slot.
func NewConflictError(providerID string, start time.Time) error {
	return &ConflictError{ProviderID: providerID, Start: start}
}
