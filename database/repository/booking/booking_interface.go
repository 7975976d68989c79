package bookingRepo

import (
	"context"
	"time"

	"medisched/models"
)

// BookingRepository is the booking store boundary. Reads serve advisory
// conflict checks; CommitBooking is the only admission point and re-runs
// the overlap check atomically.
type BookingRepository interface {
	// GetBookingsForProvider returns bookings whose interval intersects
	// [from, to) for the provider, regardless of status.
	GetBookingsForProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error)

	// CommitBooking inserts an active booking iff no active booking for the
	// provider overlaps the proposed interval. On an overlap it returns a
	// *ConflictError and the slot is left untouched.
	CommitBooking(ctx context.Context, providerID string, start time.Time, durationMins int, patientID string) (*models.Booking, error)

	// CancelBooking and CompleteBooking transition a booking out of the
	// active set, releasing its interval.
	CancelBooking(ctx context.Context, bookingID string) error
	CompleteBooking(ctx context.Context, bookingID string) error
}
