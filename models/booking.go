package models

import "time"

// Booking statuses. Only active bookings occupy provider time.
const (
	BookingStatusActive    = "active"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking represents a committed appointment record.
// End is denormalized (Start + DurationMins) and maintained by the booking
// store so overlap queries can run against indexed fields.
type Booking struct {
	ID           string    `bson:"id" json:"id"`
	ProviderID   string    `bson:"provider_id" json:"provider_id"`
	PatientID    string    `bson:"patient_id" json:"patient_id"`
	Start        time.Time `bson:"start" json:"start"`
	DurationMins int       `bson:"duration_mins" json:"duration_mins"`
	End          time.Time `bson:"end" json:"end"`
	Status       string    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// IsActive reports whether the booking still occupies its interval.
func (b Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}

// Interval returns the half-open [start, end) occupied by the booking,
// derived from duration rather than the stored End field.
func (b Booking) Interval() (time.Time, time.Time) {
	return b.Start, b.Start.Add(time.Duration(b.DurationMins) * time.Minute)
}
