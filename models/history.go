package models

import "time"

// HistoricalVisit is one completed appointment as recorded for analysis.
// Insight generation aggregates these; it never samples or simulates.
type HistoricalVisit struct {
	ID           string          `bson:"id" json:"id"`
	Type         AppointmentType `bson:"type" json:"type"`
	Department   string          `bson:"department" json:"department"`
	Date         time.Time       `bson:"date" json:"date"`
	Hour         int             `bson:"hour" json:"hour"` // hour of day the visit started
	WaitMins     int             `bson:"wait_mins" json:"wait_mins"`
	DurationMins int             `bson:"duration_mins" json:"duration_mins"`
}
