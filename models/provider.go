package models

import "time"

// HourWindow is a half-open [Start, End) range of whole hours within a day.
type HourWindow struct {
	Start int `bson:"start" json:"start"` // hour of day, 0-23
	End   int `bson:"end" json:"end"`     // exclusive
}

// Provider represents a care provider with their weekly availability.
// Provider documents are owned by the availability layer; the scheduling
// core reads them fresh per request and never mutates them.
type Provider struct {
	ID             string                `bson:"id" json:"id"`
	Name           string                `bson:"name" json:"name,omitempty"`
	Specialization string                `bson:"specialization" json:"specialization"`
	Department     string                `bson:"department" json:"department"`
	WorkingHours   map[string]HourWindow `bson:"workingHours" json:"workingHours"` // keyed by lowercase weekday name
	Break          *HourWindow           `bson:"break,omitempty" json:"break,omitempty"`
	CurrentLoad    int                   `bson:"currentLoad" json:"currentLoad"`
	MaxCapacity    int                   `bson:"maxCapacity" json:"maxCapacity"`
	PreferredTypes []AppointmentType     `bson:"preferredTypes,omitempty" json:"preferredTypes,omitempty"`
	UpdatedAt      time.Time             `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// WeekdayKey returns the WorkingHours map key for a weekday.
func WeekdayKey(d time.Weekday) string {
	switch d {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}

// HoursOn returns the provider's working window for the given weekday,
// or false if the provider does not work that day.
func (p Provider) HoursOn(d time.Weekday) (HourWindow, bool) {
	w, ok := p.WorkingHours[WeekdayKey(d)]
	if !ok || w.End <= w.Start {
		return HourWindow{}, false
	}
	return w, true
}

// LoadRatio reports current load against capacity, clamped to [0,1].
func (p Provider) LoadRatio() float64 {
	if p.MaxCapacity <= 0 {
		return 1
	}
	r := float64(p.CurrentLoad) / float64(p.MaxCapacity)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
