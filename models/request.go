package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// AppointmentType is an ordered appointment category.
type AppointmentType string

const (
	TypeCheckup      AppointmentType = "checkup"
	TypeConsultation AppointmentType = "consultation"
	TypeFollowUp     AppointmentType = "followup"
	TypeProcedure    AppointmentType = "procedure"
	TypeEmergency    AppointmentType = "emergency"
)

// AppointmentTypeCount is the number of known appointment types.
const AppointmentTypeCount = 5

// Ordinal returns the type's position in the severity order.
// Unknown types rank lowest.
func (t AppointmentType) Ordinal() int {
	switch t {
	case TypeCheckup:
		return 0
	case TypeConsultation:
		return 1
	case TypeFollowUp:
		return 2
	case TypeProcedure:
		return 3
	case TypeEmergency:
		return 4
	default:
		return 0
	}
}

// IsEmergency reports whether the type is emergency-class.
func (t AppointmentType) IsEmergency() bool {
	return t == TypeEmergency
}

// Urgency is a ranked scheduling urgency category.
type Urgency string

const (
	UrgencyRoutine   Urgency = "routine"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

// UrgencyCount is the number of urgency levels.
const UrgencyCount = 3

// Ordinal returns the urgency's rank; unknown values rank lowest.
func (u Urgency) Ordinal() int {
	switch u {
	case UrgencyRoutine:
		return 0
	case UrgencyUrgent:
		return 1
	case UrgencyEmergency:
		return 2
	default:
		return 0
	}
}

// IsHighest reports whether this is the top urgency ordinal.
func (u Urgency) IsHighest() bool {
	return u.Ordinal() == UrgencyCount-1
}

// SchedulingRequest is an immutable request for slot optimization.
type SchedulingRequest struct {
	PatientID     string          `json:"patientId"`
	Type          AppointmentType `json:"appointmentType"`
	PreferredDate time.Time       `json:"preferredDate"`
	Urgency       Urgency         `json:"urgency"`
	Department    string          `json:"department,omitempty"`
	ProviderID    string          `json:"providerId,omitempty"` // optional provider filter
}

// Fingerprint derives the deterministic cache key for the request.
// Only the fields that define the optimization outcome participate.
func (r SchedulingRequest) Fingerprint() string {
	seed := fmt.Sprintf("%s|%s|%s|%s",
		r.PatientID, r.Type, r.PreferredDate.Format("2006-01-02"), r.Urgency)
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}
