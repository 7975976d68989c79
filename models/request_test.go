package models_test

import (
	"testing"
	"time"

	"medisched/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() models.SchedulingRequest {
	return models.SchedulingRequest{
		PatientID:     "pat-1",
		Type:          models.TypeCheckup,
		PreferredDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Urgency:       models.UrgencyRoutine,
	}
}

func TestFingerprint_IsStableHex(t *testing.T) {
	req := baseRequest()
	fp := req.Fingerprint()

	require.Len(t, fp, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", fp)
	assert.Equal(t, fp, req.Fingerprint())
}

func TestFingerprint_VariesWithIdentityFields(t *testing.T) {
	base := baseRequest().Fingerprint()

	other := baseRequest()
	other.Urgency = models.UrgencyUrgent
	assert.NotEqual(t, base, other.Fingerprint())

	other = baseRequest()
	other.Type = models.TypeProcedure
	assert.NotEqual(t, base, other.Fingerprint())

	other = baseRequest()
	other.PatientID = "pat-2"
	assert.NotEqual(t, base, other.Fingerprint())

	other = baseRequest()
	other.PreferredDate = other.PreferredDate.AddDate(0, 0, 1)
	assert.NotEqual(t, base, other.Fingerprint())
}

func TestFingerprint_IgnoresTimeOfDay(t *testing.T) {
	morning := baseRequest()
	evening := baseRequest()
	evening.PreferredDate = evening.PreferredDate.Add(18 * time.Hour)

	assert.Equal(t, morning.Fingerprint(), evening.Fingerprint())
}

func TestAppointmentTypeOrdinals(t *testing.T) {
	assert.Equal(t, 0, models.TypeCheckup.Ordinal())
	assert.Equal(t, 4, models.TypeEmergency.Ordinal())
	assert.Equal(t, 0, models.AppointmentType("unknown").Ordinal())
	assert.True(t, models.TypeEmergency.IsEmergency())
	assert.False(t, models.TypeProcedure.IsEmergency())
}

func TestUrgencyOrdinals(t *testing.T) {
	assert.Equal(t, 0, models.UrgencyRoutine.Ordinal())
	assert.Equal(t, 2, models.UrgencyEmergency.Ordinal())
	assert.True(t, models.UrgencyEmergency.IsHighest())
	assert.False(t, models.UrgencyUrgent.IsHighest())
}
