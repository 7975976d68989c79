package scheduling_test

import (
	"testing"
	"time"

	"medisched/models"
	"medisched/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAlternatives_OffersUnrankedProviders(t *testing.T) {
	now := time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC)
	req := models.SchedulingRequest{
		Type:          models.TypeCheckup,
		PreferredDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Urgency:       models.UrgencyRoutine,
	}
	providers := []models.Provider{weekdayProvider("p1"), weekdayProvider("p2")}
	primaries := []models.CandidateSlot{
		{ProviderID: "p1", Start: now.Add(24 * time.Hour), Score: 0.9},
	}

	alternatives := scheduling.FindAlternatives(req, providers, primaries, now)

	require.NotEmpty(t, alternatives)
	weekOut := req.PreferredDate.AddDate(0, 0, 7)

	var sawSpecialist, sawPreferred bool
	for _, alt := range alternatives {
		assert.False(t, alt.Start.Before(weekOut), "alternative %s earlier than one week out", alt.Start)
		switch alt.Reason {
		case "alternative specialist available":
			sawSpecialist = true
			assert.Equal(t, "p2", alt.ProviderID, "specialist path must exclude primary providers")
		case "later availability with preferred doctor":
			sawPreferred = true
			assert.Equal(t, "p1", alt.ProviderID)
		default:
			t.Fatalf("unexpected reason %q", alt.Reason)
		}
	}
	assert.True(t, sawSpecialist)
	assert.True(t, sawPreferred)
}

func TestFindAlternatives_CapsAtFive(t *testing.T) {
	now := time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC)
	req := models.SchedulingRequest{
		Type:          models.TypeCheckup,
		PreferredDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Urgency:       models.UrgencyRoutine,
	}
	providers := []models.Provider{
		weekdayProvider("p1"), weekdayProvider("p2"), weekdayProvider("p3"),
		weekdayProvider("p4"), weekdayProvider("p5"), weekdayProvider("p6"),
		weekdayProvider("p7"),
	}

	alternatives := scheduling.FindAlternatives(req, providers, nil, now)
	assert.LessOrEqual(t, len(alternatives), 5)
}

func TestFindAlternatives_SkipsProvidersWithNoHours(t *testing.T) {
	now := time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC)
	req := models.SchedulingRequest{
		Type:          models.TypeCheckup,
		PreferredDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Urgency:       models.UrgencyRoutine,
	}
	idle := models.Provider{ID: "closed", MaxCapacity: 10} // no working hours at all

	alternatives := scheduling.FindAlternatives(req, []models.Provider{idle}, nil, now)
	assert.Empty(t, alternatives)
}
