package bookingRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"medisched/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func slot(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

// matchesOverlapFilter applies the filter's comparison operators to a
// booking, so the query semantics can be checked without a server.
func matchesOverlapFilter(t *testing.T, filter bson.M, b models.Booking) bool {
	t.Helper()
	if filter["provider_id"] != b.ProviderID || filter["status"] != b.Status {
		return false
	}
	endBound, ok := filter["start"].(bson.M)["$lt"].(time.Time)
	require.True(t, ok, "start clause must be a $lt time bound")
	startBound, ok := filter["end"].(bson.M)["$gt"].(time.Time)
	require.True(t, ok, "end clause must be a $gt time bound")
	return b.Start.Before(endBound) && b.End.After(startBound)
}

func activeBooking(t *testing.T, providerID, start, end string) models.Booking {
	t.Helper()
	s := slot(t, start)
	e := slot(t, end)
	return models.Booking{
		ProviderID:   providerID,
		Start:        s,
		End:          e,
		DurationMins: int(e.Sub(s).Minutes()),
		Status:       models.BookingStatusActive,
	}
}

func TestOverlapFilter_HalfOpenBounds(t *testing.T) {
	existing := activeBooking(t, "p1", "2025-03-03T10:00:00Z", "2025-03-03T10:30:00Z")

	// 10:15-10:45 intersects 10:00-10:30.
	overlapping := overlapFilter("p1", slot(t, "2025-03-03T10:15:00Z"), slot(t, "2025-03-03T10:45:00Z"))
	assert.True(t, matchesOverlapFilter(t, overlapping, existing))

	// 10:30-11:00 only touches the endpoint.
	adjacent := overlapFilter("p1", slot(t, "2025-03-03T10:30:00Z"), slot(t, "2025-03-03T11:00:00Z"))
	assert.False(t, matchesOverlapFilter(t, adjacent, existing))

	// 09:30-10:00 touches from the other side.
	before := overlapFilter("p1", slot(t, "2025-03-03T09:30:00Z"), slot(t, "2025-03-03T10:00:00Z"))
	assert.False(t, matchesOverlapFilter(t, before, existing))

	// Fully containing interval still matches.
	containing := overlapFilter("p1", slot(t, "2025-03-03T09:00:00Z"), slot(t, "2025-03-03T12:00:00Z"))
	assert.True(t, matchesOverlapFilter(t, containing, existing))
}

func TestOverlapFilter_ScopedToProviderAndActiveStatus(t *testing.T) {
	filter := overlapFilter("p1", slot(t, "2025-03-03T10:00:00Z"), slot(t, "2025-03-03T11:00:00Z"))

	otherProvider := activeBooking(t, "p2", "2025-03-03T10:00:00Z", "2025-03-03T10:30:00Z")
	assert.False(t, matchesOverlapFilter(t, filter, otherProvider))

	cancelled := activeBooking(t, "p1", "2025-03-03T10:00:00Z", "2025-03-03T10:30:00Z")
	cancelled.Status = models.BookingStatusCancelled
	assert.False(t, matchesOverlapFilter(t, filter, cancelled))
}

func TestCommitBooking_RejectsNonPositiveDuration(t *testing.T) {
	repo := &MongoBookingRepo{}

	_, err := repo.CommitBooking(context.Background(), "p1", slot(t, "2025-03-03T10:00:00Z"), 0, "pat-1")
	require.Error(t, err)

	_, err = repo.CommitBooking(context.Background(), "p1", slot(t, "2025-03-03T10:00:00Z"), -30, "pat-1")
	require.Error(t, err)
}

func TestConflictError_CarriesSlotIdentity(t *testing.T) {
	start := slot(t, "2025-03-03T10:15:00Z")
	err := NewConflictError("p1", start)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "p1", conflict.ProviderID)
	assert.True(t, start.Equal(conflict.Start))
	assert.Contains(t, err.Error(), "p1")
	assert.Contains(t, err.Error(), "2025-03-03T10:15:00Z")
}
