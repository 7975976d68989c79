package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"medisched/database"
	"medisched/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	client      *mongo.Client
	bookingColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("medisched")
	return &MongoBookingRepo{
		client:      database.MongoClient,
		bookingColl: db.Collection("bookings"),
	}
}

// overlapFilter matches active bookings for the provider whose half-open
// interval intersects [start, end). Touching endpoints do not match.
func overlapFilter(providerID string, start, end time.Time) bson.M {
	return bson.M{
		"provider_id": providerID,
		"status":      models.BookingStatusActive,
		"start":       bson.M{"$lt": end},
		"end":         bson.M{"$gt": start},
	}
}

func (repo *MongoBookingRepo) GetBookingsForProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"start":       bson.M{"$lt": to},
		"end":         bson.M{"$gt": from},
	}
	cursor, err := repo.bookingColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// CommitBooking runs the overlap check and the insert inside a single
// transaction so that two racing commits for the same interval cannot
// both succeed.
func (repo *MongoBookingRepo) CommitBooking(ctx context.Context, providerID string, start time.Time, durationMins int, patientID string) (*models.Booking, error) {
	if durationMins <= 0 {
		return nil, fmt.Errorf("booking duration must be positive, got %d", durationMins)
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	end := start.Add(time.Duration(durationMins) * time.Minute)
	booking := models.Booking{
		ID:           uuid.New().String(),
		ProviderID:   providerID,
		PatientID:    patientID,
		Start:        start,
		DurationMins: durationMins,
		End:          end,
		Status:       models.BookingStatusActive,
		CreatedAt:    time.Now(),
	}

	session, err := repo.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		count, err := repo.bookingColl.CountDocuments(sc, overlapFilter(providerID, start, end))
		if err != nil {
			return nil, fmt.Errorf("overlap check failed: %w", err)
		}
		if count > 0 {
			return nil, NewConflictError(providerID, start)
		}
		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return nil, fmt.Errorf("failed to insert booking: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) CancelBooking(ctx context.Context, bookingID string) error {
	return repo.setStatus(ctx, bookingID, models.BookingStatusCancelled)
}

func (repo *MongoBookingRepo) CompleteBooking(ctx context.Context, bookingID string) error {
	return repo.setStatus(ctx, bookingID, models.BookingStatusCompleted)
}

func (repo *MongoBookingRepo) setStatus(ctx context.Context, bookingID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.bookingColl.UpdateOne(ctx,
		bson.M{"id": bookingID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}
