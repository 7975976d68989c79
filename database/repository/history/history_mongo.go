package historyRepo

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

// MongoHistoryRepo implements HistoryRepository using MongoDB.
type MongoHistoryRepo struct {
	visitColl *mongo.Collection
}

// NewMongoHistoryRepo constructs a new instance of MongoHistoryRepo.
func NewMongoHistoryRepo() HistoryRepository {
	db := database.MongoClient.Database("medisched")
	return &MongoHistoryRepo{
		visitColl: db.Collection("visits"),
	}
}

func (repo *MongoHistoryRepo) GetVisitsByType(ctx context.Context, appointmentType models.AppointmentType, department string) ([]models.HistoricalVisit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"type": appointmentType}
	if department != "" {
		filter["department"] = department
	}
	return repo.find(ctx, filter)
}

func (repo *MongoHistoryRepo) GetVisitsByDepartment(ctx context.Context, department string, since time.Time) ([]models.HistoricalVisit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"department": department,
		"date":       bson.M{"$gte": since},
	}
	return repo.find(ctx, filter)
}

func (repo *MongoHistoryRepo) RecordVisit(ctx context.Context, visit *models.HistoricalVisit) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if visit.ID == "" {
		visit.ID = uuid.New().String()
	}
	if _, err := repo.visitColl.InsertOne(ctx, visit); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

func (repo *MongoHistoryRepo) find(ctx context.Context, filter bson.M) ([]models.HistoricalVisit, error) {
	cursor, err := repo.visitColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching visits: %w", err)
	}
	defer cursor.Close(ctx)

	var visits []models.HistoricalVisit
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, fmt.Errorf("error decoding visits: %w", err)
	}
	return visits, nil
}
