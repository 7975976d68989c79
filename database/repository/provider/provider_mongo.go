package providerRepo

import (
	"context"
	"fmt"
	"time"

	"medisched/database"
	"medisched/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	providerColl *mongo.Collection
}

// NewMongoProviderRepo constructs a new instance of MongoProviderRepo.
func NewMongoProviderRepo() ProviderRepository {
	db := database.MongoClient.Database("medisched")
	return &MongoProviderRepo{
		providerColl: db.Collection("providers"),
	}
}

func (repo *MongoProviderRepo) GetProviderSchedules(ctx context.Context, department string, appointmentType models.AppointmentType) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if department != "" {
		filter["department"] = department
	}
	if appointmentType != "" {
		// Providers without declared preferences accept every type.
		filter["$or"] = bson.A{
			bson.M{"preferredTypes": appointmentType},
			bson.M{"preferredTypes": bson.M{"$exists": false}},
			bson.M{"preferredTypes": bson.M{"$size": 0}},
		}
	}

	cursor, err := repo.providerColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching provider schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("error decoding providers: %w", err)
	}
	return providers, nil
}

func (repo *MongoProviderRepo) GetProviderByID(ctx context.Context, providerID string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	if err := repo.providerColl.FindOne(ctx, bson.M{"id": providerID}).Decode(&provider); err != nil {
		return nil, fmt.Errorf("error fetching provider with id %s: %w", providerID, err)
	}
	return &provider, nil
}

func (repo *MongoProviderRepo) ListDepartments(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	values, err := repo.providerColl.Distinct(ctx, "department", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	var departments []string
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			departments = append(departments, s)
		}
	}
	return departments, nil
}
