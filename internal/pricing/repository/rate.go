package repository

import (
	"context"
	"errors"
	"fmt"

	pricingerrors "dmaxcricket/internal/pricing/errors"
	"dmaxcricket/pkg/config"
	"dmaxcricket/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "Pricing_rates"
)

type RateRepository interface {
	FindActiveHourlyRate(ctx context.Context) (*model.PricingRate, error)
}

type mongoRateRepository struct {
	collection *mongo.Collection
}

func NewMongoRateRepository(cfg *config.Config) RateRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRateRepository{
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoRateRepository) FindActiveHourlyRate(ctx context.Context) (*model.PricingRate, error) {
	filter := bson.M{"duration_hours": 1, "is_active": true}

	var rate model.PricingRate
	err := r.collection.FindOne(ctx, filter).Decode(&rate)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pricingerrors.ErrNoActiveRate
		}
		return nil, fmt.Errorf("failed to find hourly rate: %w", err)
	}

	return &rate, nil
}
