package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	tournamentserrors "dmaxcricket/internal/tournaments/errors"
	"dmaxcricket/pkg/config"
	"dmaxcricket/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName              = "Tournaments"
	RegistrationsCollectionName = "Tournament_registrations"
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *model.Tournament) error
	FindByID(ctx context.Context, id string) (*model.Tournament, error)
	FindAll(ctx context.Context) ([]*model.Tournament, error)
	Delete(ctx context.Context, id string) error
	CreateRegistration(ctx context.Context, registration *model.TournamentRegistration) error
	RegistrationCounts(ctx context.Context) (map[string]int64, error)
	DeleteRegistrationsByTournament(ctx context.Context, tournamentID string) (int64, error)
}

type mongoTournamentRepository struct {
	cfg           *config.Config
	collection    *mongo.Collection
	registrations *mongo.Collection
}

func NewMongoTournamentRepository(cfg *config.Config) TournamentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTournamentRepository{
		cfg:           cfg,
		collection:    db.Collection(CollectionName),
		registrations: db.Collection(RegistrationsCollectionName),
	}
}

func (r *mongoTournamentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoTournamentRepository) Create(ctx context.Context, tournament *model.Tournament) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	tournament.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, tournament)
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		tournament.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTournamentRepository) FindByID(ctx context.Context, id string) (*model.Tournament, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", tournamentserrors.ErrInvalidID, id)
	}

	var tournament model.Tournament
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&tournament)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, tournamentserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tournament: %w", err)
	}

	return &tournament, nil
}

func (r *mongoTournamentRepository) FindAll(ctx context.Context) ([]*model.Tournament, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "event_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find tournaments: %w", err)
	}
	defer cursor.Close(ctx)

	var tournaments []*model.Tournament
	if err = cursor.All(ctx, &tournaments); err != nil {
		return nil, fmt.Errorf("failed to decode tournaments: %w", err)
	}

	return tournaments, nil
}

func (r *mongoTournamentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", tournamentserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}

	if result.DeletedCount == 0 {
		return tournamentserrors.ErrNotFound
	}

	return nil
}

func (r *mongoTournamentRepository) CreateRegistration(ctx context.Context, registration *model.TournamentRegistration) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	registration.RegisteredAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.registrations.InsertOne(ctx, registration)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		registration.ID = oid.Hex()
	}
	return nil
}

// RegistrationCounts groups the registrations collection by tournament so the
// listing can show team counts without a query per tournament.
func (r *mongoTournamentRepository) RegistrationCounts(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$tournament_id",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.registrations.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		TournamentID string `bson:"_id"`
		Count        int64  `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode registration counts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.TournamentID] = row.Count
	}
	return counts, nil
}

func (r *mongoTournamentRepository) DeleteRegistrationsByTournament(ctx context.Context, tournamentID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.registrations.DeleteMany(ctx, bson.M{"tournament_id": tournamentID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete registrations: %w", err)
	}

	return result.DeletedCount, nil
}
