package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	lockserrors "dmaxcricket/internal/locks/errors"
	"dmaxcricket/pkg/config"
	"dmaxcricket/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "Slot_locks"
)

// LockRepository provides operations on advisory slot locks. Insert passes
// duplicate key errors through untouched; the unique slot_id index is how
// racing acquirers lose.
type LockRepository interface {
	Insert(ctx context.Context, lock *model.SlotLock) error
	FindBySlotID(ctx context.Context, slotID string) (*model.SlotLock, error)
	UpdateExpiry(ctx context.Context, slotID string, expiresAt time.Time) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	DeleteBySessionAndSlotIDs(ctx context.Context, sessionID string, slotIDs []string) error
	FindLiveSlotIDs(ctx context.Context, slotIDs []string, now time.Time) ([]string, error)
}

type mongoLockRepository struct {
	collection *mongo.Collection
}

func NewMongoLockRepository(cfg *config.Config) LockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLockRepository{
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoLockRepository) Insert(ctx context.Context, lock *model.SlotLock) error {
	lock.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		lock.ID = oid.Hex()
	}
	return nil
}

func (r *mongoLockRepository) FindBySlotID(ctx context.Context, slotID string) (*model.SlotLock, error) {
	var lock model.SlotLock
	err := r.collection.FindOne(ctx, bson.M{"slot_id": slotID}).Decode(&lock)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, lockserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find slot lock: %w", err)
	}

	return &lock, nil
}

func (r *mongoLockRepository) UpdateExpiry(ctx context.Context, slotID string, expiresAt time.Time) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"slot_id": slotID},
		bson.M{"$set": bson.M{"expires_at": expiresAt}},
	)
	if err != nil {
		return fmt.Errorf("failed to refresh slot lock: %w", err)
	}

	if result.MatchedCount == 0 {
		return lockserrors.ErrNotFound
	}

	return nil
}

func (r *mongoLockRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired locks: %w", err)
	}

	return result.DeletedCount, nil
}

func (r *mongoLockRepository) DeleteBySessionAndSlotIDs(ctx context.Context, sessionID string, slotIDs []string) error {
	if len(slotIDs) == 0 {
		return nil
	}

	_, err := r.collection.DeleteMany(ctx, bson.M{
		"session_id": sessionID,
		"slot_id":    bson.M{"$in": slotIDs},
	})
	if err != nil {
		return fmt.Errorf("failed to delete slot locks: %w", err)
	}

	return nil
}

func (r *mongoLockRepository) FindLiveSlotIDs(ctx context.Context, slotIDs []string, now time.Time) ([]string, error) {
	if len(slotIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"slot_id":    bson.M{"$in": slotIDs},
		"expires_at": bson.M{"$gt": now},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find live locks: %w", err)
	}
	defer cursor.Close(ctx)

	var locks []*model.SlotLock
	if err = cursor.All(ctx, &locks); err != nil {
		return nil, fmt.Errorf("failed to decode locks: %w", err)
	}

	ids := make([]string, 0, len(locks))
	for _, lock := range locks {
		ids = append(ids, lock.SlotID)
	}
	return ids, nil
}
