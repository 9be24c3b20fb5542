package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "dmaxcricket/internal/bookings/errors"
	"dmaxcricket/pkg/config"
	mongotx "dmaxcricket/pkg/db/mongo"
	"dmaxcricket/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

type BookingRepository interface {
	CreateMany(ctx context.Context, bookings []*model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByProofRef(ctx context.Context, proofRef string) ([]*model.Booking, error)
	UpdateStatusByProofRef(ctx context.Context, proofRef string, status string, paymentStatus string) (int64, error)
	DeleteByProofRef(ctx context.Context, proofRef string) (int64, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context) (int64, error)
	ExistsForSlot(ctx context.Context, slotID string) (bool, error)
	ExistsForProofRef(ctx context.Context, proofRef string) (bool, error)
	ExistsActiveForSlot(ctx context.Context, slotID string) (bool, error)
	ActiveSlotIDsByDate(ctx context.Context, date string) ([]string, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged, as wrapping a SessionContext would break transaction semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

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

// CreateMany inserts a booking group in order. Duplicate key errors from the
// partial unique (slot_id, date) index pass through for the service to map.
func (r *mongoBookingRepository) CreateMany(ctx context.Context, bookings []*model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]any, 0, len(bookings))
	for _, b := range bookings {
		b.CreatedAt = now
		docs = append(docs, b)
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return err
	}

	for i, insertedID := range result.InsertedIDs {
		if oid, ok := insertedID.(primitive.ObjectID); ok {
			bookings[i].ID = oid.Hex()
		}
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindByProofRef(ctx context.Context, proofRef string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"proof_ref": proofRef}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking group: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode booking group: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) UpdateStatusByProofRef(ctx context.Context, proofRef string, status string, paymentStatus string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateMany(ctx,
		bson.M{"proof_ref": proofRef},
		bson.M{"$set": bson.M{
			"status":         status,
			"payment_status": paymentStatus,
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update booking group: %w", err)
	}

	if result.MatchedCount == 0 {
		return 0, bookingserrors.ErrNotFound
	}

	return result.ModifiedCount, nil
}

func (r *mongoBookingRepository) DeleteByProofRef(ctx context.Context, proofRef string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"proof_ref": proofRef})
	if err != nil {
		return 0, fmt.Errorf("failed to delete booking group: %w", err)
	}

	if result.DeletedCount == 0 {
		return 0, bookingserrors.ErrNotFound
	}

	return result.DeletedCount, nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

func (r *mongoBookingRepository) ExistsForSlot(ctx context.Context, slotID string) (bool, error) {
	return r.exists(ctx, bson.M{"slot_id": slotID})
}

func (r *mongoBookingRepository) ExistsForProofRef(ctx context.Context, proofRef string) (bool, error) {
	return r.exists(ctx, bson.M{"proof_ref": proofRef})
}

func (r *mongoBookingRepository) ExistsActiveForSlot(ctx context.Context, slotID string) (bool, error) {
	return r.exists(ctx, bson.M{
		"slot_id": slotID,
		"status":  bson.M{"$ne": model.BookingStatusRejected},
	})
}

func (r *mongoBookingRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check bookings: %w", err)
	}

	return count > 0, nil
}

func (r *mongoBookingRepository) ActiveSlotIDsByDate(ctx context.Context, date string) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"date":   date,
		"status": bson.M{"$ne": model.BookingStatusRejected},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetProjection(bson.M{"slot_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings by date: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.SlotID)
	}
	return ids, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
