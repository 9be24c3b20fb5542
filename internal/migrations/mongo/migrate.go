package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dmaxcricket/internal/migrations/mongo/validators"
)

const (
	SeedHourlyRate = 800.0
)

var (
	SlotsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "date", Value: 1},
				{Key: "start_time", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "is_active", Value: 1}}},
	}

	SlotLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slot_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}},
	}

	CustomersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	// The partial unique index allows at most one non-rejected booking per
	// slot. Mongo partial indexes cannot express $ne, so the filter lists
	// the statuses that count as occupying.
	BookingsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "slot_id", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": []string{"pending", "confirmed"}},
				}),
		},
		{Keys: bson.D{{Key: "proof_ref", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	PricingRatesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "duration_hours", Value: 1}, {Key: "is_active", Value: 1}}},
	}

	TournamentsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "event_date", Value: 1}}},
	}

	TournamentRegistrationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "tournament_id", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "tournament_id", Value: 1},
				{Key: "team_name", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	ContactMessagesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "sent_at", Value: -1}}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("🚀 Running Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Slots": {
			Indexes:   SlotsIndexes,
			Validator: validators.SlotValidator,
		},
		"Slot_locks": {
			Indexes:   SlotLocksIndexes,
			Validator: validators.SlotLockValidator,
		},
		"Customers": {
			Indexes:   CustomersIndexes,
			Validator: validators.CustomerValidator,
		},
		"Bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		"Pricing_rates": {
			Indexes:   PricingRatesIndexes,
			Validator: validators.PricingRateValidator,
		},
		"Tournaments": {
			Indexes:   TournamentsIndexes,
			Validator: validators.TournamentValidator,
		},
		"Tournament_registrations": {
			Indexes:   TournamentRegistrationsIndexes,
			Validator: validators.TournamentRegistrationValidator,
		},
		"Contact_messages": {
			Indexes:   ContactMessagesIndexes,
			Validator: validators.ContactMessageValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	if err := ensurePricingSeed(ctx, db); err != nil {
		return fmt.Errorf("failed to seed pricing: %w", err)
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("ℹ️ Collection %s already exists, updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}

// ensurePricingSeed inserts the base 1-hour rate when no active rate exists,
// so a fresh deployment can price bookings immediately.
func ensurePricingSeed(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("Pricing_rates")

	count, err := coll.CountDocuments(ctx, bson.M{"duration_hours": 1, "is_active": true})
	if err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("ℹ️ Active hourly rate already present, skipping seed")
		return nil
	}

	_, err = coll.InsertOne(ctx, bson.M{
		"duration_hours": int32(1),
		"price":          SeedHourlyRate,
		"is_active":      true,
		"created_at":     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("🌱 Seeded active hourly rate: %.0f\n", SeedHourlyRate)
	return nil
}
