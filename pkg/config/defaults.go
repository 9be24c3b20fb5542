package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "dmaxcricket"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 3 * 1024 * 1024 // leaves headroom over the 2MB proof limit

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// A session holds a slot for this long while completing the manual payment.
	DefaultLockTTL = 5 * time.Minute
	// Bookings must arrive within this window of the payment token being issued.
	DefaultPaymentWindow = 5 * time.Minute

	DefaultAmountTolerance     = 0.01
	DefaultWeekendTwoHourTotal = 1500.0

	DefaultProofDir      = "uploads/payment_proofs"
	DefaultProofMaxBytes = 2 * 1024 * 1024

	DefaultNotificationsTopic    = "booking-notifications"
	DefaultNotificationsDLQTopic = "booking-notifications-dlq"

	DefaultPaginationLimit = 100
)
