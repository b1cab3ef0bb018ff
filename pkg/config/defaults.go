package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// Booking records live in memory unless a Mongo URI is wired in.
	StoreBackendMemory = "memory"
	StoreBackendMongo  = "mongo"
	DefaultStoreBackend = StoreBackendMemory

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "bookit"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultKafkaBookingTopic = "bookit.bookings"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSlotsPerExperience = 5
	DefaultSlotCapacity       = 12
	DefaultMaxGuestsPerOrder  = 10
	DefaultTopUpMaxAmount     = 50000
)
